package model

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PinType string

const (
	PinPollution PinType = "pollution"
	PinPark      PinType = "park"
	PinProject   PinType = "project"
	PinClub      PinType = "club"
)

// PinTypes lists the accepted map pin categories.
var PinTypes = []PinType{PinPollution, PinPark, PinProject, PinClub}

// ValidPinType reports whether t is one of the accepted categories.
func ValidPinType(t PinType) bool {
	for _, known := range PinTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EcoPin is a point of interest on the community eco map: a pollution
// hotspot, a park, an ongoing project, or an eco club. Club pins must carry
// at least one chat link so visitors can actually reach the club.
type EcoPin struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Type        PinType            `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Address     string             `bson:"address" json:"address"`
	Latitude    float64            `bson:"latitude" json:"latitude"`
	Longitude   float64            `bson:"longitude" json:"longitude"`
	Contact     string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Whatsapp    string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Discord     string             `bson:"discord,omitempty" json:"discord,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// MissingClubLink reports a club pin without any way to join it.
func (p *EcoPin) MissingClubLink() bool {
	return p.Type == PinClub && p.Whatsapp == "" && p.Discord == ""
}

type PinRequestStatus string

const (
	PinRequestPending  PinRequestStatus = "pending"
	PinRequestApproved PinRequestStatus = "approved"
	PinRequestRejected PinRequestStatus = "rejected"
)

// PinRequest is a student's proposal for a new map pin. An admin decides it
// exactly once; approval materializes an EcoPin credited to the requester.
type PinRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Type        PinType            `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Address     string             `bson:"address" json:"address"`
	Latitude    float64            `bson:"latitude" json:"latitude"`
	Longitude   float64            `bson:"longitude" json:"longitude"`
	Contact     string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Whatsapp    string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Discord     string             `bson:"discord,omitempty" json:"discord,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	RequestedBy primitive.ObjectID `bson:"requestedBy" json:"requestedBy"`
	Status      PinRequestStatus   `bson:"status" json:"status"`
	AdminNotes  string             `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	DecidedAt   *time.Time         `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ToEcoPin builds the pin an approval publishes. The pin is credited to the
// requester, not to the approving admin.
func (r *PinRequest) ToEcoPin() *EcoPin {
	return &EcoPin{
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Contact:     r.Contact,
		Whatsapp:    r.Whatsapp,
		Discord:     r.Discord,
		Website:     r.Website,
		IsActive:    true,
		CreatedBy:   r.RequestedBy,
	}
}

// PinFilter narrows a pin listing. Type is optional; when HasCenter is set,
// only pins inside the RadiusKm bounding box around (Lat, Lng) are returned.
type PinFilter struct {
	Type      PinType
	HasCenter bool
	Lat       float64
	Lng       float64
	RadiusKm  float64
}

// kmPerDegreeLat is close enough at city scale for a rectangular prefilter.
const kmPerDegreeLat = 111.0

// Bounds converts the radius into a latitude/longitude bounding box. The
// longitude span widens toward the poles; near them it degenerates to the
// whole circle.
func (f PinFilter) Bounds() (minLat, maxLat, minLng, maxLng float64, ok bool) {
	if !f.HasCenter || f.RadiusKm <= 0 {
		return 0, 0, 0, 0, false
	}

	latDelta := f.RadiusKm / kmPerDegreeLat
	lngDelta := 180.0
	if cos := math.Cos(f.Lat * math.Pi / 180); cos > 1e-6 {
		lngDelta = f.RadiusKm / (kmPerDegreeLat * cos)
	}
	return f.Lat - latDelta, f.Lat + latDelta, f.Lng - lngDelta, f.Lng + lngDelta, true
}

// Matches applies the filter to a single pin; the repository pushes the same
// predicate into its query.
func (f PinFilter) Matches(p *EcoPin) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if minLat, maxLat, minLng, maxLng, ok := f.Bounds(); ok {
		if p.Latitude < minLat || p.Latitude > maxLat {
			return false
		}
		if p.Longitude < minLng || p.Longitude > maxLng {
			return false
		}
	}
	return true
}

// PinStats is the per-type census of active pins.
type PinStats struct {
	Pollution int `json:"pollution"`
	Park      int `json:"park"`
	Project   int `json:"project"`
	Club      int `json:"club"`
	Total     int `json:"total"`
}

// CountPin tallies one pin into the matching bucket.
func (s *PinStats) CountPin(t PinType) {
	switch t {
	case PinPollution:
		s.Pollution++
	case PinPark:
		s.Park++
	case PinProject:
		s.Project++
	case PinClub:
		s.Club++
	}
	s.Total++
}
