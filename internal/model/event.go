package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventRegistration is embedded in its event. PointsAwarded is kept so an
// unregister can refund exactly what was granted, even if the event's
// pointsReward changed afterwards.
type EventRegistration struct {
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	UserName         string             `bson:"userName" json:"userName"`
	UserEmail        string             `bson:"userEmail" json:"userEmail"`
	RegistrationDate time.Time          `bson:"registrationDate" json:"registrationDate"`
	Attended         bool               `bson:"attended" json:"attended"`
	AttendanceDate   *time.Time         `bson:"attendanceDate,omitempty" json:"attendanceDate,omitempty"`
	PointsAwarded    int                `bson:"pointsAwarded" json:"pointsAwarded"`
}

type Event struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name               string              `bson:"name" json:"name"`
	Description        string              `bson:"description" json:"description"`
	Location           string              `bson:"location" json:"location"`
	Address            string              `bson:"address,omitempty" json:"address,omitempty"`
	Date               time.Time           `bson:"date" json:"date"`
	EndDate            time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	LastDateToRegister time.Time           `bson:"lastDateToRegister" json:"lastDateToRegister"`
	RegistrationLink   string              `bson:"registrationLink,omitempty" json:"registrationLink,omitempty"`
	Category           string              `bson:"category,omitempty" json:"category,omitempty"`
	Organizer          string              `bson:"organizer,omitempty" json:"organizer,omitempty"`
	MaxParticipants    int                 `bson:"maxParticipants" json:"maxParticipants"`
	CurrentParticipants int                `bson:"currentParticipants" json:"currentParticipants"`
	PointsReward       int                 `bson:"pointsReward" json:"pointsReward"`
	IsActive           bool                `bson:"isActive" json:"isActive"`
	Registrations      []EventRegistration `bson:"registrations" json:"registrations"`
	CreatedBy          primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// RegistrationFor returns the registration entry for a user, or nil.
func (e *Event) RegistrationFor(userID primitive.ObjectID) *EventRegistration {
	for i := range e.Registrations {
		if e.Registrations[i].UserID == userID {
			return &e.Registrations[i]
		}
	}
	return nil
}

// Full reports whether the event has reached its participant cap.
// MaxParticipants == 0 means unlimited.
func (e *Event) Full() bool {
	return e.MaxParticipants > 0 && e.CurrentParticipants >= e.MaxParticipants
}

// RemoveRegistration drops a user's registration and returns the points that
// had been awarded at registration time. ok is false when not registered.
func (e *Event) RemoveRegistration(userID primitive.ObjectID) (refund int, ok bool) {
	for i := range e.Registrations {
		if e.Registrations[i].UserID == userID {
			refund = e.Registrations[i].PointsAwarded
			e.Registrations = append(e.Registrations[:i], e.Registrations[i+1:]...)
			if e.CurrentParticipants > 0 {
				e.CurrentParticipants--
			}
			return refund, true
		}
	}
	return 0, false
}
