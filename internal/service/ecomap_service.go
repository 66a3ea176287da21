package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EcoMapService serves the community eco map: published pins, plus the
// student request queue that admins approve or reject. Approving a request
// publishes a pin credited to the requester.
type EcoMapService struct {
	Pins     PinStore
	Requests PinRequestStore

	Now func() time.Time
}

func NewEcoMapService(pins PinStore, requests PinRequestStore) *EcoMapService {
	return &EcoMapService{Pins: pins, Requests: requests, Now: time.Now}
}

func (s *EcoMapService) ListPins(ctx context.Context, filter model.PinFilter) ([]model.EcoPin, error) {
	if filter.Type != "" && !model.ValidPinType(filter.Type) {
		return nil, fmt.Errorf("%w: unknown pin type %q", util.ErrValidation, filter.Type)
	}
	if filter.HasCenter && filter.RadiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", util.ErrValidation)
	}
	return s.Pins.FindActive(ctx, filter)
}

func (s *EcoMapService) Pin(ctx context.Context, id primitive.ObjectID) (*model.EcoPin, error) {
	return s.Pins.FindByID(ctx, id)
}

// Stats tallies the active pins per category.
func (s *EcoMapService) Stats(ctx context.Context) (*model.PinStats, error) {
	pins, err := s.Pins.FindActive(ctx, model.PinFilter{})
	if err != nil {
		return nil, err
	}

	stats := &model.PinStats{}
	for i := range pins {
		stats.CountPin(pins[i].Type)
	}
	return stats, nil
}

func (s *EcoMapService) CreatePin(ctx context.Context, pin *model.EcoPin, createdBy primitive.ObjectID) error {
	if err := validatePinFields(pin.Title, pin.Description, pin.Address, pin.Type, pin.Latitude, pin.Longitude); err != nil {
		return err
	}
	if pin.MissingClubLink() {
		return fmt.Errorf("%w: eco clubs need a WhatsApp or Discord link", util.ErrValidation)
	}

	pin.IsActive = true
	pin.CreatedBy = createdBy
	pin.CreatedAt = s.Now()
	return s.Pins.Create(ctx, pin)
}

func (s *EcoMapService) UpdatePin(ctx context.Context, pin *model.EcoPin) error {
	existing, err := s.Pins.FindByID(ctx, pin.ID)
	if err != nil {
		return err
	}
	if err := validatePinFields(pin.Title, pin.Description, pin.Address, pin.Type, pin.Latitude, pin.Longitude); err != nil {
		return err
	}
	if pin.MissingClubLink() {
		return fmt.Errorf("%w: eco clubs need a WhatsApp or Discord link", util.ErrValidation)
	}

	pin.CreatedBy = existing.CreatedBy
	pin.CreatedAt = existing.CreatedAt
	pin.UpdatedAt = s.Now()
	return s.Pins.Save(ctx, pin)
}

func (s *EcoMapService) DeletePin(ctx context.Context, id primitive.ObjectID) error {
	return s.Pins.Deactivate(ctx, id)
}

// RequestPin files a student's pin proposal for admin review.
func (s *EcoMapService) RequestPin(ctx context.Context, req *model.PinRequest, requestedBy primitive.ObjectID) error {
	if err := validatePinFields(req.Title, req.Description, req.Address, req.Type, req.Latitude, req.Longitude); err != nil {
		return err
	}
	if req.Type == model.PinClub && req.Whatsapp == "" && req.Discord == "" {
		return fmt.Errorf("%w: eco clubs need a WhatsApp or Discord link", util.ErrValidation)
	}

	req.RequestedBy = requestedBy
	req.Status = model.PinRequestPending
	req.AdminNotes = ""
	req.DecidedAt = nil
	req.CreatedAt = s.Now()
	return s.Requests.Create(ctx, req)
}

func (s *EcoMapService) MyRequests(ctx context.Context, userID primitive.ObjectID) ([]model.PinRequest, error) {
	return s.Requests.FindByUser(ctx, userID)
}

func (s *EcoMapService) ListRequests(ctx context.Context, status model.PinRequestStatus) ([]model.PinRequest, error) {
	switch status {
	case "", model.PinRequestPending, model.PinRequestApproved, model.PinRequestRejected:
	default:
		return nil, fmt.Errorf("%w: unknown request status %q", util.ErrValidation, status)
	}
	return s.Requests.List(ctx, status)
}

// ApproveRequest decides a pending request and publishes the pin it
// described. A request is decided exactly once.
func (s *EcoMapService) ApproveRequest(ctx context.Context, requestID primitive.ObjectID, adminNotes string) (*model.PinRequest, *model.EcoPin, error) {
	req, err := s.Requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req.Status != model.PinRequestPending {
		return nil, nil, util.ErrRequestDecided
	}

	now := s.Now()
	req.Status = model.PinRequestApproved
	req.AdminNotes = adminNotes
	req.DecidedAt = &now
	req.UpdatedAt = now
	if err := s.Requests.Save(ctx, req); err != nil {
		return nil, nil, err
	}

	pin := req.ToEcoPin()
	pin.CreatedAt = now
	if err := s.Pins.Create(ctx, pin); err != nil {
		return nil, nil, err
	}
	return req, pin, nil
}

// RejectRequest turns a pending request down. Admin notes are mandatory so
// the student learns why.
func (s *EcoMapService) RejectRequest(ctx context.Context, requestID primitive.ObjectID, adminNotes string) (*model.PinRequest, error) {
	if adminNotes == "" {
		return nil, fmt.Errorf("%w: admin notes are required when rejecting a request", util.ErrValidation)
	}

	req, err := s.Requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.PinRequestPending {
		return nil, util.ErrRequestDecided
	}

	now := s.Now()
	req.Status = model.PinRequestRejected
	req.AdminNotes = adminNotes
	req.DecidedAt = &now
	req.UpdatedAt = now
	if err := s.Requests.Save(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func validatePinFields(title, description, address string, pinType model.PinType, lat, lng float64) error {
	if title == "" || description == "" || address == "" {
		return fmt.Errorf("%w: title, description and address are required", util.ErrValidation)
	}
	if !model.ValidPinType(pinType) {
		return fmt.Errorf("%w: unknown pin type %q", util.ErrValidation, pinType)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: coordinates out of range", util.ErrValidation)
	}
	return nil
}
