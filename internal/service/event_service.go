package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	Events EventStore
	Points *PointsService

	Now func() time.Time
}

func NewEventService(events EventStore, points *PointsService) *EventService {
	return &EventService{Events: events, Points: points, Now: time.Now}
}

func (s *EventService) Upcoming(ctx context.Context) ([]model.Event, error) {
	return s.Events.FindUpcoming(ctx, s.Now())
}

func (s *EventService) All(ctx context.Context) ([]model.Event, error) {
	return s.Events.FindAll(ctx)
}

func (s *EventService) Get(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	return s.Events.FindByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, e *model.Event, createdBy primitive.ObjectID) error {
	if e.Name == "" || e.Date.IsZero() {
		return fmt.Errorf("%w: name and date are required", util.ErrValidation)
	}
	if e.LastDateToRegister.IsZero() {
		e.LastDateToRegister = e.Date
	}
	if e.LastDateToRegister.After(e.Date) {
		return fmt.Errorf("%w: registration deadline cannot be after the event date", util.ErrValidation)
	}

	e.IsActive = true
	e.Registrations = []model.EventRegistration{}
	e.CreatedBy = createdBy
	e.CreatedAt = s.Now()
	return s.Events.Create(ctx, e)
}

func (s *EventService) Update(ctx context.Context, e *model.Event) error {
	existing, err := s.Events.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}

	e.Registrations = existing.Registrations
	e.CurrentParticipants = existing.CurrentParticipants
	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = s.Now()
	return s.Events.Save(ctx, e)
}

func (s *EventService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Events.Deactivate(ctx, id)
}

// Register signs a user up and credits the event's reward points. The points
// actually granted are recorded on the registration so an unregister can
// refund the same amount later.
func (s *EventService) Register(ctx context.Context, userID, eventID primitive.ObjectID) (*model.Event, int, error) {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}

	now := s.Now()
	if now.After(event.LastDateToRegister) {
		return nil, 0, util.ErrRegistrationClosed
	}
	if event.Full() {
		return nil, 0, util.ErrEventFull
	}
	if event.RegistrationFor(userID) != nil {
		return nil, 0, util.ErrAlreadyRegistered
	}

	user, err := s.Points.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	event.Registrations = append(event.Registrations, model.EventRegistration{
		UserID:           userID,
		UserName:         user.Name,
		UserEmail:        user.Email,
		RegistrationDate: now,
		PointsAwarded:    event.PointsReward,
	})
	event.CurrentParticipants++
	if err := s.Events.Save(ctx, event); err != nil {
		return nil, 0, err
	}

	if event.PointsReward > 0 {
		if _, err := s.Points.Apply(ctx, userID, event.PointsReward, model.PointsEventRegistration,
			fmt.Sprintf("Registered for event: %s", event.Name), event.ID); err != nil {
			return nil, 0, err
		}
	}
	return event, event.PointsReward, nil
}

// Unregister removes the registration and claws back the points it granted.
func (s *EventService) Unregister(ctx context.Context, userID, eventID primitive.ObjectID) error {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	refund, ok := event.RemoveRegistration(userID)
	if !ok {
		return util.ErrNotRegistered
	}
	if err := s.Events.Save(ctx, event); err != nil {
		return err
	}

	if refund > 0 {
		if _, err := s.Points.Apply(ctx, userID, -refund, model.PointsEventRegistration,
			fmt.Sprintf("Unregistered from event: %s", event.Name), event.ID); err != nil {
			return err
		}
	}
	return nil
}

// MarkAttendance stamps a registrant as having attended.
func (s *EventService) MarkAttendance(ctx context.Context, eventID, userID primitive.ObjectID) error {
	event, err := s.Events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	registration := event.RegistrationFor(userID)
	if registration == nil {
		return util.ErrNotRegistered
	}

	now := s.Now()
	registration.Attended = true
	registration.AttendanceDate = &now
	return s.Events.Save(ctx, event)
}
