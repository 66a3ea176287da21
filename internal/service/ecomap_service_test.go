package service

import (
	"context"
	"testing"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newEcoMapFixture(t *testing.T) (*EcoMapService, *fakePinStore, *fakePinRequestStore, time.Time) {
	t.Helper()

	pins := newFakePinStore()
	requests := newFakePinRequestStore()

	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := NewEcoMapService(pins, requests)
	svc.Now = func() time.Time { return now }
	return svc, pins, requests, now
}

func parkPin(pins *fakePinStore, title string, lat, lng float64) primitive.ObjectID {
	return pins.add(&model.EcoPin{
		Title:       title,
		Type:        model.PinPark,
		Description: "A green spot",
		Address:     "Near the lake",
		Latitude:    lat,
		Longitude:   lng,
		IsActive:    true,
	})
}

func riverParkRequest(override *model.PinType) *model.PinRequest {
	pinType := model.PinPark
	if override != nil {
		pinType = *override
	}
	return &model.PinRequest{
		Title:       "Riverside Community Garden",
		Type:        pinType,
		Description: "Volunteer-run garden open on weekends",
		Address:     "12 River Road",
		Latitude:    28.61,
		Longitude:   77.21,
		Contact:     "garden@example.com",
	}
}

func TestCreatePinValidatesFields(t *testing.T) {
	svc, _, _, _ := newEcoMapFixture(t)
	ctx := context.Background()
	admin := primitive.NewObjectID()

	err := svc.CreatePin(ctx, &model.EcoPin{
		Type: model.PinPark, Description: "d", Address: "a",
	}, admin)
	assert.ErrorIs(t, err, util.ErrValidation, "title is required")

	err = svc.CreatePin(ctx, &model.EcoPin{
		Title: "t", Type: "volcano", Description: "d", Address: "a",
	}, admin)
	assert.ErrorIs(t, err, util.ErrValidation, "unknown type")

	err = svc.CreatePin(ctx, &model.EcoPin{
		Title: "t", Type: model.PinPark, Description: "d", Address: "a",
		Latitude: 91,
	}, admin)
	assert.ErrorIs(t, err, util.ErrValidation, "latitude out of range")
}

func TestCreateClubPinNeedsAJoinLink(t *testing.T) {
	svc, pins, _, now := newEcoMapFixture(t)
	ctx := context.Background()
	admin := primitive.NewObjectID()

	club := &model.EcoPin{
		Title: "Green Sprouts Club", Type: model.PinClub,
		Description: "School eco club", Address: "Green Valley High",
	}
	err := svc.CreatePin(ctx, club, admin)
	assert.ErrorIs(t, err, util.ErrValidation)

	club.Whatsapp = "https://chat.example.com/green-sprouts"
	require.NoError(t, svc.CreatePin(ctx, club, admin))

	saved, err := pins.FindByID(ctx, club.ID)
	require.NoError(t, err)
	assert.True(t, saved.IsActive)
	assert.Equal(t, admin, saved.CreatedBy)
	assert.Equal(t, now, saved.CreatedAt)
}

func TestListPinsFiltersByTypeAndProximity(t *testing.T) {
	svc, pins, _, _ := newEcoMapFixture(t)
	ctx := context.Background()

	// ~5.5 km apart in latitude; the third is ~111 km away.
	nearID := parkPin(pins, "Lodhi Garden", 28.59, 77.22)
	parkPin(pins, "Distant Park", 29.59, 77.22)
	pins.add(&model.EcoPin{
		Title: "Smog Hotspot", Type: model.PinPollution,
		Description: "d", Address: "a",
		Latitude: 28.60, Longitude: 77.23, IsActive: true,
	})

	parks, err := svc.ListPins(ctx, model.PinFilter{Type: model.PinPark})
	require.NoError(t, err)
	assert.Len(t, parks, 2)

	nearby, err := svc.ListPins(ctx, model.PinFilter{
		Type: model.PinPark, HasCenter: true,
		Lat: 28.61, Lng: 77.21, RadiusKm: 10,
	})
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, nearID, nearby[0].ID)

	_, err = svc.ListPins(ctx, model.PinFilter{Type: "volcano"})
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = svc.ListPins(ctx, model.PinFilter{HasCenter: true, RadiusKm: 0})
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestStatsCountsActivePinsPerType(t *testing.T) {
	svc, pins, _, _ := newEcoMapFixture(t)
	ctx := context.Background()

	parkPin(pins, "Lodhi Garden", 28.59, 77.22)
	parkPin(pins, "Deer Park", 28.55, 77.20)
	pins.add(&model.EcoPin{
		Title: "Landfill Overflow", Type: model.PinPollution,
		Description: "d", Address: "a", IsActive: true,
	})
	pins.add(&model.EcoPin{
		Title: "Closed Park", Type: model.PinPark,
		Description: "d", Address: "a", IsActive: false,
	})

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Park)
	assert.Equal(t, 1, stats.Pollution)
	assert.Equal(t, 0, stats.Club)
	assert.Equal(t, 3, stats.Total)
}

func TestUpdatePinKeepsProvenance(t *testing.T) {
	svc, pins, _, now := newEcoMapFixture(t)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	pin := &model.EcoPin{
		Title: "Lodhi Garden", Type: model.PinPark,
		Description: "d", Address: "a",
		Latitude: 28.59, Longitude: 77.22,
	}
	require.NoError(t, svc.CreatePin(ctx, pin, owner))

	updated := &model.EcoPin{
		ID: pin.ID, Title: "Lodhi Garden (renovated)", Type: model.PinPark,
		Description: "d", Address: "a",
		Latitude: 28.59, Longitude: 77.22, IsActive: true,
	}
	require.NoError(t, svc.UpdatePin(ctx, updated))

	saved, err := pins.FindByID(ctx, pin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lodhi Garden (renovated)", saved.Title)
	assert.Equal(t, owner, saved.CreatedBy)
	assert.Equal(t, now, saved.CreatedAt)
	assert.Equal(t, now, saved.UpdatedAt)
}

func TestRequestPinStartsPending(t *testing.T) {
	svc, _, requests, now := newEcoMapFixture(t)
	ctx := context.Background()
	student := primitive.NewObjectID()

	req := riverParkRequest(nil)
	req.Status = model.PinRequestApproved // client cannot pre-approve itself
	req.AdminNotes = "looks great"
	require.NoError(t, svc.RequestPin(ctx, req, student))

	saved, err := requests.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PinRequestPending, saved.Status)
	assert.Empty(t, saved.AdminNotes)
	assert.Nil(t, saved.DecidedAt)
	assert.Equal(t, student, saved.RequestedBy)
	assert.Equal(t, now, saved.CreatedAt)

	mine, err := svc.MyRequests(ctx, student)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestApproveRequestPublishesPinOnce(t *testing.T) {
	svc, pins, _, now := newEcoMapFixture(t)
	ctx := context.Background()
	student := primitive.NewObjectID()

	req := riverParkRequest(nil)
	require.NoError(t, svc.RequestPin(ctx, req, student))

	decided, pin, err := svc.ApproveRequest(ctx, req.ID, "verified on site")
	require.NoError(t, err)
	assert.Equal(t, model.PinRequestApproved, decided.Status)
	assert.Equal(t, "verified on site", decided.AdminNotes)
	require.NotNil(t, decided.DecidedAt)
	assert.Equal(t, now, *decided.DecidedAt)

	saved, err := pins.FindByID(ctx, pin.ID)
	require.NoError(t, err)
	assert.True(t, saved.IsActive)
	assert.Equal(t, req.Title, saved.Title)
	assert.Equal(t, student, saved.CreatedBy, "the pin is credited to the requester")

	_, _, err = svc.ApproveRequest(ctx, req.ID, "again")
	assert.ErrorIs(t, err, util.ErrRequestDecided)

	listed, err := svc.ListRequests(ctx, model.PinRequestPending)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestRejectRequestNeedsNotesAndIsFinal(t *testing.T) {
	svc, _, _, _ := newEcoMapFixture(t)
	ctx := context.Background()
	student := primitive.NewObjectID()

	req := riverParkRequest(nil)
	require.NoError(t, svc.RequestPin(ctx, req, student))

	_, err := svc.RejectRequest(ctx, req.ID, "")
	assert.ErrorIs(t, err, util.ErrValidation)

	rejected, err := svc.RejectRequest(ctx, req.ID, "duplicate of an existing pin")
	require.NoError(t, err)
	assert.Equal(t, model.PinRequestRejected, rejected.Status)

	_, _, err = svc.ApproveRequest(ctx, req.ID, "changed my mind")
	assert.ErrorIs(t, err, util.ErrRequestDecided)

	published, err := svc.ListPins(ctx, model.PinFilter{})
	require.NoError(t, err)
	assert.Empty(t, published, "no pin appears for a rejected request")
}

func TestRequestClubPinNeedsAJoinLink(t *testing.T) {
	svc, _, _, _ := newEcoMapFixture(t)
	ctx := context.Background()

	club := model.PinClub
	req := riverParkRequest(&club)
	err := svc.RequestPin(ctx, req, primitive.NewObjectID())
	assert.ErrorIs(t, err, util.ErrValidation)

	req.Discord = "https://discord.example.com/green-sprouts"
	assert.NoError(t, svc.RequestPin(ctx, req, primitive.NewObjectID()))
}

func TestListRequestsRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newEcoMapFixture(t)

	_, err := svc.ListRequests(context.Background(), "archived")
	assert.ErrorIs(t, err, util.ErrValidation)
}
