package controller

import (
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

func (c *EventController) Upcoming(ctx *gin.Context) {
	events, err := c.EventService.Upcoming(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

func (c *EventController) All(ctx *gin.Context) {
	events, err := c.EventService.All(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

func (c *EventController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.EventService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, event)
}

type EventRequest struct {
	Name               string    `json:"name" binding:"required"`
	Description        string    `json:"description"`
	Location           string    `json:"location"`
	Address            string    `json:"address"`
	Date               time.Time `json:"date" binding:"required"`
	EndDate            time.Time `json:"endDate"`
	LastDateToRegister time.Time `json:"lastDateToRegister"`
	RegistrationLink   string    `json:"registrationLink"`
	Category           string    `json:"category"`
	Organizer          string    `json:"organizer"`
	MaxParticipants    int       `json:"maxParticipants" binding:"min=0"`
	PointsReward       int       `json:"pointsReward" binding:"min=0"`
}

func (r *EventRequest) toModel() *model.Event {
	return &model.Event{
		Name:               r.Name,
		Description:        r.Description,
		Location:           r.Location,
		Address:            r.Address,
		Date:               r.Date,
		EndDate:            r.EndDate,
		LastDateToRegister: r.LastDateToRegister,
		RegistrationLink:   r.RegistrationLink,
		Category:           r.Category,
		Organizer:          r.Organizer,
		MaxParticipants:    r.MaxParticipants,
		PointsReward:       r.PointsReward,
	}
}

func (c *EventController) Create(ctx *gin.Context) {
	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	event := req.toModel()
	if err := c.EventService.Create(ctx.Request.Context(), event, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

func (c *EventController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event := req.toModel()
	event.ID = id
	event.IsActive = true
	if err := c.EventService.Update(ctx.Request.Context(), event); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, event)
}

func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.EventService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func (c *EventController) Register(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	event, pointsAwarded, err := c.EventService.Register(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"event": event, "pointsAwarded": pointsAwarded})
}

func (c *EventController) Unregister(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.EventService.Unregister(ctx.Request.Context(), userID, id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"unregistered": true})
}

func (c *EventController) MarkAttendance(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := objectIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.EventService.MarkAttendance(ctx.Request.Context(), id, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"attended": true})
}
