package controller

import (
	"strconv"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type EcoMapController struct {
	EcoMapService *service.EcoMapService
}

func NewEcoMapController(ecoMapService *service.EcoMapService) *EcoMapController {
	return &EcoMapController{EcoMapService: ecoMapService}
}

func (c *EcoMapController) Pins(ctx *gin.Context) {
	filter := model.PinFilter{Type: model.PinType(ctx.Query("type"))}
	if filter.Type == "all" {
		filter.Type = ""
	}

	if rawLat, rawLng := ctx.Query("lat"), ctx.Query("lng"); rawLat != "" && rawLng != "" {
		lat, errLat := strconv.ParseFloat(rawLat, 64)
		lng, errLng := strconv.ParseFloat(rawLng, 64)
		radius, errRadius := strconv.ParseFloat(ctx.DefaultQuery("radius", "10"), 64)
		if errLat != nil || errLng != nil || errRadius != nil {
			util.BadRequest(ctx, "lat, lng and radius must be numbers")
			return
		}
		filter.HasCenter = true
		filter.Lat = lat
		filter.Lng = lng
		filter.RadiusKm = radius
	}

	pins, err := c.EcoMapService.ListPins(ctx.Request.Context(), filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, pins)
}

func (c *EcoMapController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	pin, err := c.EcoMapService.Pin(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, pin)
}

func (c *EcoMapController) Stats(ctx *gin.Context) {
	stats, err := c.EcoMapService.Stats(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

type PinRequestBody struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Type        string  `json:"type" binding:"required"`
	Description string  `json:"description" binding:"required,max=500"`
	Address     string  `json:"address" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Contact     string  `json:"contact" binding:"max=50"`
	Whatsapp    string  `json:"whatsapp" binding:"omitempty,url"`
	Discord     string  `json:"discord" binding:"omitempty,url"`
	Website     string  `json:"website" binding:"omitempty,url"`
	Image       string  `json:"image" binding:"omitempty,url"`
	Notes       string  `json:"notes" binding:"max=500"`
}

func (r *PinRequestBody) toPin() *model.EcoPin {
	return &model.EcoPin{
		Title:       r.Title,
		Type:        model.PinType(r.Type),
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Contact:     r.Contact,
		Whatsapp:    r.Whatsapp,
		Discord:     r.Discord,
		Website:     r.Website,
		Image:       r.Image,
	}
}

func (r *PinRequestBody) toRequest() *model.PinRequest {
	return &model.PinRequest{
		Title:       r.Title,
		Type:        model.PinType(r.Type),
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Contact:     r.Contact,
		Whatsapp:    r.Whatsapp,
		Discord:     r.Discord,
		Website:     r.Website,
		Notes:       r.Notes,
	}
}

func (c *EcoMapController) Create(ctx *gin.Context) {
	var req PinRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	pin := req.toPin()
	if err := c.EcoMapService.CreatePin(ctx.Request.Context(), pin, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, pin)
}

func (c *EcoMapController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	var req PinRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pin := req.toPin()
	pin.ID = id
	pin.IsActive = true
	if err := c.EcoMapService.UpdatePin(ctx.Request.Context(), pin); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, pin)
}

func (c *EcoMapController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.EcoMapService.DeletePin(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func (c *EcoMapController) RequestPin(ctx *gin.Context) {
	var req PinRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	request := req.toRequest()
	if err := c.EcoMapService.RequestPin(ctx.Request.Context(), request, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, request)
}

func (c *EcoMapController) MyRequests(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	requests, err := c.EcoMapService.MyRequests(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

func (c *EcoMapController) AllRequests(ctx *gin.Context) {
	status := model.PinRequestStatus(ctx.Query("status"))
	if status == "all" {
		status = ""
	}

	requests, err := c.EcoMapService.ListRequests(ctx.Request.Context(), status)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

type PinDecisionRequest struct {
	AdminNotes string `json:"adminNotes" binding:"max=500"`
}

func (c *EcoMapController) Approve(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	var req PinDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, pin, err := c.EcoMapService.ApproveRequest(ctx.Request.Context(), id, req.AdminNotes)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"request": request, "pin": pin})
}

func (c *EcoMapController) Reject(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	var req PinDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, err := c.EcoMapService.RejectRequest(ctx.Request.Context(), id, req.AdminNotes)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, request)
}
