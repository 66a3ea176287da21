package controller

import (
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	SurveyService *service.SurveyService
}

func NewSurveyController(surveyService *service.SurveyService) *SurveyController {
	return &SurveyController{SurveyService: surveyService}
}

func (c *SurveyController) List(ctx *gin.Context) {
	surveys, err := c.SurveyService.List(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, surveys)
}

func (c *SurveyController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	survey, err := c.SurveyService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, survey)
}

type SurveyRequest struct {
	Title          string                 `json:"title" binding:"required"`
	Description    string                 `json:"description"`
	Organization   string                 `json:"organization"`
	Category       string                 `json:"category"`
	Points         int                    `json:"points" binding:"min=0"`
	Duration       int                    `json:"duration" binding:"min=0"`
	Questions      []model.SurveyQuestion `json:"questions"`
	TargetAudience string                 `json:"targetAudience"`
}

func (c *SurveyController) Create(ctx *gin.Context) {
	var req SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	survey := &model.Survey{
		Title:          req.Title,
		Description:    req.Description,
		Organization:   req.Organization,
		Category:       req.Category,
		Points:         req.Points,
		Duration:       req.Duration,
		Questions:      req.Questions,
		TargetAudience: req.TargetAudience,
	}
	if err := c.SurveyService.Create(ctx.Request.Context(), survey, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, survey)
}

func (c *SurveyController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	survey, err := c.SurveyService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	var req SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey.Title = req.Title
	survey.Description = req.Description
	survey.Organization = req.Organization
	survey.Category = req.Category
	survey.Points = req.Points
	survey.Duration = req.Duration
	survey.Questions = req.Questions
	survey.TargetAudience = req.TargetAudience

	if err := c.SurveyService.Update(ctx.Request.Context(), survey); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, survey)
}

func (c *SurveyController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.SurveyService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func (c *SurveyController) Complete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	completion, err := c.SurveyService.Complete(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}
