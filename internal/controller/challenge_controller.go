package controller

import (
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

func (c *ChallengeController) List(ctx *gin.Context) {
	challenges, err := c.ChallengeService.List(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

func (c *ChallengeController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	challenge, err := c.ChallengeService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

func (c *ChallengeController) Joined(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	challenges, err := c.ChallengeService.Joined(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

type ChallengeRequest struct {
	Title              string                   `json:"title" binding:"required"`
	Description        string                   `json:"description"`
	PointsReward       int                      `json:"pointsReward" binding:"min=0"`
	Category           string                   `json:"category"`
	Duration           int                      `json:"duration" binding:"required,min=1"`
	School             string                   `json:"school"`
	CompletionCriteria model.CompletionCriteria `json:"completionCriteria"`
}

func (c *ChallengeController) Create(ctx *gin.Context) {
	var req ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	challenge := &model.Challenge{
		Title:              req.Title,
		Description:        req.Description,
		PointsReward:       req.PointsReward,
		Category:           req.Category,
		Duration:           req.Duration,
		School:             req.School,
		CompletionCriteria: req.CompletionCriteria,
	}
	if err := c.ChallengeService.Create(ctx.Request.Context(), challenge, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

func (c *ChallengeController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)

	var req ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge := &model.Challenge{
		ID:                 id,
		Title:              req.Title,
		Description:        req.Description,
		PointsReward:       req.PointsReward,
		Category:           req.Category,
		Duration:           req.Duration,
		School:             req.School,
		CompletionCriteria: req.CompletionCriteria,
		IsActive:           true,
	}
	if err := c.ChallengeService.Update(ctx.Request.Context(), challenge, userID, claims.Role); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

func (c *ChallengeController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)

	if err := c.ChallengeService.Delete(ctx.Request.Context(), id, userID, claims.Role); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func (c *ChallengeController) Join(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	challenge, err := c.ChallengeService.Join(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

type SubmitWorkRequest struct {
	Content     string `json:"content" binding:"required"`
	Description string `json:"description"`
}

func (c *ChallengeController) SubmitWork(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SubmitWorkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.ChallengeService.SubmitWork(
		ctx.Request.Context(), userID, id, req.Content, req.Description)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

type ReviewRequest struct {
	Status        model.SubmissionStatus `json:"status" binding:"required,oneof=approved rejected"`
	Feedback      string                 `json:"feedback"`
	PointsAwarded int                    `json:"pointsAwarded" binding:"min=0"`
}

func (c *ChallengeController) Review(ctx *gin.Context) {
	challengeID, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	participantID, ok := objectIDParam(ctx, "participantId")
	if !ok {
		return
	}
	submissionID, ok := objectIDParam(ctx, "submissionId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.ChallengeService.ReviewSubmission(
		ctx.Request.Context(), claims.Role, challengeID, participantID, submissionID,
		service.ReviewInput{
			Status:        req.Status,
			Feedback:      req.Feedback,
			PointsAwarded: req.PointsAwarded,
		})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

func (c *ChallengeController) Complete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	participant, err := c.ChallengeService.Complete(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, participant)
}

func (c *ChallengeController) MySubmissions(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	submissions, err := c.ChallengeService.MySubmissions(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

func (c *ChallengeController) Pending(ctx *gin.Context) {
	queue, err := c.ChallengeService.PendingSubmissions(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, queue)
}

func (c *ChallengeController) Stats(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	stats, err := c.ChallengeService.Stats(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
