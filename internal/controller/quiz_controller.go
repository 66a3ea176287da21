package controller

import (
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// List returns active quizzes with correct answers stripped.
func (c *QuizController) List(ctx *gin.Context) {
	var moduleID *primitive.ObjectID
	if raw := ctx.Query("module"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid module id")
			return
		}
		moduleID = &id
	}

	quizzes, err := c.QuizService.List(ctx.Request.Context(), moduleID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	sanitized := make([]model.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		sanitized = append(sanitized, q.Sanitized())
	}
	util.Success(ctx, sanitized)
}

func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.QuizService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.Role == model.Student {
		util.Success(ctx, quiz.Sanitized())
		return
	}
	util.Success(ctx, quiz)
}

type QuizRequest struct {
	Title                    string             `json:"title" binding:"required"`
	Description              string             `json:"description"`
	Module                   string             `json:"module"`
	School                   string             `json:"school"`
	Questions                []model.Question   `json:"questions" binding:"required,min=1"`
	TimeLimit                int                `json:"timeLimit"`
	IsDailyQuestion          bool               `json:"isDailyQuestion"`
	RequiresModuleCompletion bool               `json:"requiresModuleCompletion"`
}

func (r *QuizRequest) toModel() (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:                    r.Title,
		Description:              r.Description,
		School:                   r.School,
		Questions:                r.Questions,
		TimeLimit:                r.TimeLimit,
		IsDailyQuestion:          r.IsDailyQuestion,
		RequiresModuleCompletion: r.RequiresModuleCompletion,
	}
	if r.Module != "" {
		moduleID, err := primitive.ObjectIDFromHex(r.Module)
		if err != nil {
			return nil, err
		}
		quiz.Module = moduleID
	}
	return quiz, nil
}

func (c *QuizController) Create(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	quiz, err := req.toModel()
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	if err := c.QuizService.Create(ctx.Request.Context(), quiz, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

func (c *QuizController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	existing, err := c.QuizService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := req.toModel()
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}
	quiz.ID = existing.ID
	quiz.IsActive = existing.IsActive
	quiz.DailyDate = existing.DailyDate
	quiz.CreatedBy = existing.CreatedBy
	quiz.CreatedAt = existing.CreatedAt

	if err := c.QuizService.Update(ctx.Request.Context(), quiz); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

func (c *QuizController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.QuizService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type MarkDailyRequest struct {
	Date string `json:"date" binding:"required"`
}

func (c *QuizController) MarkAsDaily(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	var req MarkDailyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.MarkAsDaily(ctx.Request.Context(), id, req.Date); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"marked": true})
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

func (c *QuizController) Submit(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), userID, id, req.Answers)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *QuizController) Daily(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	school := ""
	if claims != nil {
		school = claims.School
	}

	quiz, err := c.QuizService.DailyQuestion(ctx.Request.Context(), school)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz.Sanitized())
}

type DailyAnswerRequest struct {
	AnswerIndex *int `json:"answerIndex" binding:"required"`
}

func (c *QuizController) AnswerDaily(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)

	var req DailyAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.AnswerDaily(ctx.Request.Context(), userID, claims.School, *req.AnswerIndex)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *QuizController) MyAttempts(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	attempts, err := c.QuizService.AttemptsByUser(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

func (c *QuizController) Attempts(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	attempts, err := c.QuizService.AttemptsByQuiz(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
