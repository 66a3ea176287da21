package controller

import (
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	LearningService *service.LearningService
}

func NewModuleController(learningService *service.LearningService) *ModuleController {
	return &ModuleController{LearningService: learningService}
}

func (c *ModuleController) List(ctx *gin.Context) {
	modules, err := c.LearningService.ListModules(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

func (c *ModuleController) Get(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	module, err := c.LearningService.GetModule(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

type ModuleRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Category    string         `json:"category" binding:"required"`
	Lessons     []model.Lesson `json:"lessons" binding:"required,min=1"`
	Points      int            `json:"points" binding:"min=0"`
	School      string         `json:"school"`
	Badge       string         `json:"badge"`
}

func (c *ModuleController) Create(ctx *gin.Context) {
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	module := &model.Module{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Lessons:     req.Lessons,
		Points:      req.Points,
		School:      req.School,
		Badge:       req.Badge,
	}
	if err := c.LearningService.CreateModule(ctx.Request.Context(), module, userID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

func (c *ModuleController) Update(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	module, err := c.LearningService.GetModule(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module.Title = req.Title
	module.Description = req.Description
	module.Category = req.Category
	module.Lessons = req.Lessons
	module.Points = req.Points
	module.School = req.School
	module.Badge = req.Badge

	if err := c.LearningService.UpdateModule(ctx.Request.Context(), module); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

func (c *ModuleController) Delete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.LearningService.DeleteModule(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func (c *ModuleController) Progress(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	progress, err := c.LearningService.GetModuleProgress(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type LessonProgressRequest struct {
	LessonIndex int  `json:"lessonIndex" binding:"min=0"`
	Completed   bool `json:"completed"`
}

func (c *ModuleController) UpdateLessonProgress(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req LessonProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.LearningService.UpdateLessonProgress(
		ctx.Request.Context(), userID, id, req.LessonIndex, req.Completed)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

func (c *ModuleController) Complete(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	progress, pointsEarned, err := c.LearningService.CompleteModule(ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"progress": progress, "pointsEarned": pointsEarned})
}

func (c *ModuleController) CompletionStatus(ctx *gin.Context) {
	id, ok := objectIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	completed, total, canComplete, isCompleted, err := c.LearningService.CompletionStatus(
		ctx.Request.Context(), userID, id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"completedLessons": completed,
		"totalLessons":     total,
		"canComplete":      canComplete,
		"isCompleted":      isCompleted,
	})
}

func (c *ModuleController) Completed(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	records, err := c.LearningService.CompletedModules(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
