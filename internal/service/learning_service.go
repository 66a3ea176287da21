package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LearningService struct {
	Modules  ModuleStore
	Progress ProgressStore
	Points   *PointsService
}

func NewLearningService(modules ModuleStore, progress ProgressStore, points *PointsService) *LearningService {
	return &LearningService{Modules: modules, Progress: progress, Points: points}
}

func (s *LearningService) ListModules(ctx context.Context, category string) ([]model.Module, error) {
	return s.Modules.FindActive(ctx, category)
}

func (s *LearningService) GetModule(ctx context.Context, id primitive.ObjectID) (*model.Module, error) {
	return s.Modules.FindByID(ctx, id)
}

func (s *LearningService) CreateModule(ctx context.Context, m *model.Module, createdBy primitive.ObjectID) error {
	if m.Title == "" || len(m.Lessons) == 0 {
		return fmt.Errorf("%w: title and at least one lesson are required", util.ErrValidation)
	}
	if !validCategory(m.Category) {
		return fmt.Errorf("%w: unknown category %q", util.ErrValidation, m.Category)
	}

	m.RecalculateEstimatedTime()
	m.IsActive = true
	m.CreatedBy = createdBy
	m.CreatedAt = time.Now()
	return s.Modules.Create(ctx, m)
}

func (s *LearningService) UpdateModule(ctx context.Context, m *model.Module) error {
	if !validCategory(m.Category) {
		return fmt.Errorf("%w: unknown category %q", util.ErrValidation, m.Category)
	}
	m.RecalculateEstimatedTime()
	return s.Modules.Save(ctx, m)
}

func (s *LearningService) DeleteModule(ctx context.Context, id primitive.ObjectID) error {
	return s.Modules.Deactivate(ctx, id)
}

// GetModuleProgress finds or creates the progress record for a user/module pair.
func (s *LearningService) GetModuleProgress(ctx context.Context, userID, moduleID primitive.ObjectID) (*model.UserProgress, error) {
	if _, err := s.Modules.FindByID(ctx, moduleID); err != nil {
		return nil, err
	}

	progress, err := s.Progress.FindByUserAndModule(ctx, userID, moduleID)
	if errors.Is(err, util.ErrNotFound) {
		now := time.Now()
		progress = &model.UserProgress{
			User:             userID,
			Module:           moduleID,
			CompletedLessons: []int{},
			LastAccessed:     now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.Progress.Create(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	}
	return progress, err
}

// UpdateLessonProgress records a lesson as completed (or merely visited) and
// moves the lesson cursor. Repeating a lesson index is a no-op for the
// completed set.
func (s *LearningService) UpdateLessonProgress(ctx context.Context, userID, moduleID primitive.ObjectID, lessonIndex int, completed bool) (*model.UserProgress, error) {
	module, err := s.Modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if lessonIndex < 0 || lessonIndex >= len(module.Lessons) {
		return nil, fmt.Errorf("%w: lesson index %d out of range", util.ErrValidation, lessonIndex)
	}

	progress, err := s.GetModuleProgress(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	if completed {
		progress.MarkLessonComplete(lessonIndex)
	}
	progress.CurrentLesson = lessonIndex
	now := time.Now()
	progress.LastAccessed = now
	progress.UpdatedAt = now

	if err := s.Progress.Save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteModule is the one-shot completion transition: it requires every
// lesson to be done, awards the module's points through the ledger, bumps the
// completion counter and grants the category badge.
func (s *LearningService) CompleteModule(ctx context.Context, userID, moduleID primitive.ObjectID) (*model.UserProgress, int, error) {
	module, err := s.Modules.FindByID(ctx, moduleID)
	if err != nil {
		return nil, 0, err
	}

	progress, err := s.Progress.FindByUserAndModule(ctx, userID, moduleID)
	if err != nil {
		return nil, 0, err
	}

	if progress.IsCompleted {
		return nil, 0, fmt.Errorf("%w: module already completed", util.ErrConflict)
	}
	if len(progress.CompletedLessons) != len(module.Lessons) {
		return nil, 0, fmt.Errorf("%w: %d of %d lessons completed",
			util.ErrModuleNotCompleted, len(progress.CompletedLessons), len(module.Lessons))
	}

	now := time.Now()
	progress.IsCompleted = true
	progress.CompletedAt = now
	progress.EarnedPoints = module.Points
	progress.LastAccessed = now
	progress.UpdatedAt = now
	if err := s.Progress.Save(ctx, progress); err != nil {
		return nil, 0, err
	}

	user, err := s.Points.Apply(ctx, userID, module.Points, model.PointsModuleCompleted,
		fmt.Sprintf("Completed module: %s", module.Title), module.ID)
	if err != nil {
		return nil, 0, err
	}

	user.ModulesCompleted++
	user.AddBadge(module.Category+" Expert",
		fmt.Sprintf("Completed a module in the %s category", module.Category))
	if err := s.Points.Users.Save(ctx, user); err != nil {
		return nil, 0, err
	}

	return progress, module.Points, nil
}

// CompletionStatus reports whether the module can be completed right now.
func (s *LearningService) CompletionStatus(ctx context.Context, userID, moduleID primitive.ObjectID) (completed, total int, canComplete, isCompleted bool, err error) {
	module, err := s.Modules.FindByID(ctx, moduleID)
	if err != nil {
		return 0, 0, false, false, err
	}

	progress, err := s.GetModuleProgress(ctx, userID, moduleID)
	if err != nil {
		return 0, 0, false, false, err
	}

	completed = len(progress.CompletedLessons)
	total = len(module.Lessons)
	return completed, total, completed == total && !progress.IsCompleted, progress.IsCompleted, nil
}

// CompletedModules lists the user's finished progress records.
func (s *LearningService) CompletedModules(ctx context.Context, userID primitive.ObjectID) ([]model.UserProgress, error) {
	records, err := s.Progress.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var done []model.UserProgress
	for _, r := range records {
		if r.IsCompleted {
			done = append(done, r)
		}
	}
	return done, nil
}

func validCategory(category string) bool {
	for _, c := range model.ModuleCategories {
		if c == category {
			return true
		}
	}
	return false
}
