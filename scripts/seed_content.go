// Seeds a fresh database with starter learning content: one module per
// category, a daily question, a challenge, a couple of rewards and an event.
// Safe to re-run; it exits without writing when modules already exist.
//
// Usage: go run scripts/seed_content.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/config"
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/repository"
	"github.com/Chirandip-dev07/ujjivana/internal/service"
	"github.com/Chirandip-dev07/ujjivana/pkg/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)
	modules := repository.NewModuleRepository(db)
	progress := repository.NewProgressRepository(db)
	quizzes := repository.NewQuizRepository(db)
	attempts := repository.NewQuizAttemptRepository(db)
	challenges := repository.NewChallengeRepository(db)
	rewards := repository.NewRewardRepository(db)
	redemptions := repository.NewRedemptionRepository(db)
	events := repository.NewEventRepository(db)

	existing, err := modules.FindActive(ctx, "")
	if err != nil {
		log.Fatalf("failed to inspect modules: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("found %d modules, nothing to seed", len(existing))
		return
	}

	createdBy := primitive.NilObjectID
	if admin, err := users.FindByEmail(ctx, cfg.Admin.Email); err == nil {
		createdBy = admin.ID
	} else {
		log.Println("no admin account found; seeding content without an owner")
	}

	points := service.NewPointsService(users)
	learning := service.NewLearningService(modules, progress, points)
	quizSvc := service.NewQuizService(quizzes, attempts, progress, points)
	challengeSvc := service.NewChallengeService(challenges, points)
	rewardSvc := service.NewRewardService(rewards, redemptions, users)
	eventSvc := service.NewEventService(events, points)

	var moduleIDs []primitive.ObjectID
	for _, category := range model.ModuleCategories {
		m := &model.Module{
			Title:       fmt.Sprintf("%s: Getting Started", category),
			Description: fmt.Sprintf("An introduction to %s for first-time learners.", category),
			Category:    category,
			Lessons: []model.Lesson{
				{Title: "Why it matters", Duration: 10, Order: 1},
				{Title: "Everyday actions", Duration: 15, Order: 2},
				{Title: "Taking it further", Duration: 10, Order: 3},
			},
			Points: 50,
		}
		if err := learning.CreateModule(ctx, m, createdBy); err != nil {
			log.Fatalf("failed to seed module %q: %v", m.Title, err)
		}
		moduleIDs = append(moduleIDs, m.ID)
	}
	log.Printf("seeded %d modules", len(moduleIDs))

	daily := &model.Quiz{
		Title: "Daily Question",
		Questions: []model.Question{{
			Question:      "Which bin does a banana peel belong in?",
			Options:       []string{"Recycling", "Compost", "Landfill", "Hazardous waste"},
			CorrectAnswer: 1,
		}},
	}
	if err := quizSvc.Create(ctx, daily, createdBy); err != nil {
		log.Fatalf("failed to seed daily quiz: %v", err)
	}
	if err := quizSvc.MarkAsDaily(ctx, daily.ID, time.Now().Format("2006-01-02")); err != nil {
		log.Fatalf("failed to mark daily quiz: %v", err)
	}

	moduleQuiz := &model.Quiz{
		Title:                    "Green Habits Check",
		Module:                   moduleIDs[0],
		RequiresModuleCompletion: true,
		Questions: []model.Question{
			{
				Question:      "Which habit saves the most water at home?",
				Options:       []string{"Shorter showers", "Leaving taps running", "Daily car washes"},
				CorrectAnswer: 0,
			},
			{
				Question:      "Reusable bags primarily reduce which waste stream?",
				Options:       []string{"Organic waste", "Single-use plastic", "E-waste"},
				CorrectAnswer: 1,
			},
		},
	}
	if err := quizSvc.Create(ctx, moduleQuiz, createdBy); err != nil {
		log.Fatalf("failed to seed module quiz: %v", err)
	}
	log.Println("seeded quizzes")

	challenge := &model.Challenge{
		Title:        "Plastic-Free Week",
		Description:  "Avoid single-use plastic for seven days and share photo evidence.",
		PointsReward: 100,
		Category:     "Green Habits",
		Duration:     7,
		CompletionCriteria: model.CompletionCriteria{
			Type:                   "custom",
			Target:                 3,
			SubmissionInstructions: "Upload one photo per plastic-free day, at least three days.",
		},
	}
	if err := challengeSvc.Create(ctx, challenge, createdBy); err != nil {
		log.Fatalf("failed to seed challenge: %v", err)
	}
	log.Println("seeded challenge")

	stock := 25
	seedRewards := []*model.Reward{
		{
			Name:           "Steel Water Bottle",
			Description:    "Insulated bottle to replace disposables.",
			PointsRequired: 500,
			Category:       "merchandise",
			Type:           model.RewardProduct,
			Stock:          &stock,
		},
		{
			Name:               "Eco Store Discount",
			Description:        "10% off at partner eco stores.",
			PointsRequired:     200,
			Category:           "coupons",
			Type:               model.RewardCoupon,
			DiscountPercentage: 10,
		},
	}
	for _, rw := range seedRewards {
		if err := rewardSvc.Create(ctx, rw, createdBy); err != nil {
			log.Fatalf("failed to seed reward %q: %v", rw.Name, err)
		}
	}
	log.Println("seeded rewards")

	event := &model.Event{
		Name:               "Community Cleanup Drive",
		Description:        "Join us for a morning of cleaning the riverside park.",
		Location:           "Riverside Park",
		Date:               time.Now().AddDate(0, 0, 14),
		LastDateToRegister: time.Now().AddDate(0, 0, 10),
		MaxParticipants:    100,
		PointsReward:       25,
	}
	if err := eventSvc.Create(ctx, event, createdBy); err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}
	log.Println("seeded event")

	log.Println("seeding complete")
}
