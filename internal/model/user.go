package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// AdminSchool is the sentinel school under which platform admins are provisioned.
// Content created under it is visible to every school.
const AdminSchool = "ADMIN"

type PointsType string

const (
	PointsModuleCompleted    PointsType = "module_completed"
	PointsQuizCompleted      PointsType = "quiz_completed"
	PointsDailyQuestion      PointsType = "daily_question"
	PointsChallengeCompleted PointsType = "challenge_completed"
	PointsRewardRedemption   PointsType = "reward_redemption"
	PointsEventRegistration  PointsType = "event_registration"
	PointsSurveyCompleted    PointsType = "survey_completed"
	PointsOther              PointsType = "other"
)

// PointsEntry is one line of a user's points history. The history is append-only;
// the running counters on User are derived from it (best effort, not transactional).
type PointsEntry struct {
	Points      int                `bson:"points" json:"points"`
	Type        PointsType         `bson:"type" json:"type"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	RelatedID   primitive.ObjectID `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	EarnedAt    time.Time          `bson:"earnedAt" json:"earnedAt"`
}

type Badge struct {
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	EarnedAt    time.Time `bson:"earnedAt" json:"earnedAt"`
}

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	School           string             `bson:"school,omitempty" json:"school,omitempty"`
	RollNumber       string             `bson:"rollNumber,omitempty" json:"rollNumber,omitempty"`
	Role             UserRole           `bson:"role" json:"role"`
	EmailVerified    bool               `bson:"emailVerified" json:"emailVerified"`
	Points           int                `bson:"points" json:"points"`
	MonthlyPoints    int                `bson:"monthlyPoints" json:"monthlyPoints"`
	WeeklyPoints     int                `bson:"weeklyPoints" json:"weeklyPoints"`
	LastMonthlyReset time.Time          `bson:"lastMonthlyReset" json:"lastMonthlyReset"`
	LastWeeklyReset  time.Time          `bson:"lastWeeklyReset" json:"lastWeeklyReset"`
	ModulesCompleted int                `bson:"modulesCompleted" json:"modulesCompleted"`
	Streak           int                `bson:"streak" json:"streak"`
	LastDailyAnswer  time.Time          `bson:"lastDailyAnswer,omitempty" json:"lastDailyAnswer,omitempty"`
	Badges           []Badge            `bson:"badges" json:"badges"`

	// QuizAttempts keeps the latest score per quiz, keyed by the quiz id hex.
	// Serialized as a plain JSON object at the API boundary.
	QuizAttempts     map[string]int       `bson:"quizAttempts,omitempty" json:"quizAttempts"`
	CompletedSurveys []primitive.ObjectID `bson:"completedSurveys,omitempty" json:"completedSurveys"`
	PointsHistory    []PointsEntry        `bson:"pointsHistory" json:"pointsHistory"`

	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Interests []string  `bson:"interests,omitempty" json:"interests,omitempty"`
	LastLogin time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// AddBadge appends a badge unless one with the same name already exists.
// Reports whether the badge was added.
func (u *User) AddBadge(name, description string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return false
		}
	}
	u.Badges = append(u.Badges, Badge{
		Name:        name,
		Description: description,
		EarnedAt:    time.Now(),
	})
	return true
}

func (u *User) HasCompletedSurvey(surveyID primitive.ObjectID) bool {
	for _, id := range u.CompletedSurveys {
		if id == surveyID {
			return true
		}
	}
	return false
}

// RecordQuizScore stores the latest score for a quiz, allocating the map lazily.
func (u *User) RecordQuizScore(quizID primitive.ObjectID, score int) {
	if u.QuizAttempts == nil {
		u.QuizAttempts = make(map[string]int)
	}
	u.QuizAttempts[quizID.Hex()] = score
}
