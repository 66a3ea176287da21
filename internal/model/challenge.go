package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is one piece of work handed in by a participant. It is created
// pending and reviewed exactly once to approved or rejected.
type Submission struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content       string             `bson:"content" json:"content"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Status        SubmissionStatus   `bson:"status" json:"status"`
	Feedback      string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	PointsAwarded int                `bson:"pointsAwarded" json:"pointsAwarded"`
	SubmittedAt   time.Time          `bson:"submittedAt" json:"submittedAt"`
	ReviewedAt    time.Time          `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
}

type Participant struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User                primitive.ObjectID `bson:"user" json:"user"`
	JoinedAt            time.Time          `bson:"joinedAt" json:"joinedAt"`
	Progress            float64            `bson:"progress" json:"progress"` // 0-100
	Completed           bool               `bson:"completed" json:"completed"`
	CompletedAt         time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Submissions         []Submission       `bson:"submissions" json:"submissions"`
	ApprovedSubmissions int                `bson:"approvedSubmissions" json:"approvedSubmissions"`
}

type CompletionCriteria struct {
	Type                   string `bson:"type" json:"type"` // only "custom" remains
	Target                 int    `bson:"target" json:"target"`
	RequiresSubmission     bool   `bson:"requiresSubmission" json:"requiresSubmission"`
	SubmissionType         string `bson:"submissionType,omitempty" json:"submissionType,omitempty"`
	SubmissionInstructions string `bson:"submissionInstructions,omitempty" json:"submissionInstructions,omitempty"`
}

type Challenge struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	PointsReward       int                `bson:"pointsReward" json:"pointsReward"`
	Category           string             `bson:"category" json:"category"`
	Duration           int                `bson:"duration" json:"duration"` // days
	StartDate          time.Time          `bson:"startDate" json:"startDate"`
	EndDate            time.Time          `bson:"endDate" json:"endDate"`
	School             string             `bson:"school" json:"school"`
	CompletionCriteria CompletionCriteria `bson:"completionCriteria" json:"completionCriteria"`
	Participants       []Participant      `bson:"participants" json:"participants"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	CreatedBy          primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// FindParticipant returns the participant record for the user, or nil.
func (c *Challenge) FindParticipant(userID primitive.ObjectID) *Participant {
	for i := range c.Participants {
		if c.Participants[i].User == userID {
			return &c.Participants[i]
		}
	}
	return nil
}

// ParticipantByID returns the participant with the given sub-document id, or nil.
func (c *Challenge) ParticipantByID(participantID primitive.ObjectID) *Participant {
	for i := range c.Participants {
		if c.Participants[i].ID == participantID {
			return &c.Participants[i]
		}
	}
	return nil
}

// SubmissionByID returns the submission with the given sub-document id, or nil.
func (p *Participant) SubmissionByID(submissionID primitive.ObjectID) *Submission {
	for i := range p.Submissions {
		if p.Submissions[i].ID == submissionID {
			return &p.Submissions[i]
		}
	}
	return nil
}

// Normalize stamps the derived fields: custom challenges always require a
// submission, and the end date follows the start date plus duration.
func (c *Challenge) Normalize() {
	if c.CompletionCriteria.Type == "" {
		c.CompletionCriteria.Type = "custom"
	}
	if c.CompletionCriteria.Type == "custom" {
		c.CompletionCriteria.RequiresSubmission = true
		if c.CompletionCriteria.SubmissionType == "" {
			c.CompletionCriteria.SubmissionType = "any"
		}
	}
	if c.CompletionCriteria.Target < 1 {
		c.CompletionCriteria.Target = 1
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Now()
	}
	c.EndDate = c.StartDate.AddDate(0, 0, c.Duration)
}
