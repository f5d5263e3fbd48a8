package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Hearing holds the structure for the hearings collection in mongo
type Hearing struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details HearingDetails     `json:"hearing" bson:"hearing"`
	Version int32              `json:"__v" bson:"__v"`
}

// HearingDetails holds the structure for the inner hearing details
type HearingDetails struct {
	CaseID      string             `json:"caseID" bson:"caseID"`
	HearingType HearingType        `json:"hearingType" bson:"hearingType"`
	Scheduled   primitive.DateTime `json:"scheduledDate" bson:"scheduledDate"`
	Courtroom   string             `json:"courtroom" bson:"courtroom"`
	JudgeID     string             `json:"judgeID" bson:"judgeID"`
	CreatedByID string             `json:"createdByID" bson:"createdByID"`
	Notes       string             `json:"notes" bson:"notes"`
	Outcome     string             `json:"outcome" bson:"outcome"`

	IsCompleted   bool                `json:"isCompleted" bson:"isCompleted"`
	CompletedByID string              `json:"completedByID" bson:"completedByID"`
	CompletedDate *primitive.DateTime `json:"completedDate" bson:"completedDate"`

	IsCancelled        bool   `json:"isCancelled" bson:"isCancelled"`
	CancellationReason string `json:"cancellationReason" bson:"cancellationReason"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// AssignedTo returns the id of the judge presiding over this hearing
func (h *Hearing) AssignedTo() string {
	return h.Details.JudgeID
}

// HearingUpdate carries a partial hearing edit. Nil fields are left
// untouched; JudgeID is honoured for clerks only.
type HearingUpdate struct {
	HearingType   *string `json:"hearingType"`
	ScheduledDate *string `json:"scheduledDate"`
	Courtroom     *string `json:"courtroom"`
	JudgeID       *string `json:"judgeID"`
	Notes         *string `json:"notes"`
}
