package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Case holds the structure for the cases collection in mongo
type Case struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details CaseDetails        `json:"case" bson:"case"`
	Version int32              `json:"__v" bson:"__v"`
}

// CaseDetails holds the structure for the inner case details
type CaseDetails struct {
	CaseNumber  string       `json:"caseNumber" bson:"caseNumber"`
	Title       string       `json:"title" bson:"title"`
	CaseType    CaseType     `json:"caseType" bson:"caseType"`
	Description string       `json:"description" bson:"description"`
	Status      CaseStatus   `json:"status" bson:"status"`
	Priority    CasePriority `json:"priority" bson:"priority"`

	PlaintiffName string `json:"plaintiffName" bson:"plaintiffName"`
	DefendantName string `json:"defendantName" bson:"defendantName"`

	CreatedByID     string `json:"createdByID" bson:"createdByID"`
	AssignedJudgeID string `json:"assignedJudgeID" bson:"assignedJudgeID"`

	FilingDate      primitive.DateTime  `json:"filingDate" bson:"filingDate"` // immutable after creation
	AssignedDate    *primitive.DateTime `json:"assignedDate" bson:"assignedDate"`
	AssignmentNotes string              `json:"assignmentNotes" bson:"assignmentNotes"`

	// Decision fields, set together when the assigned judge passes sentence
	DecisionDate     *primitive.DateTime `json:"decisionDate" bson:"decisionDate"`
	Verdict          string              `json:"verdict" bson:"verdict"`
	SentenceType     SentenceType        `json:"sentenceType" bson:"sentenceType"`
	SentenceDuration string              `json:"sentenceDuration" bson:"sentenceDuration"`
	SentenceNotes    string              `json:"sentenceNotes" bson:"sentenceNotes"`
	FineAmount       float64             `json:"fineAmount" bson:"fineAmount"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// AssignedTo returns the id of the judge this case is assigned to
func (c *Case) AssignedTo() string {
	return c.Details.AssignedJudgeID
}

// CaseUpdate carries a partial case edit. Nil fields are left untouched.
// AssignedJudgeID is honoured for clerks only.
type CaseUpdate struct {
	Title           *string  `json:"title"`
	CaseType        *string  `json:"caseType"`
	Description     *string  `json:"description"`
	Priority        *string  `json:"priority"`
	PlaintiffName   *string  `json:"plaintiffName"`
	DefendantName   *string  `json:"defendantName"`
	AssignedJudgeID *string  `json:"assignedJudgeID"`
	FineAmount      *float64 `json:"fineAmount"`
}
