package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Evidence holds the structure for the evidence collection in mongo
type Evidence struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details EvidenceDetails    `json:"evidence" bson:"evidence"`
	Version int32              `json:"__v" bson:"__v"`
}

// EvidenceDetails holds the structure for the inner evidence details
type EvidenceDetails struct {
	CaseID       string       `json:"caseID" bson:"caseID"`
	EvidenceType EvidenceType `json:"evidenceType" bson:"evidenceType"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description" bson:"description"`
	FileURL      string       `json:"fileURL" bson:"fileURL"`

	SubmittedByID  string             `json:"submittedByID" bson:"submittedByID"`
	SubmissionDate primitive.DateTime `json:"submissionDate" bson:"submissionDate"`

	// IsAdmissible starts true; a reject review is what rules evidence out
	IsAdmissible bool `json:"isAdmissible" bson:"isAdmissible"`

	// IsApproved is nil until the assigned judge reviews; review sets all
	// three reviewer fields together and may be repeated.
	IsApproved   *bool               `json:"isApproved" bson:"isApproved"`
	ReviewedByID string              `json:"reviewedByID" bson:"reviewedByID"`
	ReviewedDate *primitive.DateTime `json:"reviewedDate" bson:"reviewedDate"`
	ReviewNotes  string              `json:"reviewNotes" bson:"reviewNotes"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
