package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// InmateReport holds the structure for the inmateReports collection in mongo
type InmateReport struct {
	ID      primitive.ObjectID  `json:"_id" bson:"_id"`
	Details InmateReportDetails `json:"inmateReport" bson:"inmateReport"`
	Version int32               `json:"__v" bson:"__v"`
}

// InmateReportDetails holds the structure for the inner inmate report details
type InmateReportDetails struct {
	InmateID        string           `json:"inmateID" bson:"inmateID"` // mongo id of the inmate document
	ReportType      InmateReportType `json:"reportType" bson:"reportType"`
	Title           string           `json:"title" bson:"title"`
	Content         string           `json:"content" bson:"content"`
	Recommendations string           `json:"recommendations" bson:"recommendations"`
	Priority        Priority         `json:"priority" bson:"priority"`

	SubmittedByID  string              `json:"submittedByID" bson:"submittedByID"`
	SubmissionDate primitive.DateTime  `json:"submissionDate" bson:"submissionDate"`
	IncidentDate   *primitive.DateTime `json:"incidentDate" bson:"incidentDate"`

	// Review fields, written together in a single update
	Status       InmateReportStatus  `json:"status" bson:"status"`
	IsReviewed   bool                `json:"isReviewed" bson:"isReviewed"`
	ReviewedByID string              `json:"reviewedByID" bson:"reviewedByID"`
	ReviewDate   *primitive.DateTime `json:"reviewDate" bson:"reviewDate"`
	ReviewNotes  string              `json:"reviewNotes" bson:"reviewNotes"`

	ActionRequired bool                `json:"actionRequired" bson:"actionRequired"`
	ActionTaken    string              `json:"actionTaken" bson:"actionTaken"`
	FollowUpDate   *primitive.DateTime `json:"followUpDate" bson:"followUpDate"`
}
