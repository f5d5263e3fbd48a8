package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CaseReport holds the structure for the caseReports collection in mongo
type CaseReport struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details CaseReportDetails  `json:"caseReport" bson:"caseReport"`
	Version int32              `json:"__v" bson:"__v"`
}

// CaseReportDetails holds the structure for the inner case report details
type CaseReportDetails struct {
	CaseID          string         `json:"caseID" bson:"caseID"`
	ReportType      CaseReportType `json:"reportType" bson:"reportType"`
	Title           string         `json:"title" bson:"title"`
	Content         string         `json:"content" bson:"content"`
	Recommendations string         `json:"recommendations" bson:"recommendations"`
	Priority        Priority       `json:"priority" bson:"priority"`

	SubmittedByID  string             `json:"submittedByID" bson:"submittedByID"`
	SubmissionDate primitive.DateTime `json:"submissionDate" bson:"submissionDate"`

	IsApproved   bool                `json:"isApproved" bson:"isApproved"`
	ApprovedByID string              `json:"approvedByID" bson:"approvedByID"`
	ApprovalDate *primitive.DateTime `json:"approvalDate" bson:"approvalDate"`
}
