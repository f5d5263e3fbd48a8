package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Visit duration bounds in minutes, inclusive
const (
	MinVisitDuration = 15
	MaxVisitDuration = 480
)

// VisitorLog holds the structure for the visitorLogs collection in mongo
type VisitorLog struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details VisitorLogDetails  `json:"visitorLog" bson:"visitorLog"`
	Version int32              `json:"__v" bson:"__v"`
}

// VisitorLogDetails holds the structure for the inner visitor log details
type VisitorLogDetails struct {
	InmateID        string    `json:"inmateID" bson:"inmateID"`
	VisitorName     string    `json:"visitorName" bson:"visitorName"`
	VisitorIDNumber string    `json:"visitorIDNumber" bson:"visitorIDNumber"`
	VisitorPhone    string    `json:"visitorPhone" bson:"visitorPhone"`
	Relationship    string    `json:"relationship" bson:"relationship"`
	VisitType       VisitType `json:"visitType" bson:"visitType"`

	VisitDate       primitive.DateTime `json:"visitDate" bson:"visitDate"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`

	Purpose        string `json:"purpose" bson:"purpose"`
	Notes          string `json:"notes" bson:"notes"`
	AuthorizedByID string `json:"authorizedByID" bson:"authorizedByID"`
	IsApproved     bool   `json:"isApproved" bson:"isApproved"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
