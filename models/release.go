package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Release holds the structure for the releases collection in mongo
type Release struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details ReleaseDetails     `json:"release" bson:"release"`
	Version int32              `json:"__v" bson:"__v"`
}

// ReleaseDetails holds the structure for the inner release details
type ReleaseDetails struct {
	InmateID       string             `json:"inmateID" bson:"inmateID"`
	ReleaseDate    primitive.DateTime `json:"releaseDate" bson:"releaseDate"`
	ReleaseType    ReleaseType        `json:"releaseType" bson:"releaseType"`
	Notes          string             `json:"notes" bson:"notes"`
	AuthorizedByID string             `json:"authorizedByID" bson:"authorizedByID"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
