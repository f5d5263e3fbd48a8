package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AuditLog holds the structure for the auditLogs collection in mongo.
// Entries are append-only; there is no update or delete surface.
type AuditLog struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details AuditLogDetails    `json:"auditLog" bson:"auditLog"`
	Version int32              `json:"__v" bson:"__v"`
}

// AuditLogDetails holds the structure for the inner audit log details
type AuditLogDetails struct {
	UserID      string             `json:"userID" bson:"userID"`
	Action      AuditAction        `json:"action" bson:"action"`
	ModelName   string             `json:"modelName" bson:"modelName"`
	ObjectID    string             `json:"objectID" bson:"objectID"`
	Description string             `json:"description" bson:"description"`
	IPAddress   string             `json:"ipAddress" bson:"ipAddress"`
	UserAgent   string             `json:"userAgent" bson:"userAgent"`
	Timestamp   primitive.DateTime `json:"timestamp" bson:"timestamp"`
}
