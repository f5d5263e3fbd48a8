package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification holds the structure for the notifications collection in mongo
type Notification struct {
	ID      primitive.ObjectID  `json:"_id" bson:"_id"`
	Details NotificationDetails `json:"notification" bson:"notification"`
	Version int32               `json:"__v" bson:"__v"`
}

// NotificationDetails holds the structure for the inner notification details
type NotificationDetails struct {
	RecipientID      string           `json:"recipientID" bson:"recipientID"`
	SenderID         string           `json:"senderID" bson:"senderID"`
	Title            string           `json:"title" bson:"title"`
	Message          string           `json:"message" bson:"message"`
	NotificationType NotificationType `json:"notificationType" bson:"notificationType"`
	Priority         Priority         `json:"priority" bson:"priority"`

	// IsRead and ReadAt are set together; ReadAt keeps its first value
	// across repeated mark-read calls.
	IsRead bool                `json:"isRead" bson:"isRead"`
	ReadAt *primitive.DateTime `json:"readAt" bson:"readAt"`

	CaseID   string `json:"caseID,omitempty" bson:"caseID,omitempty"`
	ReportID string `json:"reportID,omitempty" bson:"reportID,omitempty"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// NotificationList is the AJAX shape for the notification dropdown
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}
