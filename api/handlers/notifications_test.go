package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/justicedesk/court-prison-api/api/handlers"
	"github.com/justicedesk/court-prison-api/databases/mocks"
	"github.com/justicedesk/court-prison-api/models"
)

func TestNotification_NotificationsHandlerReturnsUnreadCount(t *testing.T) {
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)

	items := []models.Notification{
		{
			ID: primitive.NewObjectID(),
			Details: models.NotificationDetails{
				RecipientID:      actor.ID.Hex(),
				Title:            "Case assigned",
				Message:          "Case CR-2026-001 has been assigned to Judge Test",
				NotificationType: models.NotifyCaseAssigned,
				Priority:         models.PriorityMedium,
				CreatedAt:        primitive.NewDateTimeFromTime(time.Now()),
			},
		},
	}
	mockNotificationDB.On("Find", mock.Anything, bson.M{"notification.recipientID": actor.ID.Hex()}, mock.Anything).Return(items, nil)
	mockNotificationDB.On("CountDocuments", mock.Anything, bson.M{
		"notification.recipientID": actor.ID.Hex(),
		"notification.isRead":      false,
	}).Return(int64(1), nil)

	handler := handlers.Notification{DB: mockNotificationDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/notifications", nil)
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.NotificationsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var list models.NotificationList
	err = json.Unmarshal(w.Body.Bytes(), &list)
	assert.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.Equal(t, int64(1), list.UnreadCount)
	assert.Equal(t, "Case assigned", list.Notifications[0].Details.Title)
}

func TestNotification_NotificationsHandlerEmptyList(t *testing.T) {
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)

	mockNotificationDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	mockNotificationDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)

	handler := handlers.Notification{DB: mockNotificationDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/notifications", nil)
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.NotificationsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notifications":[]`)
	assert.Contains(t, w.Body.String(), `"unreadCount":0`)
}

func TestNotification_MarkNotificationReadHandlerIdempotent(t *testing.T) {
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	notificationID := primitive.NewObjectID()
	alreadyRead := &models.Notification{
		ID: notificationID,
		Details: models.NotificationDetails{
			RecipientID: actor.ID.Hex(),
			IsRead:      true,
		},
	}

	// conditional update matches nothing when the notification is already
	// read; the follow-up lookup still finds it so the call succeeds
	mockNotificationDB.On("UpdateOne", mock.Anything, bson.M{
		"_id":                      notificationID,
		"notification.recipientID": actor.ID.Hex(),
		"notification.isRead":      false,
	}, mock.Anything).Return(nil)
	mockNotificationDB.On("FindOne", mock.Anything, bson.M{
		"_id":                      notificationID,
		"notification.recipientID": actor.ID.Hex(),
	}).Return(alreadyRead, nil)

	handler := handlers.Notification{DB: mockNotificationDB, UDB: mockUserDB, ADB: mockAuditDB}

	req, err := http.NewRequest("PUT", "/api/v1/notifications/"+notificationID.Hex()+"/read", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"notification_id": notificationID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.MarkNotificationReadHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "read")
	mockNotificationDB.AssertExpectations(t)
}

func TestNotification_MarkNotificationReadHandlerNotRecipient(t *testing.T) {
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	notificationID := primitive.NewObjectID()
	mockNotificationDB.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockNotificationDB.On("FindOne", mock.Anything, bson.M{
		"_id":                      notificationID,
		"notification.recipientID": actor.ID.Hex(),
	}).Return(nil, mongo.ErrNoDocuments)

	handler := handlers.Notification{DB: mockNotificationDB, UDB: mockUserDB}

	req, err := http.NewRequest("PUT", "/api/v1/notifications/"+notificationID.Hex()+"/read", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"notification_id": notificationID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.MarkNotificationReadHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "notification not found")
}
