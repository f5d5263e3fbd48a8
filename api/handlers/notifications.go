package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NotificationHub stores connected users (userId -> *websocket.Conn)
type NotificationHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

var hub = &NotificationHub{
	clients: make(map[string]*websocket.Conn),
	mutex:   sync.Mutex{},
}

// Notification exported for testing purposes
type Notification struct {
	DB  databases.NotificationDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

// HandleNotificationsWebSocket registers a websocket client for push delivery
func HandleNotificationsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		conn.Close()
		return
	}

	hub.mutex.Lock()
	hub.clients[userID] = conn
	hub.mutex.Unlock()
	zap.S().Debugf("user %s connected to /ws/notifications", userID)

	conn.SetCloseHandler(func(code int, text string) error {
		hub.mutex.Lock()
		delete(hub.clients, userID)
		hub.mutex.Unlock()
		zap.S().Debugf("user %s disconnected from /ws/notifications", userID)
		return nil
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// sendNotificationToUser pushes a notification over the user's websocket
// connection, if one is registered
func sendNotificationToUser(userID string, notification interface{}) {
	hub.mutex.Lock()
	conn, exists := hub.clients[userID]
	hub.mutex.Unlock()

	if exists {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "new_notification",
			"data":  notification,
		})
		if err != nil {
			zap.S().Errorw("error sending notification", "userId", userID, "error", err)
			hub.mutex.Lock()
			delete(hub.clients, userID)
			hub.mutex.Unlock()
			conn.Close()
		}
	}
}

// createNotification persists a notification and pushes it to the recipient
func createNotification(ctx context.Context, ndb databases.NotificationDatabase, details models.NotificationDetails) {
	details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	n := models.Notification{
		ID:      primitive.NewObjectID(),
		Details: details,
	}
	if _, err := ndb.InsertOne(ctx, n); err != nil {
		zap.S().Errorw("failed to insert notification",
			"error", err,
			"recipient", details.RecipientID,
		)
		return
	}
	sendNotificationToUser(details.RecipientID, n)
}

// NotificationsHandler returns the caller's 20 most recent notifications
// plus their unread count
func (n Notification) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, n.UDB, models.RoleClerk, models.RoleJudge, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	limit := int64(20)
	filter := bson.M{"notification.recipientID": actor.ID.Hex()}
	dbResp, err := n.DB.Find(ctx, filter, &options.FindOptions{
		Limit: &limit,
		Sort:  bson.M{"notification.createdAt": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get notifications", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Notification{}
	}

	unread, err := n.DB.CountDocuments(ctx, bson.M{
		"notification.recipientID": actor.ID.Hex(),
		"notification.isRead":      false,
	})
	if err != nil {
		config.ErrorStatus("failed to count unread notifications", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.NotificationList{
		Notifications: dbResp,
		UnreadCount:   unread,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkNotificationReadHandler marks one of the caller's notifications as
// read. The operation is idempotent: the first call stamps readAt, later
// calls succeed without touching it.
func (n Notification) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notification_id"]

	nID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, n.UDB, models.RoleClerk, models.RoleJudge, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// only flips unread notifications so readAt keeps its first value
	err = n.DB.UpdateOne(ctx, bson.M{
		"_id":                      nID,
		"notification.recipientID": actor.ID.Hex(),
		"notification.isRead":      false,
	}, bson.M{"$set": bson.M{
		"notification.isRead": true,
		"notification.readAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to mark notification read", http.StatusInternalServerError, w, err)
		return
	}

	// re-marking an already-read notification still succeeds; a miss here
	// means the notification doesn't exist or belongs to someone else
	_, err = n.DB.FindOne(ctx, bson.M{
		"_id":                      nID,
		"notification.recipientID": actor.ID.Hex(),
	})
	if err != nil {
		config.ErrorStatus("notification not found", http.StatusNotFound, w, err)
		return
	}

	recordAudit(r, n.ADB, actor, models.AuditRead, "Notification", notificationID, "marked notification read")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "read"}`))
}
