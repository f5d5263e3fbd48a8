package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

const dateLayout = "2006-01-02"

// currentActor loads the authenticated caller's user document using the
// id the auth middleware put on the request context
func currentActor(ctx context.Context, udb databases.UserDatabase) (*models.User, error) {
	id := api.ActorID(ctx)
	if id == "" {
		return nil, errors.New("no authenticated user on request")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return udb.FindOne(ctx, bson.M{"_id": oid})
}

// requireRole resolves the caller and checks the role gate. On failure it
// writes the error response and returns ok=false; the caller must return.
func requireRole(w http.ResponseWriter, r *http.Request, udb databases.UserDatabase, roles ...models.Role) (*models.User, bool) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	actor, err := currentActor(ctx, udb)
	if err != nil {
		config.ErrorStatus("failed to resolve current user", http.StatusUnauthorized, w, err)
		return nil, false
	}
	if !models.HasRole(actor, roles...) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("requires one of %v", roles))
		return nil, false
	}
	return actor, true
}

// recordAudit appends an audit log entry for a completed operation. Failures
// are logged and swallowed so they never fail the request itself.
func recordAudit(r *http.Request, adb databases.AuditLogDatabase, actor *models.User, action models.AuditAction, modelName, objectID, description string) {
	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	entry := models.AuditLog{
		ID: primitive.NewObjectID(),
		Details: models.AuditLogDetails{
			UserID:      actor.ID.Hex(),
			Action:      action,
			ModelName:   modelName,
			ObjectID:    objectID,
			Description: description,
			IPAddress:   api.ClientIP(r),
			UserAgent:   r.UserAgent(),
			Timestamp:   primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if _, err := adb.InsertOne(ctx, entry); err != nil {
		zap.S().Errorw("failed to write audit log",
			"error", err,
			"action", action,
			"model", modelName,
		)
	}
}

// parseDate parses a YYYY-MM-DD value into a mongo datetime at midnight UTC
func parseDate(value string) (primitive.DateTime, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return 0, err
	}
	return primitive.NewDateTimeFromTime(t), nil
}

// todayStart returns the caller's "today" at midnight. Day windows built
// from it are end-exclusive.
func todayStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// dayWindow builds the [start, start+24h) filter for a datetime field
func dayWindow(start time.Time) bson.M {
	return bson.M{
		"$gte": primitive.NewDateTimeFromTime(start),
		"$lt":  primitive.NewDateTimeFromTime(start.Add(24 * time.Hour)),
	}
}

func getPage(page int, r *http.Request) int {
	if p := r.URL.Query().Get("page"); p != "" {
		fmt.Sscanf(p, "%d", &page)
		if page < 0 {
			page = 0
		}
	}
	return page
}
