package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// Audit exported for testing purposes
type Audit struct {
	DB  databases.AuditLogDatabase
	UDB databases.UserDatabase
}

// AuditLogsHandler returns recent audit log entries, newest first. The
// collection itself is append-only; this is the only read surface.
func (a Audit) AuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, a.UDB, models.RoleClerk); !ok {
		return
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	skip := int64(getPage(0, r)) * limit

	filter := bson.M{}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter["auditLog.userID"] = userID
	}
	if modelName := r.URL.Query().Get("model"); modelName != "" {
		filter["auditLog.modelName"] = modelName
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := a.DB.Find(ctx, filter, &options.FindOptions{
		Limit: &limit,
		Skip:  &skip,
		Sort:  bson.M{"auditLog.timestamp": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get audit logs", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.AuditLog{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
