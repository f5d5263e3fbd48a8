package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// Release exported for testing purposes
type Release struct {
	DB  databases.ReleaseDatabase
	UDB databases.UserDatabase
}

// ReleasesByInmateHandler lists the release records for an inmate.
// Normally zero or one, but transfers back into custody can produce more.
func (rl Release) ReleasesByInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	if _, ok := requireRole(w, r, rl.UDB, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := rl.DB.Find(ctx, bson.M{"release.inmateID": inmateID}, &options.FindOptions{
		Sort: bson.M{"release.releaseDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get releases for inmate", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Release{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
