package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// User exported for testing purposes
type User struct {
	DB  databases.UserDatabase
	ADB databases.AuditLogDatabase
}

// UserHandler returns a user by ID
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, ok := requireRole(w, r, u.DB, models.RoleClerk, models.RoleJudge, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := u.DB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}
	dbResp.Details.Password = ""

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UsersByRoleHandler returns the id and display name of every active user
// holding the given role, for assignment pickers
func (u User) UsersByRoleHandler(w http.ResponseWriter, r *http.Request) {
	roleRaw := mux.Vars(r)["role"]
	role, err := models.ParseRole(roleRaw)
	if err != nil {
		config.ErrorStatus("invalid role", http.StatusBadRequest, w, err)
		return
	}

	if _, ok := requireRole(w, r, u.DB, models.RoleClerk, models.RoleJudge, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := u.DB.Find(ctx, bson.M{
		"user.profile.role":     role,
		"user.profile.isActive": true,
	})
	if err != nil {
		config.ErrorStatus("failed to get users by role", http.StatusNotFound, w, err)
		return
	}

	refs := make([]models.UserRef, 0, len(dbResp))
	for i := range dbResp {
		refs = append(refs, models.UserRef{
			ID:   dbResp[i].ID.Hex(),
			Name: dbResp[i].DisplayName(),
		})
	}

	b, err := json.Marshal(refs)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateProfileHandler applies a partial edit to the caller's own profile.
// Only the fields present in the body change; role and employee id do not.
func (u User) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, u.DB, models.RoleClerk, models.RoleJudge, models.RolePrisonOfficer)
	if !ok {
		return
	}

	var req models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if req.Email != nil {
		set["user.email"] = *req.Email
	}
	if req.FirstName != nil {
		set["user.firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["user.lastName"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		set["user.profile.phoneNumber"] = *req.PhoneNumber
	}
	if req.Department != nil {
		set["user.profile.department"] = *req.Department
	}
	if len(set) == 0 {
		config.ErrorStatus("no profile fields to update", http.StatusBadRequest, w, nil)
		return
	}
	set["user.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	err := u.DB.UpdateOne(ctx, bson.M{"_id": actor.ID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update profile", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, u.ADB, actor, models.AuditUpdate, "User", actor.ID.Hex(), "updated profile")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "profile updated"}`))
}
