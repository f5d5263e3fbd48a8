package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// VisitorLog exported for testing purposes
type VisitorLog struct {
	DB  databases.VisitorLogDatabase
	IDB databases.InmateDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

type createVisitorLogRequest struct {
	VisitorName     string `json:"visitorName"`
	VisitorIDNumber string `json:"visitorIDNumber"`
	VisitorPhone    string `json:"visitorPhone"`
	Relationship    string `json:"relationship"`
	VisitType       string `json:"visitType"`
	VisitDate       string `json:"visitDate"` // RFC3339
	DurationMinutes int    `json:"durationMinutes"`
	Purpose         string `json:"purpose"`
	Notes           string `json:"notes"`
}

// CreateVisitorLogHandler records a visit to an inmate. Only the assigned
// officer may log visits. The visit cannot be in the future and the
// duration must fall within the allowed window.
func (v VisitorLog) CreateVisitorLogHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, v.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	inmate, err := v.IDB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}

	var req createVisitorLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	visitType, err := models.ParseVisitType(req.VisitType)
	if err != nil {
		config.ErrorStatus("invalid visit type", http.StatusBadRequest, w, err)
		return
	}
	if req.VisitorName == "" {
		config.ErrorStatus("visitorName is required", http.StatusBadRequest, w, nil)
		return
	}
	visitDate, err := time.Parse(time.RFC3339, req.VisitDate)
	if err != nil {
		config.ErrorStatus("invalid visit date, expected RFC3339", http.StatusBadRequest, w, err)
		return
	}
	if visitDate.After(time.Now()) {
		config.ErrorStatus("visit date cannot be in the future", http.StatusBadRequest, w, fmt.Errorf("visit date %s is in the future", req.VisitDate))
		return
	}
	if req.DurationMinutes < models.MinVisitDuration || req.DurationMinutes > models.MaxVisitDuration {
		config.ErrorStatus("visit duration out of range", http.StatusBadRequest, w,
			fmt.Errorf("duration must be between %d and %d minutes, got %d", models.MinVisitDuration, models.MaxVisitDuration, req.DurationMinutes))
		return
	}

	log := models.VisitorLog{
		ID: primitive.NewObjectID(),
		Details: models.VisitorLogDetails{
			InmateID:        inmateID,
			VisitorName:     req.VisitorName,
			VisitorIDNumber: req.VisitorIDNumber,
			VisitorPhone:    req.VisitorPhone,
			Relationship:    req.Relationship,
			VisitType:       visitType,
			VisitDate:       primitive.NewDateTimeFromTime(visitDate),
			DurationMinutes: req.DurationMinutes,
			Purpose:         req.Purpose,
			Notes:           req.Notes,
			AuthorizedByID:  actor.ID.Hex(),
			IsApproved:      true,
			CreatedAt:       primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if _, err := v.DB.InsertOne(ctx, log); err != nil {
		config.ErrorStatus("failed to insert visitor log", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, v.ADB, actor, models.AuditCreate, "VisitorLog", log.ID.Hex(), "logged visit for inmate "+inmate.Details.InmateID)

	b, err := json.Marshal(log)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// VisitorLogsByInmateHandler lists all visits recorded for an inmate
func (v VisitorLog) VisitorLogsByInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	if _, ok := requireRole(w, r, v.UDB, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := v.DB.Find(ctx, bson.M{"visitorLog.inmateID": inmateID}, &options.FindOptions{
		Sort: bson.M{"visitorLog.visitDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get visitor logs for inmate", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.VisitorLog{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
