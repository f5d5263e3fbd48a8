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

// Hearing exported for testing purposes
type Hearing struct {
	DB  databases.HearingDatabase
	CDB databases.CaseDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

type createHearingRequest struct {
	HearingType   string `json:"hearingType"`
	ScheduledDate string `json:"scheduledDate"`
	Courtroom     string `json:"courtroom"`
	JudgeID       string `json:"judgeID"`
	Notes         string `json:"notes"`
}

type completeHearingRequest struct {
	Outcome string `json:"outcome"`
}

// CreateHearingHandler schedules a hearing for a case. Clerks, or the
// case's assigned judge. When no judge is supplied the case's assigned
// judge presides.
func (h Hearing) CreateHearingHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, h.UDB, models.RoleClerk, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := h.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.HasRole(actor, models.RoleClerk) && !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	var req createHearingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	hearingType, err := models.ParseHearingType(req.HearingType)
	if err != nil {
		config.ErrorStatus("invalid hearing type", http.StatusBadRequest, w, err)
		return
	}
	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		config.ErrorStatus("invalid scheduled date, expected RFC3339", http.StatusBadRequest, w, err)
		return
	}

	judgeID := req.JudgeID
	if judgeID == "" {
		judgeID = courtCase.Details.AssignedJudgeID
	}
	if judgeID == "" {
		config.ErrorStatus("hearing requires a judge", http.StatusBadRequest, w, fmt.Errorf("case has no assigned judge and none was supplied"))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	hearing := models.Hearing{
		ID: primitive.NewObjectID(),
		Details: models.HearingDetails{
			CaseID:      caseID,
			HearingType: hearingType,
			Scheduled:   primitive.NewDateTimeFromTime(scheduled),
			Courtroom:   req.Courtroom,
			JudgeID:     judgeID,
			CreatedByID: actor.ID.Hex(),
			Notes:       req.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	if _, err := h.DB.InsertOne(ctx, hearing); err != nil {
		config.ErrorStatus("failed to insert hearing", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, h.ADB, actor, models.AuditCreate, "Hearing", hearing.ID.Hex(), "scheduled hearing for case "+courtCase.Details.CaseNumber)

	b, err := json.Marshal(hearing)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// HearingsByCaseHandler lists all hearings for a case
func (h Hearing) HearingsByCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	if _, ok := requireRole(w, r, h.UDB, models.RoleClerk, models.RoleJudge); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := h.DB.Find(ctx, bson.M{"hearing.caseID": caseID}, &options.FindOptions{
		Sort: bson.M{"hearing.scheduledDate": 1},
	})
	if err != nil {
		config.ErrorStatus("failed to get hearings for case", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Hearing{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateHearingHandler applies a partial edit to a hearing. Clerks, or
// the hearing's judge; moving the hearing to another judge is clerk-only.
func (h Hearing) UpdateHearingHandler(w http.ResponseWriter, r *http.Request) {
	hearingID := mux.Vars(r)["hearing_id"]

	hID, err := primitive.ObjectIDFromHex(hearingID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, h.UDB, models.RoleClerk, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearing, err := h.DB.FindOne(ctx, bson.M{"_id": hID})
	if err != nil {
		config.ErrorStatus("failed to get hearing by ID", http.StatusNotFound, w, err)
		return
	}

	isClerk := models.HasRole(actor, models.RoleClerk)
	if !isClerk && !models.IsAssignedTo(actor, hearing) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("hearing does not belong to this judge"))
		return
	}

	var req models.HearingUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if req.HearingType != nil {
		parsed, err := models.ParseHearingType(*req.HearingType)
		if err != nil {
			config.ErrorStatus("invalid hearing type", http.StatusBadRequest, w, err)
			return
		}
		set["hearing.hearingType"] = parsed
	}
	if req.ScheduledDate != nil {
		scheduled, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			config.ErrorStatus("invalid scheduled date, expected RFC3339", http.StatusBadRequest, w, err)
			return
		}
		set["hearing.scheduledDate"] = primitive.NewDateTimeFromTime(scheduled)
	}
	if req.Courtroom != nil {
		set["hearing.courtroom"] = *req.Courtroom
	}
	if req.Notes != nil {
		set["hearing.notes"] = *req.Notes
	}
	if req.JudgeID != nil {
		if !isClerk {
			config.ErrorStatus("only clerks may move a hearing to another judge", http.StatusForbidden, w, fmt.Errorf("judge cannot change hearing assignment"))
			return
		}
		set["hearing.judgeID"] = *req.JudgeID
	}
	if len(set) == 0 {
		config.ErrorStatus("no hearing fields to update", http.StatusBadRequest, w, nil)
		return
	}
	set["hearing.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = h.DB.UpdateOne(ctx, bson.M{"_id": hID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update hearing", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, h.ADB, actor, models.AuditUpdate, "Hearing", hearingID, "updated hearing")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "hearing updated"}`))
}

// CompleteHearingHandler marks a hearing as held and records the outcome.
// Clerks, or the hearing's judge. Cancellation state is untouched.
func (h Hearing) CompleteHearingHandler(w http.ResponseWriter, r *http.Request) {
	hearingID := mux.Vars(r)["hearing_id"]

	hID, err := primitive.ObjectIDFromHex(hearingID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, h.UDB, models.RoleClerk, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	hearing, err := h.DB.FindOne(ctx, bson.M{"_id": hID})
	if err != nil {
		config.ErrorStatus("failed to get hearing by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.HasRole(actor, models.RoleClerk) && !models.IsAssignedTo(actor, hearing) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("hearing does not belong to this judge"))
		return
	}

	var req completeHearingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = h.DB.UpdateOne(ctx, bson.M{"_id": hID}, bson.M{"$set": bson.M{
		"hearing.isCompleted":   true,
		"hearing.outcome":       req.Outcome,
		"hearing.completedByID": actor.ID.Hex(),
		"hearing.completedDate": now,
		"hearing.updatedAt":     now,
	}})
	if err != nil {
		config.ErrorStatus("failed to complete hearing", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, h.ADB, actor, models.AuditUpdate, "Hearing", hearingID, "completed hearing")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "hearing completed"}`))
}
