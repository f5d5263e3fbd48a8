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

// Evidence exported for testing purposes
type Evidence struct {
	DB  databases.EvidenceDatabase
	CDB databases.CaseDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

type addEvidenceRequest struct {
	EvidenceType string `json:"evidenceType"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	FileURL      string `json:"fileURL"`
}

type reviewEvidenceRequest struct {
	Action string `json:"action"` // approve or reject
	Notes  string `json:"notes"`
}

// AddEvidenceHandler attaches a piece of evidence to a case. Clerks, or
// the case's assigned judge.
func (e Evidence) AddEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, e.UDB, models.RoleClerk, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := e.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.HasRole(actor, models.RoleClerk) && !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	var req addEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	evidenceType, err := models.ParseEvidenceType(req.EvidenceType)
	if err != nil {
		config.ErrorStatus("invalid evidence type", http.StatusBadRequest, w, err)
		return
	}
	if req.Title == "" {
		config.ErrorStatus("title is required", http.StatusBadRequest, w, nil)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	item := models.Evidence{
		ID: primitive.NewObjectID(),
		Details: models.EvidenceDetails{
			CaseID:         caseID,
			EvidenceType:   evidenceType,
			Title:          req.Title,
			Description:    req.Description,
			FileURL:        req.FileURL,
			SubmittedByID:  actor.ID.Hex(),
			SubmissionDate: now,
			IsAdmissible:   true,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	if _, err := e.DB.InsertOne(ctx, item); err != nil {
		config.ErrorStatus("failed to insert evidence", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, e.ADB, actor, models.AuditCreate, "Evidence", item.ID.Hex(), "added evidence to case "+courtCase.Details.CaseNumber)

	b, err := json.Marshal(item)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// EvidenceByCaseHandler lists all evidence attached to a case
func (e Evidence) EvidenceByCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	if _, ok := requireRole(w, r, e.UDB, models.RoleClerk, models.RoleJudge); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := e.DB.Find(ctx, bson.M{"evidence.caseID": caseID}, &options.FindOptions{
		Sort: bson.M{"evidence.submissionDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get evidence for case", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Evidence{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ReviewEvidenceHandler records the assigned judge's ruling on a piece of
// evidence. Action is approve or reject; anything else is invalid.
// Re-reviewing overwrites the previous ruling.
func (e Evidence) ReviewEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	evidenceID := mux.Vars(r)["evidence_id"]

	eID, err := primitive.ObjectIDFromHex(evidenceID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, e.UDB, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	item, err := e.DB.FindOne(ctx, bson.M{"_id": eID})
	if err != nil {
		config.ErrorStatus("failed to get evidence by ID", http.StatusNotFound, w, err)
		return
	}

	cID, err := primitive.ObjectIDFromHex(item.Details.CaseID)
	if err != nil {
		config.ErrorStatus("evidence has invalid case reference", http.StatusInternalServerError, w, err)
		return
	}
	courtCase, err := e.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	var req reviewEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	var approved bool
	switch req.Action {
	case "approve":
		approved = true
	case "reject":
		approved = false
	default:
		config.ErrorStatus("invalid review action", http.StatusBadRequest, w, fmt.Errorf("action must be approve or reject, got %q", req.Action))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = e.DB.UpdateOne(ctx, bson.M{"_id": eID}, bson.M{"$set": bson.M{
		"evidence.isApproved":   approved,
		"evidence.isAdmissible": approved,
		"evidence.reviewedByID": actor.ID.Hex(),
		"evidence.reviewedDate": now,
		"evidence.reviewNotes":  req.Notes,
		"evidence.updatedAt":    now,
	}})
	if err != nil {
		config.ErrorStatus("failed to review evidence", http.StatusInternalServerError, w, err)
		return
	}

	action, outcome := models.AuditApprove, "approved"
	if !approved {
		action, outcome = models.AuditReject, "rejected"
	}
	recordAudit(r, e.ADB, actor, action, "Evidence", evidenceID, "reviewed evidence: "+outcome)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"status": "evidence %s"}`, outcome)))
}
