package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// Inmate exported for testing purposes
type Inmate struct {
	DB  databases.InmateDatabase
	RDB databases.ReleaseDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

type createInmateRequest struct {
	InmateID             string  `json:"inmateID"`
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	DateOfBirth          string  `json:"dateOfBirth"`
	Gender               string  `json:"gender"`
	Nationality          string  `json:"nationality"`
	IdentificationNumber string  `json:"identificationNumber"`
	CaseNumber           string  `json:"caseNumber"`
	ConvictionDate       string  `json:"convictionDate"`
	CrimeDescription     string  `json:"crimeDescription"`
	SentenceType         string  `json:"sentenceType"`
	SentenceYears        int     `json:"sentenceYears"`
	SentenceMonths       int     `json:"sentenceMonths"`
	FineAmount           float64 `json:"fineAmount"`
	AdmissionDate        string  `json:"admissionDate"`
	ExpectedReleaseDate  string  `json:"expectedReleaseDate"`
	CellNumber           string  `json:"cellNumber"`
	Block                string  `json:"block"`
}

type assignInmateRequest struct {
	OfficerID           string `json:"officerID"`
	Reason              string `json:"reason"`
	AssignmentType      string `json:"assignmentType"`
	SpecialInstructions string `json:"specialInstructions"`
}

type releaseInmateRequest struct {
	ReleaseType string `json:"releaseType"`
	Notes       string `json:"notes"`
}

// requireAssignedOfficer checks that the actor is the officer responsible
// for the inmate. On failure it writes the response and returns false.
func requireAssignedOfficer(w http.ResponseWriter, actor *models.User, inmate *models.Inmate) bool {
	if !models.IsAssignedTo(actor, inmate) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("inmate is not assigned to this officer"))
		return false
	}
	return true
}

// CreateInmateHandler admits a new inmate. Prison officers only; the
// creator becomes the assigned officer. Registration and identification
// numbers must be unique.
func (i Inmate) CreateInmateHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, i.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	var req createInmateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.InmateID == "" || req.FirstName == "" || req.LastName == "" || req.IdentificationNumber == "" {
		config.ErrorStatus("inmateID, name and identificationNumber are required", http.StatusBadRequest, w, nil)
		return
	}
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		config.ErrorStatus("invalid gender", http.StatusBadRequest, w, err)
		return
	}
	sentenceType, err := models.ParseInmateSentenceType(req.SentenceType)
	if err != nil {
		config.ErrorStatus("invalid sentence type", http.StatusBadRequest, w, err)
		return
	}
	admissionDate, err := parseDate(req.AdmissionDate)
	if err != nil {
		config.ErrorStatus("invalid admission date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
		return
	}
	convictionDate, err := parseDate(req.ConvictionDate)
	if err != nil {
		config.ErrorStatus("invalid conviction date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := i.DB.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"inmate.inmateID": req.InmateID},
		{"inmate.identificationNumber": req.IdentificationNumber},
	}})
	if err != nil {
		config.ErrorStatus("failed to check inmate uniqueness", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("inmate id or identification number already exists", http.StatusBadRequest, w, fmt.Errorf("duplicate inmate %s", req.InmateID))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	details := models.InmateDetails{
		InmateID:             req.InmateID,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		DateOfBirth:          req.DateOfBirth,
		Gender:               gender,
		Nationality:          req.Nationality,
		IdentificationNumber: req.IdentificationNumber,
		CaseNumber:           req.CaseNumber,
		ConvictionDate:       convictionDate,
		CrimeDescription:     req.CrimeDescription,
		SentenceType:         sentenceType,
		SentenceYears:        req.SentenceYears,
		SentenceMonths:       req.SentenceMonths,
		FineAmount:           req.FineAmount,
		AdmissionDate:        admissionDate,
		CellNumber:           req.CellNumber,
		Block:                req.Block,
		Status:               models.InmateStatusActive,
		AssignedOfficerID:    actor.ID.Hex(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if req.ExpectedReleaseDate != "" {
		expected, err := parseDate(req.ExpectedReleaseDate)
		if err != nil {
			config.ErrorStatus("invalid expected release date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
			return
		}
		details.ExpectedReleaseDate = &expected
	}

	inmate := models.Inmate{
		ID:      primitive.NewObjectID(),
		Details: details,
	}
	if _, err := i.DB.InsertOne(ctx, inmate); err != nil {
		config.ErrorStatus("failed to insert inmate", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, i.ADB, actor, models.AuditCreate, "Inmate", inmate.ID.Hex(), "admitted inmate "+req.InmateID)

	b, err := json.Marshal(inmate)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// InmateByIDHandler returns an inmate by ID
func (i Inmate) InmateByIDHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, ok := requireRole(w, r, i.UDB, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := i.DB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// InmatesHandler lists inmates, optionally filtered by status or block.
// A q parameter matches against name and inmate number, case-insensitive.
func (i Inmate) InmatesHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, i.UDB, models.RolePrisonOfficer); !ok {
		return
	}

	filter := bson.M{}
	if q := r.URL.Query().Get("q"); q != "" {
		filter["$or"] = []bson.M{
			{"inmate.firstName": bson.M{"$regex": q, "$options": "i"}},
			{"inmate.lastName": bson.M{"$regex": q, "$options": "i"}},
			{"inmate.inmateID": bson.M{"$regex": q, "$options": "i"}},
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		parsed, err := models.ParseInmateStatus(status)
		if err != nil {
			config.ErrorStatus("invalid inmate status", http.StatusBadRequest, w, err)
			return
		}
		filter["inmate.status"] = parsed
	}
	if block := r.URL.Query().Get("block"); block != "" {
		filter["inmate.block"] = block
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 50
		zap.S().Debugf("limit not set, using default of %v", limit)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := i.DB.Find(ctx, filter, &options.FindOptions{
		Limit: &limit,
		Sort:  bson.M{"inmate.admissionDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get inmates", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Inmate{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateInmateHandler applies a partial edit to an inmate's record. Only
// the assigned officer may edit.
func (i Inmate) UpdateInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, i.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	inmate, err := i.DB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}

	var req models.InmateUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if req.CellNumber != nil {
		set["inmate.cellNumber"] = *req.CellNumber
	}
	if req.Block != nil {
		set["inmate.block"] = *req.Block
	}
	if req.BehaviorRating != nil {
		set["inmate.behaviorRating"] = *req.BehaviorRating
	}
	if req.MedicalConditions != nil {
		set["inmate.medicalConditions"] = *req.MedicalConditions
	}
	if req.SpecialNeeds != nil {
		set["inmate.specialNeeds"] = *req.SpecialNeeds
	}
	if req.MedicalAttentionRequired != nil {
		set["inmate.medicalAttentionRequired"] = *req.MedicalAttentionRequired
	}
	if req.DisciplinaryIssues != nil {
		set["inmate.disciplinaryIssues"] = *req.DisciplinaryIssues
	}
	if req.ProtectiveCustody != nil {
		set["inmate.protectiveCustody"] = *req.ProtectiveCustody
	}
	if req.ExpectedReleaseDate != nil {
		expected, err := parseDate(*req.ExpectedReleaseDate)
		if err != nil {
			config.ErrorStatus("invalid expected release date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
			return
		}
		set["inmate.expectedReleaseDate"] = expected
	}
	if req.EmergencyContactName != nil {
		set["inmate.emergencyContactName"] = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		set["inmate.emergencyContactPhone"] = *req.EmergencyContactPhone
	}
	if req.EmergencyContactRelation != nil {
		set["inmate.emergencyContactRelation"] = *req.EmergencyContactRelation
	}
	if req.FineAmount != nil {
		set["inmate.fineAmount"] = *req.FineAmount
	}
	if len(set) == 0 {
		config.ErrorStatus("no inmate fields to update", http.StatusBadRequest, w, nil)
		return
	}
	set["inmate.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = i.DB.UpdateOne(ctx, bson.M{"_id": iID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update inmate", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, i.ADB, actor, models.AuditUpdate, "Inmate", inmateID, "updated inmate "+inmate.Details.InmateID)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "inmate updated"}`))
}

// AssignInmateHandler hands an inmate over to another officer. Officers
// only; the target must hold the prison officer role.
func (i Inmate) AssignInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, i.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	var req assignInmateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	oID, err := primitive.ObjectIDFromHex(req.OfficerID)
	if err != nil {
		config.ErrorStatus("invalid officer id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officer, err := i.UDB.FindOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus("failed to get officer by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.HasRole(officer, models.RolePrisonOfficer) {
		config.ErrorStatus("assignee must hold the prison officer role", http.StatusBadRequest, w, fmt.Errorf("user %s is not a prison officer", req.OfficerID))
		return
	}

	inmate, err := i.DB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}

	err = i.DB.UpdateOne(ctx, bson.M{"_id": iID}, bson.M{"$set": bson.M{
		"inmate.assignedOfficerID":   req.OfficerID,
		"inmate.assignmentDate":      primitive.NewDateTimeFromTime(todayStart()),
		"inmate.assignmentReason":    req.Reason,
		"inmate.assignmentType":      req.AssignmentType,
		"inmate.specialInstructions": req.SpecialInstructions,
		"inmate.updatedAt":           primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to assign inmate", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, i.ADB, actor, models.AuditAssign, "Inmate", inmateID, "assigned inmate "+inmate.Details.InmateID+" to officer "+req.OfficerID)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "inmate assigned"}`))
}

// ReleaseInmateHandler releases an inmate from custody. Only the assigned
// officer may release. The inmate's status and actual release date change
// together, and a release record is persisted.
func (i Inmate) ReleaseInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, i.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	inmate, err := i.DB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}
	if inmate.Details.Status != models.InmateStatusActive {
		config.ErrorStatus("inmate is not in custody", http.StatusBadRequest, w, fmt.Errorf("inmate status is %s", inmate.Details.Status))
		return
	}

	var req releaseInmateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	releaseType, err := models.ParseReleaseType(req.ReleaseType)
	if err != nil {
		config.ErrorStatus("invalid release type", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	err = i.DB.UpdateOne(ctx, bson.M{"_id": iID}, bson.M{"$set": bson.M{
		"inmate.status":            models.InmateStatusReleased,
		"inmate.actualReleaseDate": now,
		"inmate.updatedAt":         now,
	}})
	if err != nil {
		config.ErrorStatus("failed to release inmate", http.StatusInternalServerError, w, err)
		return
	}

	release := models.Release{
		ID: primitive.NewObjectID(),
		Details: models.ReleaseDetails{
			InmateID:       inmateID,
			ReleaseDate:    now,
			ReleaseType:    releaseType,
			Notes:          req.Notes,
			AuthorizedByID: actor.ID.Hex(),
			CreatedAt:      now,
		},
	}
	if _, err := i.RDB.InsertOne(ctx, release); err != nil {
		config.ErrorStatus("failed to insert release record", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, i.ADB, actor, models.AuditUpdate, "Inmate", inmateID, "released inmate "+inmate.Details.InmateID)

	b, err := json.Marshal(release)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
