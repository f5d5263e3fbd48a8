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

// InmateProgram exported for testing purposes
type InmateProgram struct {
	DB  databases.InmateProgramDatabase
	IDB databases.InmateDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

type createProgramRequest struct {
	ProgramName     string `json:"programName"`
	ProgramType     string `json:"programType"`
	Description     string `json:"description"`
	StartDate       string `json:"startDate"`
	ExpectedEndDate string `json:"expectedEndDate"`
	Instructor      string `json:"instructor"`
	Notes           string `json:"notes"`
}

// CreateProgramHandler enrolls an inmate in a rehabilitation program.
// Only the assigned officer may enroll; the start date must precede the
// expected end date.
func (p InmateProgram) CreateProgramHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, p.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	inmate, err := p.IDB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}

	var req createProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	programType, err := models.ParseProgramType(req.ProgramType)
	if err != nil {
		config.ErrorStatus("invalid program type", http.StatusBadRequest, w, err)
		return
	}
	if req.ProgramName == "" {
		config.ErrorStatus("programName is required", http.StatusBadRequest, w, nil)
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		config.ErrorStatus("invalid start date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
		return
	}
	expectedEnd, err := time.Parse(dateLayout, req.ExpectedEndDate)
	if err != nil {
		config.ErrorStatus("invalid expected end date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
		return
	}
	if !start.Before(expectedEnd) {
		config.ErrorStatus("start date must be before expected end date", http.StatusBadRequest, w,
			fmt.Errorf("start %s is not before expected end %s", req.StartDate, req.ExpectedEndDate))
		return
	}

	status := models.ProgramStatusActive
	if start.After(time.Now()) {
		status = models.ProgramStatusUpcoming
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	program := models.InmateProgram{
		ID: primitive.NewObjectID(),
		Details: models.InmateProgramDetails{
			InmateID:        inmateID,
			ProgramName:     req.ProgramName,
			ProgramType:     programType,
			Description:     req.Description,
			Status:          status,
			StartDate:       primitive.NewDateTimeFromTime(start),
			ExpectedEndDate: primitive.NewDateTimeFromTime(expectedEnd),
			Instructor:      req.Instructor,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
	if _, err := p.DB.InsertOne(ctx, program); err != nil {
		config.ErrorStatus("failed to insert program", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, p.ADB, actor, models.AuditCreate, "InmateProgram", program.ID.Hex(), "enrolled inmate "+inmate.Details.InmateID+" in "+req.ProgramName)

	b, err := json.Marshal(program)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ProgramsByInmateHandler lists all programs for an inmate
func (p InmateProgram) ProgramsByInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	if _, ok := requireRole(w, r, p.UDB, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := p.DB.Find(ctx, bson.M{"inmateProgram.inmateID": inmateID}, &options.FindOptions{
		Sort: bson.M{"inmateProgram.startDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get programs for inmate", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.InmateProgram{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateProgramHandler applies a partial edit to a program enrollment.
// Only the assigned officer may edit. Moving the program to completed
// stamps the actual end date.
func (p InmateProgram) UpdateProgramHandler(w http.ResponseWriter, r *http.Request) {
	programID := mux.Vars(r)["program_id"]

	pID, err := primitive.ObjectIDFromHex(programID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, p.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	program, err := p.DB.FindOne(ctx, bson.M{"_id": pID})
	if err != nil {
		config.ErrorStatus("failed to get program by ID", http.StatusNotFound, w, err)
		return
	}

	iID, err := primitive.ObjectIDFromHex(program.Details.InmateID)
	if err != nil {
		config.ErrorStatus("program has invalid inmate reference", http.StatusInternalServerError, w, err)
		return
	}
	inmate, err := p.IDB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}

	var req models.ProgramUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if req.ProgramName != nil {
		set["inmateProgram.programName"] = *req.ProgramName
	}
	if req.ProgramType != nil {
		parsed, err := models.ParseProgramType(*req.ProgramType)
		if err != nil {
			config.ErrorStatus("invalid program type", http.StatusBadRequest, w, err)
			return
		}
		set["inmateProgram.programType"] = parsed
	}
	if req.Description != nil {
		set["inmateProgram.description"] = *req.Description
	}
	if req.ExpectedEndDate != nil {
		expectedEnd, err := time.Parse(dateLayout, *req.ExpectedEndDate)
		if err != nil {
			config.ErrorStatus("invalid expected end date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
			return
		}
		if !program.Details.StartDate.Time().Before(expectedEnd) {
			config.ErrorStatus("start date must be before expected end date", http.StatusBadRequest, w,
				fmt.Errorf("expected end %s precedes program start", *req.ExpectedEndDate))
			return
		}
		set["inmateProgram.expectedEndDate"] = primitive.NewDateTimeFromTime(expectedEnd)
	}
	if req.ProgressPercentage != nil {
		if *req.ProgressPercentage < 0 || *req.ProgressPercentage > 100 {
			config.ErrorStatus("progress percentage out of range", http.StatusBadRequest, w,
				fmt.Errorf("progress must be between 0 and 100, got %d", *req.ProgressPercentage))
			return
		}
		set["inmateProgram.progressPercentage"] = *req.ProgressPercentage
	}
	if req.Instructor != nil {
		set["inmateProgram.instructor"] = *req.Instructor
	}
	if req.GradeOrScore != nil {
		set["inmateProgram.gradeOrScore"] = *req.GradeOrScore
	}
	if req.CertificateEarned != nil {
		set["inmateProgram.certificateEarned"] = *req.CertificateEarned
	}
	if req.Notes != nil {
		set["inmateProgram.notes"] = *req.Notes
	}
	if req.Status != nil {
		status, err := models.ParseProgramStatus(*req.Status)
		if err != nil {
			config.ErrorStatus("invalid program status", http.StatusBadRequest, w, err)
			return
		}
		set["inmateProgram.status"] = status
		if status == models.ProgramStatusCompleted {
			set["inmateProgram.actualEndDate"] = primitive.NewDateTimeFromTime(todayStart())
		}
	}
	if len(set) == 0 {
		config.ErrorStatus("no program fields to update", http.StatusBadRequest, w, nil)
		return
	}
	set["inmateProgram.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = p.DB.UpdateOne(ctx, bson.M{"_id": pID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update program", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, p.ADB, actor, models.AuditUpdate, "InmateProgram", programID, "updated program "+program.Details.ProgramName)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "program updated"}`))
}
