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

// InmateReport exported for testing purposes
type InmateReport struct {
	DB  databases.InmateReportDatabase
	IDB databases.InmateDatabase
	UDB databases.UserDatabase
	NDB databases.NotificationDatabase
	ADB databases.AuditLogDatabase
}

type createInmateReportRequest struct {
	ReportType      string `json:"reportType"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Recommendations string `json:"recommendations"`
	Priority        string `json:"priority"`
	IncidentDate    string `json:"incidentDate"`
}

type reviewInmateReportRequest struct {
	Status         string `json:"status"`
	ReviewNotes    string `json:"reviewNotes"`
	ActionRequired bool   `json:"actionRequired"`
	ActionTaken    string `json:"actionTaken"`
	FollowUpDate   string `json:"followUpDate"`
}

// CreateInmateReportHandler files a report on an inmate. Only the
// assigned officer may file. Urgent reports raise a notification.
func (ir InmateReport) CreateInmateReportHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	iID, err := primitive.ObjectIDFromHex(inmateID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, ir.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	inmate, err := ir.IDB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}

	var req createInmateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	reportType, err := models.ParseInmateReportType(req.ReportType)
	if err != nil {
		config.ErrorStatus("invalid report type", http.StatusBadRequest, w, err)
		return
	}
	priority := models.PriorityMedium
	if req.Priority != "" {
		priority, err = models.ParsePriority(req.Priority)
		if err != nil {
			config.ErrorStatus("invalid priority", http.StatusBadRequest, w, err)
			return
		}
	}
	if req.Title == "" || req.Content == "" {
		config.ErrorStatus("title and content are required", http.StatusBadRequest, w, nil)
		return
	}

	details := models.InmateReportDetails{
		InmateID:        inmateID,
		ReportType:      reportType,
		Title:           req.Title,
		Content:         req.Content,
		Recommendations: req.Recommendations,
		Priority:        priority,
		SubmittedByID:   actor.ID.Hex(),
		SubmissionDate:  primitive.NewDateTimeFromTime(time.Now()),
		Status:          models.InmateReportPending,
	}
	if req.IncidentDate != "" {
		incident, err := parseDate(req.IncidentDate)
		if err != nil {
			config.ErrorStatus("invalid incident date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
			return
		}
		details.IncidentDate = &incident
	}

	report := models.InmateReport{
		ID:      primitive.NewObjectID(),
		Details: details,
	}
	if _, err := ir.DB.InsertOne(ctx, report); err != nil {
		config.ErrorStatus("failed to insert inmate report", http.StatusInternalServerError, w, err)
		return
	}

	if reportType == models.InmateReportUrgent || priority == models.PriorityUrgent {
		createNotification(ctx, ir.NDB, models.NotificationDetails{
			RecipientID:      inmate.Details.AssignedOfficerID,
			SenderID:         actor.ID.Hex(),
			Title:            "Urgent inmate report",
			Message:          fmt.Sprintf("Urgent report filed for inmate %s: %s", inmate.Details.InmateID, req.Title),
			NotificationType: models.NotifyUrgentReport,
			Priority:         models.PriorityUrgent,
			ReportID:         report.ID.Hex(),
		})
	}

	recordAudit(r, ir.ADB, actor, models.AuditSubmit, "InmateReport", report.ID.Hex(), "filed report for inmate "+inmate.Details.InmateID)

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// InmateReportsByInmateHandler lists all reports filed on an inmate
func (ir InmateReport) InmateReportsByInmateHandler(w http.ResponseWriter, r *http.Request) {
	inmateID := mux.Vars(r)["inmate_id"]

	if _, ok := requireRole(w, r, ir.UDB, models.RolePrisonOfficer); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := ir.DB.Find(ctx, bson.M{"inmateReport.inmateID": inmateID}, &options.FindOptions{
		Sort: bson.M{"inmateReport.submissionDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get reports for inmate", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.InmateReport{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ReviewInmateReportHandler records the assigned officer's review. All
// review fields land in a single update.
func (ir InmateReport) ReviewInmateReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	rID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, ir.UDB, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := ir.DB.FindOne(ctx, bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	iID, err := primitive.ObjectIDFromHex(report.Details.InmateID)
	if err != nil {
		config.ErrorStatus("report has invalid inmate reference", http.StatusInternalServerError, w, err)
		return
	}
	inmate, err := ir.IDB.FindOne(ctx, bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inmate by ID", http.StatusNotFound, w, err)
		return
	}
	if !requireAssignedOfficer(w, actor, inmate) {
		return
	}

	var req reviewInmateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	status, err := models.ParseInmateReportStatus(req.Status)
	if err != nil {
		config.ErrorStatus("invalid report status", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	set := bson.M{
		"inmateReport.status":         status,
		"inmateReport.isReviewed":     true,
		"inmateReport.reviewedByID":   actor.ID.Hex(),
		"inmateReport.reviewDate":     now,
		"inmateReport.reviewNotes":    req.ReviewNotes,
		"inmateReport.actionRequired": req.ActionRequired,
		"inmateReport.actionTaken":    req.ActionTaken,
	}
	if req.FollowUpDate != "" {
		followUp, err := parseDate(req.FollowUpDate)
		if err != nil {
			config.ErrorStatus("invalid follow-up date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
			return
		}
		set["inmateReport.followUpDate"] = followUp
	}

	err = ir.DB.UpdateOne(ctx, bson.M{"_id": rID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to review report", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, ir.ADB, actor, models.AuditUpdate, "InmateReport", reportID, "reviewed report with status "+string(status))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "report reviewed"}`))
}
