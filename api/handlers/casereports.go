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

// CaseReport exported for testing purposes
type CaseReport struct {
	DB  databases.CaseReportDatabase
	CDB databases.CaseDatabase
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

type submitCaseReportRequest struct {
	ReportType      string `json:"reportType"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Recommendations string `json:"recommendations"`
	Priority        string `json:"priority"`
}

// SubmitCaseReportHandler files a report against a case. Clerks, or the
// case's assigned judge.
func (c CaseReport) SubmitCaseReportHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, c.UDB, models.RoleClerk, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := c.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.HasRole(actor, models.RoleClerk) && !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	var req submitCaseReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	reportType, err := models.ParseCaseReportType(req.ReportType)
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

	report := models.CaseReport{
		ID: primitive.NewObjectID(),
		Details: models.CaseReportDetails{
			CaseID:          caseID,
			ReportType:      reportType,
			Title:           req.Title,
			Content:         req.Content,
			Recommendations: req.Recommendations,
			Priority:        priority,
			SubmittedByID:   actor.ID.Hex(),
			SubmissionDate:  primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if _, err := c.DB.InsertOne(ctx, report); err != nil {
		config.ErrorStatus("failed to insert case report", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, c.ADB, actor, models.AuditSubmit, "CaseReport", report.ID.Hex(), "submitted report for case "+courtCase.Details.CaseNumber)

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseReportsByCaseHandler lists all reports filed against a case
func (c CaseReport) CaseReportsByCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	if _, ok := requireRole(w, r, c.UDB, models.RoleClerk, models.RoleJudge); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := c.DB.Find(ctx, bson.M{"caseReport.caseID": caseID}, &options.FindOptions{
		Sort: bson.M{"caseReport.submissionDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get reports for case", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.CaseReport{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ApproveCaseReportHandler approves a filed report. Clerks only. Approval
// stamps approver and date together.
func (c CaseReport) ApproveCaseReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	rID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, c.UDB, models.RoleClerk)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := c.DB.FindOne(ctx, bson.M{"_id": rID}); err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	err = c.DB.UpdateOne(ctx, bson.M{"_id": rID}, bson.M{"$set": bson.M{
		"caseReport.isApproved":   true,
		"caseReport.approvedByID": actor.ID.Hex(),
		"caseReport.approvalDate": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to approve report", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, c.ADB, actor, models.AuditApprove, "CaseReport", reportID, "approved case report")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "report approved"}`))
}
