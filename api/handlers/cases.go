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

// Case exported for testing purposes
type Case struct {
	DB  databases.CaseDatabase
	UDB databases.UserDatabase
	NDB databases.NotificationDatabase
	ADB databases.AuditLogDatabase
}

type createCaseRequest struct {
	CaseNumber      string  `json:"caseNumber"`
	Title           string  `json:"title"`
	CaseType        string  `json:"caseType"`
	Description     string  `json:"description"`
	Priority        string  `json:"priority"`
	PlaintiffName   string  `json:"plaintiffName"`
	DefendantName   string  `json:"defendantName"`
	FilingDate      string  `json:"filingDate"`
	AssignedJudgeID string  `json:"assignedJudgeID"`
	FineAmount      float64 `json:"fineAmount"`
}

type assignCaseRequest struct {
	JudgeID string `json:"judgeID"`
	Notes   string `json:"notes"`
}

type sentenceCaseRequest struct {
	Verdict          string  `json:"verdict"`
	SentenceType     string  `json:"sentenceType"`
	SentenceDuration string  `json:"sentenceDuration"`
	SentenceNotes    string  `json:"sentenceNotes"`
	FineAmount       float64 `json:"fineAmount"`
	DecisionDate     string  `json:"decisionDate"`
}

type updateCaseStatusRequest struct {
	Status string `json:"status"`
}

// loadJudge fetches the target user and checks they hold the judge role
func (c Case) loadJudge(w http.ResponseWriter, r *http.Request, judgeID string) (*models.User, bool) {
	jID, err := primitive.ObjectIDFromHex(judgeID)
	if err != nil {
		config.ErrorStatus("invalid judge id", http.StatusBadRequest, w, err)
		return nil, false
	}
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	judge, err := c.UDB.FindOne(ctx, bson.M{"_id": jID})
	if err != nil {
		config.ErrorStatus("failed to get judge by ID", http.StatusNotFound, w, err)
		return nil, false
	}
	if !models.HasRole(judge, models.RoleJudge) {
		config.ErrorStatus("assignee must hold the judge role", http.StatusBadRequest, w, fmt.Errorf("user %s is not a judge", judgeID))
		return nil, false
	}
	return judge, true
}

// CreateCaseHandler registers a new court case. Clerks only. The case
// number must be unique; supplying a judge at creation time assigns the
// case immediately.
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, c.UDB, models.RoleClerk)
	if !ok {
		return
	}

	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.CaseNumber == "" || req.Title == "" {
		config.ErrorStatus("caseNumber and title are required", http.StatusBadRequest, w, nil)
		return
	}
	caseType, err := models.ParseCaseType(req.CaseType)
	if err != nil {
		config.ErrorStatus("invalid case type", http.StatusBadRequest, w, err)
		return
	}
	priority := models.CasePriorityMedium
	if req.Priority != "" {
		priority, err = models.ParseCasePriority(req.Priority)
		if err != nil {
			config.ErrorStatus("invalid priority", http.StatusBadRequest, w, err)
			return
		}
	}
	filingDate, err := parseDate(req.FilingDate)
	if err != nil {
		config.ErrorStatus("invalid filing date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := c.DB.CountDocuments(ctx, bson.M{"case.caseNumber": req.CaseNumber})
	if err != nil {
		config.ErrorStatus("failed to check case number", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("case number already exists", http.StatusBadRequest, w, fmt.Errorf("duplicate case number %s", req.CaseNumber))
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	details := models.CaseDetails{
		CaseNumber:    req.CaseNumber,
		Title:         req.Title,
		CaseType:      caseType,
		Description:   req.Description,
		Status:        models.CaseStatusPending,
		Priority:      priority,
		PlaintiffName: req.PlaintiffName,
		DefendantName: req.DefendantName,
		CreatedByID:   actor.ID.Hex(),
		FilingDate:    filingDate,
		FineAmount:    req.FineAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var judge *models.User
	if req.AssignedJudgeID != "" {
		judge, ok = c.loadJudge(w, r, req.AssignedJudgeID)
		if !ok {
			return
		}
		details.AssignedJudgeID = req.AssignedJudgeID
		details.Status = models.CaseStatusAssigned
		assigned := primitive.NewDateTimeFromTime(todayStart())
		details.AssignedDate = &assigned
	}

	newCase := models.Case{
		ID:      primitive.NewObjectID(),
		Details: details,
	}
	if _, err := c.DB.InsertOne(ctx, newCase); err != nil {
		config.ErrorStatus("failed to insert case", http.StatusInternalServerError, w, err)
		return
	}

	if judge != nil {
		createNotification(ctx, c.NDB, models.NotificationDetails{
			RecipientID:      judge.ID.Hex(),
			SenderID:         actor.ID.Hex(),
			Title:            "Case assigned",
			Message:          fmt.Sprintf("Case %s has been assigned to you", req.CaseNumber),
			NotificationType: models.NotifyCaseAssigned,
			Priority:         models.PriorityMedium,
			CaseID:           newCase.ID.Hex(),
		})
	}

	recordAudit(r, c.ADB, actor, models.AuditCreate, "Case", newCase.ID.Hex(), "created case "+req.CaseNumber)

	b, err := json.Marshal(newCase)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseByIDHandler returns a case by ID
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, ok := requireRole(w, r, c.UDB, models.RoleClerk, models.RoleJudge); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
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

// CasesHandler lists cases, optionally filtered by status or assigned judge
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, c.UDB, models.RoleClerk, models.RoleJudge); !ok {
		return
	}

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		parsed, err := models.ParseCaseStatus(status)
		if err != nil {
			config.ErrorStatus("invalid case status", http.StatusBadRequest, w, err)
			return
		}
		filter["case.status"] = parsed
	}
	if judgeID := r.URL.Query().Get("judge_id"); judgeID != "" {
		filter["case.assignedJudgeID"] = judgeID
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 50
		zap.S().Debugf("limit not set, using default of %v", limit)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	dbResp, err := c.DB.Find(ctx, filter, &options.FindOptions{
		Limit: &limit,
		Sort:  bson.M{"case.filingDate": -1},
	})
	if err != nil {
		config.ErrorStatus("failed to get cases", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Case{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AssignCaseHandler assigns a case to a judge. Clerks only; the target
// must hold the judge role. The judge is notified.
func (c Case) AssignCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, c.UDB, models.RoleClerk)
	if !ok {
		return
	}

	var req assignCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	judge, ok := c.loadJudge(w, r, req.JudgeID)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}

	err = c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": bson.M{
		"case.assignedJudgeID": req.JudgeID,
		"case.status":          models.CaseStatusAssigned,
		"case.assignedDate":    primitive.NewDateTimeFromTime(todayStart()),
		"case.assignmentNotes": req.Notes,
		"case.updatedAt":       primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to assign case", http.StatusInternalServerError, w, err)
		return
	}

	createNotification(ctx, c.NDB, models.NotificationDetails{
		RecipientID:      judge.ID.Hex(),
		SenderID:         actor.ID.Hex(),
		Title:            "Case assigned",
		Message:          fmt.Sprintf("Case %s has been assigned to you", courtCase.Details.CaseNumber),
		NotificationType: models.NotifyCaseAssigned,
		Priority:         models.PriorityMedium,
		CaseID:           caseID,
	})

	recordAudit(r, c.ADB, actor, models.AuditAssign, "Case", caseID, "assigned case to judge "+req.JudgeID)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "case assigned"}`))
}

// SentenceCaseHandler records the judge's decision on a case. Only the
// assigned judge may sentence; all decision fields land in one update.
func (c Case) SentenceCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	actor, ok := requireRole(w, r, c.UDB, models.RoleJudge)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	var req sentenceCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	sentenceType, err := models.ParseSentenceType(req.SentenceType)
	if err != nil {
		config.ErrorStatus("invalid sentence type", http.StatusBadRequest, w, err)
		return
	}

	decisionDate := primitive.NewDateTimeFromTime(todayStart())
	if req.DecisionDate != "" {
		decisionDate, err = parseDate(req.DecisionDate)
		if err != nil {
			config.ErrorStatus("invalid decision date, expected YYYY-MM-DD", http.StatusBadRequest, w, err)
			return
		}
	}

	err = c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": bson.M{
		"case.status":           models.CaseStatusDecided,
		"case.verdict":          req.Verdict,
		"case.sentenceType":     sentenceType,
		"case.sentenceDuration": req.SentenceDuration,
		"case.sentenceNotes":    req.SentenceNotes,
		"case.fineAmount":       req.FineAmount,
		"case.decisionDate":     decisionDate,
		"case.updatedAt":        primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to sentence case", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, c.ADB, actor, models.AuditUpdate, "Case", caseID, "sentenced case "+courtCase.Details.CaseNumber)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "case decided"}`))
}

// UpdateCaseHandler applies a partial edit. Clerks may change anything
// including the assigned judge; the assigned judge may change everything
// except the assignment. Reassigning forces the case back to assigned.
func (c Case) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
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

	courtCase, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}

	isClerk := models.HasRole(actor, models.RoleClerk)
	if !isClerk && !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	var req models.CaseUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{}
	if req.Title != nil {
		set["case.title"] = *req.Title
	}
	if req.CaseType != nil {
		parsed, err := models.ParseCaseType(*req.CaseType)
		if err != nil {
			config.ErrorStatus("invalid case type", http.StatusBadRequest, w, err)
			return
		}
		set["case.caseType"] = parsed
	}
	if req.Description != nil {
		set["case.description"] = *req.Description
	}
	if req.Priority != nil {
		parsed, err := models.ParseCasePriority(*req.Priority)
		if err != nil {
			config.ErrorStatus("invalid priority", http.StatusBadRequest, w, err)
			return
		}
		set["case.priority"] = parsed
	}
	if req.PlaintiffName != nil {
		set["case.plaintiffName"] = *req.PlaintiffName
	}
	if req.DefendantName != nil {
		set["case.defendantName"] = *req.DefendantName
	}
	if req.FineAmount != nil {
		set["case.fineAmount"] = *req.FineAmount
	}
	if req.AssignedJudgeID != nil {
		if !isClerk {
			config.ErrorStatus("only clerks may reassign a case", http.StatusForbidden, w, fmt.Errorf("judge cannot change case assignment"))
			return
		}
		if _, ok := c.loadJudge(w, r, *req.AssignedJudgeID); !ok {
			return
		}
		set["case.assignedJudgeID"] = *req.AssignedJudgeID
		set["case.status"] = models.CaseStatusAssigned
		set["case.assignedDate"] = primitive.NewDateTimeFromTime(todayStart())
	}
	if len(set) == 0 {
		config.ErrorStatus("no case fields to update", http.StatusBadRequest, w, nil)
		return
	}
	set["case.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update case", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, c.ADB, actor, models.AuditUpdate, "Case", caseID, "updated case "+courtCase.Details.CaseNumber)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "case updated"}`))
}

// UpdateCaseStatusHandler moves a case to an arbitrary lifecycle state.
// Clerks, or the assigned judge. This is the only route to "appealed".
func (c Case) UpdateCaseStatusHandler(w http.ResponseWriter, r *http.Request) {
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

	var req updateCaseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	status, err := models.ParseCaseStatus(req.Status)
	if err != nil {
		config.ErrorStatus("invalid case status", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if !models.HasRole(actor, models.RoleClerk) && !models.IsAssignedTo(actor, courtCase) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, fmt.Errorf("case is not assigned to this judge"))
		return
	}

	err = c.DB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": bson.M{
		"case.status":    status,
		"case.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to update case status", http.StatusInternalServerError, w, err)
		return
	}

	recordAudit(r, c.ADB, actor, models.AuditUpdate, "Case", caseID, "set case status to "+string(status))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"status": "%s"}`, status)))
}
