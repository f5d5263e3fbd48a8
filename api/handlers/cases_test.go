package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api/handlers"
	"github.com/justicedesk/court-prison-api/databases/mocks"
	"github.com/justicedesk/court-prison-api/models"
)

func TestCase_CreateCaseHandlerDeniedForJudge(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	body := `{"caseNumber": "CR-2026-001", "title": "State v. Doe", "caseType": "criminal", "filingDate": "2026-01-10"}`
	req, err := http.NewRequest("POST", "/api/v1/case", strings.NewReader(body))
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateCaseHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
	mockCaseDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestCase_CreateCaseHandlerDuplicateCaseNumber(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)
	mockCaseDB.On("CountDocuments", mock.Anything, bson.M{"case.caseNumber": "CR-2026-001"}).Return(int64(1), nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	body := `{"caseNumber": "CR-2026-001", "title": "State v. Doe", "caseType": "criminal", "filingDate": "2026-01-10"}`
	req, err := http.NewRequest("POST", "/api/v1/case", strings.NewReader(body))
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateCaseHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "case number already exists")
	mockCaseDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestCase_CreateCaseHandlerInvalidCaseType(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	body := `{"caseNumber": "CR-2026-001", "title": "State v. Doe", "caseType": "bogus", "filingDate": "2026-01-10"}`
	req, err := http.NewRequest("POST", "/api/v1/case", strings.NewReader(body))
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateCaseHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid case type")
}

func TestCase_CreateCaseHandlerSuccess(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)
	mockCaseDB.On("CountDocuments", mock.Anything, bson.M{"case.caseNumber": "CR-2026-001"}).Return(int64(0), nil)
	mockCaseDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"caseNumber": "CR-2026-001", "title": "State v. Doe", "caseType": "criminal", "filingDate": "2026-01-10"}`
	req, err := http.NewRequest("POST", "/api/v1/case", strings.NewReader(body))
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateCaseHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Case
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	assert.Equal(t, "CR-2026-001", created.Details.CaseNumber)
	assert.Equal(t, models.CaseStatusPending, created.Details.Status)
	assert.Equal(t, models.CasePriorityMedium, created.Details.Priority)
	assert.Equal(t, actor.ID.Hex(), created.Details.CreatedByID)

	mockCaseDB.AssertExpectations(t)
}

func TestCase_AssignCaseHandlerSuccess(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleClerk)
	judge := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	mockUserDB.On("FindOne", mock.Anything, bson.M{"_id": judge.ID}).Return(judge, nil)
	expectAudit(mockAuditDB)

	caseID := primitive.NewObjectID()
	courtCase := &models.Case{
		ID: caseID,
		Details: models.CaseDetails{
			CaseNumber: "CR-2026-002",
			Status:     models.CaseStatusPending,
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": caseID}).Return(courtCase, nil)
	mockCaseDB.On("UpdateOne", mock.Anything, bson.M{"_id": caseID}, mock.Anything).Return(nil)
	mockNotificationDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB, NDB: mockNotificationDB, ADB: mockAuditDB}

	body := `{"judgeID": "` + judge.ID.Hex() + `", "notes": "expedite"}`
	req, err := http.NewRequest("PUT", "/api/v1/case/"+caseID.Hex()+"/assign", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.AssignCaseHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "case assigned")
	mockCaseDB.AssertExpectations(t)
	mockNotificationDB.AssertExpectations(t)
}

func TestCase_AssignCaseHandlerTargetNotAJudge(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	officer := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)
	mockUserDB.On("FindOne", mock.Anything, bson.M{"_id": officer.ID}).Return(officer, nil)

	caseID := primitive.NewObjectID()
	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	body := `{"judgeID": "` + officer.ID.Hex() + `"}`
	req, err := http.NewRequest("PUT", "/api/v1/case/"+caseID.Hex()+"/assign", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.AssignCaseHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "assignee must hold the judge role")
	mockCaseDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestCase_SentenceCaseHandlerNotAssignedJudge(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	caseID := primitive.NewObjectID()
	courtCase := &models.Case{
		ID: caseID,
		Details: models.CaseDetails{
			CaseNumber:      "CR-2026-003",
			Status:          models.CaseStatusInProgress,
			AssignedJudgeID: primitive.NewObjectID().Hex(), // someone else
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": caseID}).Return(courtCase, nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	body := `{"verdict": "guilty", "sentenceType": "imprisonment"}`
	req, err := http.NewRequest("PUT", "/api/v1/case/"+caseID.Hex()+"/sentence", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.SentenceCaseHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
	mockCaseDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestCase_SentenceCaseHandlerSuccess(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	caseID := primitive.NewObjectID()
	courtCase := &models.Case{
		ID: caseID,
		Details: models.CaseDetails{
			CaseNumber:      "CR-2026-004",
			Status:          models.CaseStatusInProgress,
			AssignedJudgeID: actor.ID.Hex(),
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": caseID}).Return(courtCase, nil)
	mockCaseDB.On("UpdateOne", mock.Anything, bson.M{"_id": caseID}, mock.Anything).Return(nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"verdict": "guilty", "sentenceType": "imprisonment", "sentenceDuration": "5 years", "fineAmount": 2500}`
	req, err := http.NewRequest("PUT", "/api/v1/case/"+caseID.Hex()+"/sentence", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.SentenceCaseHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "case decided")
	mockCaseDB.AssertExpectations(t)
}

func TestCase_CaseByIDHandlerInvalidObjectID(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/case/not-a-hex", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": "not-a-hex"})

	w := httptest.NewRecorder()
	handler.CaseByIDHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failed to get objectID from Hex")
}

func TestCase_CasesHandlerEmptyResponse(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)
	mockCaseDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/cases", nil)
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CasesHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCase_UpdateCaseStatusHandlerAppealByAssignedJudge(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	caseID := primitive.NewObjectID()
	courtCase := &models.Case{
		ID: caseID,
		Details: models.CaseDetails{
			CaseNumber:      "CR-2026-005",
			Status:          models.CaseStatusDecided,
			AssignedJudgeID: actor.ID.Hex(),
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": caseID}).Return(courtCase, nil)
	mockCaseDB.On("UpdateOne", mock.Anything, bson.M{"_id": caseID}, mock.Anything).Return(nil)

	handler := handlers.Case{DB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"status": "appealed"}`
	req, err := http.NewRequest("PUT", "/api/v1/case/"+caseID.Hex()+"/status", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.UpdateCaseStatusHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "appealed")
	mockCaseDB.AssertExpectations(t)
}
