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

func reviewFixture(actor *models.User) (*models.Evidence, *models.Case) {
	caseID := primitive.NewObjectID()
	courtCase := &models.Case{
		ID: caseID,
		Details: models.CaseDetails{
			CaseNumber:      "CR-2026-010",
			Status:          models.CaseStatusInProgress,
			AssignedJudgeID: actor.ID.Hex(),
		},
	}
	item := &models.Evidence{
		ID: primitive.NewObjectID(),
		Details: models.EvidenceDetails{
			CaseID:       caseID.Hex(),
			EvidenceType: models.EvidenceDocument,
			Title:        "Signed affidavit",
		},
	}
	return item, courtCase
}

func TestEvidence_ReviewEvidenceHandlerInvalidAction(t *testing.T) {
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	item, courtCase := reviewFixture(actor)
	mockEvidenceDB.On("FindOne", mock.Anything, bson.M{"_id": item.ID}).Return(item, nil)
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)

	handler := handlers.Evidence{DB: mockEvidenceDB, CDB: mockCaseDB, UDB: mockUserDB}

	body := `{"action": "maybe"}`
	req, err := http.NewRequest("PUT", "/api/v1/evidence/"+item.ID.Hex()+"/review", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"evidence_id": item.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.ReviewEvidenceHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid review action")
	mockEvidenceDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvidence_ReviewEvidenceHandlerNotAssignedJudge(t *testing.T) {
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	other := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	item, courtCase := reviewFixture(other)
	mockEvidenceDB.On("FindOne", mock.Anything, bson.M{"_id": item.ID}).Return(item, nil)
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)

	handler := handlers.Evidence{DB: mockEvidenceDB, CDB: mockCaseDB, UDB: mockUserDB}

	body := `{"action": "approve"}`
	req, err := http.NewRequest("PUT", "/api/v1/evidence/"+item.ID.Hex()+"/review", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"evidence_id": item.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.ReviewEvidenceHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestEvidence_ReviewEvidenceHandlerApprove(t *testing.T) {
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	item, courtCase := reviewFixture(actor)
	mockEvidenceDB.On("FindOne", mock.Anything, bson.M{"_id": item.ID}).Return(item, nil)
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)
	mockEvidenceDB.On("UpdateOne", mock.Anything, bson.M{"_id": item.ID}, mock.Anything).Return(nil)

	handler := handlers.Evidence{DB: mockEvidenceDB, CDB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"action": "approve", "notes": "admissible"}`
	req, err := http.NewRequest("PUT", "/api/v1/evidence/"+item.ID.Hex()+"/review", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"evidence_id": item.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.ReviewEvidenceHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "evidence approved")
	mockEvidenceDB.AssertExpectations(t)
}

// a second review on the same item just overwrites the previous ruling
func TestEvidence_ReviewEvidenceHandlerRejectAfterApprove(t *testing.T) {
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	item, courtCase := reviewFixture(actor)
	approved := true
	item.Details.IsApproved = &approved
	item.Details.ReviewedByID = actor.ID.Hex()

	mockEvidenceDB.On("FindOne", mock.Anything, bson.M{"_id": item.ID}).Return(item, nil)
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)
	mockEvidenceDB.On("UpdateOne", mock.Anything, bson.M{"_id": item.ID}, mock.MatchedBy(func(update bson.M) bool {
		set, ok := update["$set"].(bson.M)
		return ok && set["evidence.isApproved"] == false && set["evidence.isAdmissible"] == false
	})).Return(nil)

	handler := handlers.Evidence{DB: mockEvidenceDB, CDB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"action": "reject", "notes": "chain of custody broken"}`
	req, err := http.NewRequest("PUT", "/api/v1/evidence/"+item.ID.Hex()+"/review", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"evidence_id": item.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.ReviewEvidenceHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "evidence rejected")
	mockEvidenceDB.AssertExpectations(t)
}

func TestEvidence_AddEvidenceHandlerStartsAdmissible(t *testing.T) {
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	caseID := primitive.NewObjectID()
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": caseID}).Return(&models.Case{
		ID:      caseID,
		Details: models.CaseDetails{CaseNumber: "CR-2026-010", Status: models.CaseStatusInProgress},
	}, nil)
	mockEvidenceDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.Evidence{DB: mockEvidenceDB, CDB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"evidenceType": "document", "title": "Signed affidavit"}`
	req, err := http.NewRequest("POST", "/api/v1/case/"+caseID.Hex()+"/evidence", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.AddEvidenceHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Evidence
	err = json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.True(t, created.Details.IsAdmissible)
	assert.Nil(t, created.Details.IsApproved)
	mockEvidenceDB.AssertExpectations(t)
}

func TestEvidence_AddEvidenceHandlerMissingTitle(t *testing.T) {
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)

	caseID := primitive.NewObjectID()
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": caseID}).Return(&models.Case{ID: caseID}, nil)

	handler := handlers.Evidence{DB: mockEvidenceDB, CDB: mockCaseDB, UDB: mockUserDB}

	body := `{"evidenceType": "photo"}`
	req, err := http.NewRequest("POST", "/api/v1/case/"+caseID.Hex()+"/evidence", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.AddEvidenceHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
	mockEvidenceDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
