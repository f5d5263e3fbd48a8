package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api/handlers"
	"github.com/justicedesk/court-prison-api/databases/mocks"
	"github.com/justicedesk/court-prison-api/models"
)

func TestHearing_CreateHearingHandlerDefaultsToAssignedJudge(t *testing.T) {
	mockHearingDB := &mocks.HearingDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleClerk)
	judge := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	courtCase := &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber:      "CR-2026-020",
			Status:          models.CaseStatusAssigned,
			AssignedJudgeID: judge.ID.Hex(),
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)
	mockHearingDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.Hearing{DB: mockHearingDB, CDB: mockCaseDB, UDB: mockUserDB, ADB: mockAuditDB}

	scheduled := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	body := `{"hearingType": "preliminary", "scheduledDate": "` + scheduled + `", "courtroom": "3A"}`
	req, err := http.NewRequest("POST", "/api/v1/case/"+courtCase.ID.Hex()+"/hearings", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": courtCase.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateHearingHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Hearing
	err = json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.Equal(t, judge.ID.Hex(), created.Details.JudgeID)
	assert.Equal(t, models.HearingPreliminary, created.Details.HearingType)
	assert.Equal(t, "3A", created.Details.Courtroom)
	mockHearingDB.AssertExpectations(t)
}

func TestHearing_CreateHearingHandlerNoJudgeAvailable(t *testing.T) {
	mockHearingDB := &mocks.HearingDatabase{}
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)

	courtCase := &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber: "CR-2026-021",
			Status:     models.CaseStatusPending,
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)

	handler := handlers.Hearing{DB: mockHearingDB, CDB: mockCaseDB, UDB: mockUserDB}

	scheduled := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	body := `{"hearingType": "trial", "scheduledDate": "` + scheduled + `"}`
	req, err := http.NewRequest("POST", "/api/v1/case/"+courtCase.ID.Hex()+"/hearings", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": courtCase.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateHearingHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "hearing requires a judge")
	mockHearingDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestHearing_UpdateHearingHandlerJudgeCannotReassign(t *testing.T) {
	mockHearingDB := &mocks.HearingDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	other := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	hearing := &models.Hearing{
		ID: primitive.NewObjectID(),
		Details: models.HearingDetails{
			CaseID:      primitive.NewObjectID().Hex(),
			HearingType: models.HearingTrial,
			JudgeID:     actor.ID.Hex(),
		},
	}
	mockHearingDB.On("FindOne", mock.Anything, bson.M{"_id": hearing.ID}).Return(hearing, nil)

	handler := handlers.Hearing{DB: mockHearingDB, UDB: mockUserDB}

	body := `{"judgeID": "` + other.ID.Hex() + `"}`
	req, err := http.NewRequest("PUT", "/api/v1/hearing/"+hearing.ID.Hex(), strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"hearing_id": hearing.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.UpdateHearingHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only clerks may move a hearing to another judge")
	mockHearingDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestHearing_CompleteHearingHandlerByAssignedJudge(t *testing.T) {
	mockHearingDB := &mocks.HearingDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	hearing := &models.Hearing{
		ID: primitive.NewObjectID(),
		Details: models.HearingDetails{
			CaseID:      primitive.NewObjectID().Hex(),
			HearingType: models.HearingSentencing,
			JudgeID:     actor.ID.Hex(),
		},
	}
	mockHearingDB.On("FindOne", mock.Anything, bson.M{"_id": hearing.ID}).Return(hearing, nil)
	mockHearingDB.On("UpdateOne", mock.Anything, bson.M{"_id": hearing.ID}, mock.Anything).Return(nil)

	handler := handlers.Hearing{DB: mockHearingDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"outcome": "sentence pronounced"}`
	req, err := http.NewRequest("PUT", "/api/v1/hearing/"+hearing.ID.Hex()+"/complete", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"hearing_id": hearing.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CompleteHearingHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hearing completed")
	mockHearingDB.AssertExpectations(t)
}
