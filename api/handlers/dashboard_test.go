package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api/handlers"
	"github.com/justicedesk/court-prison-api/databases/mocks"
	"github.com/justicedesk/court-prison-api/models"
)

func TestDashboard_DashboardHandlerClerkEmptyCollections(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockHearingDB := &mocks.HearingDatabase{}
	mockCaseReportDB := &mocks.CaseReportDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)

	mockCaseDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	mockHearingDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	mockCaseReportDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)

	handler := handlers.Dashboard{CDB: mockCaseDB, HDB: mockHearingDB, CRDB: mockCaseReportDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/dashboard", nil)
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.DashboardHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var counts map[string]int64
	err = json.Unmarshal(w.Body.Bytes(), &counts)
	assert.NoError(t, err)
	for _, key := range []string{
		"total_cases", "pending_cases", "assigned_cases", "in_progress_cases",
		"decided_cases", "closed_cases", "cases_filed_today",
		"cases_needing_attention", "upcoming_hearings", "reports_submitted_today",
	} {
		count, present := counts[key]
		assert.True(t, present, "missing count %s", key)
		assert.Equal(t, int64(0), count, "count %s should be zero", key)
	}
}

func TestDashboard_DashboardHandlerJudgeCountsPendingEvidence(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockEvidenceDB := &mocks.EvidenceDatabase{}
	mockHearingDB := &mocks.HearingDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	myCase := models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber:      "CR-2026-005",
			Status:          models.CaseStatusInProgress,
			AssignedJudgeID: actor.ID.Hex(),
		},
	}

	mockCaseDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	mockCaseDB.On("Find", mock.Anything, bson.M{"case.assignedJudgeID": actor.ID.Hex()}).Return([]models.Case{myCase}, nil)
	mockEvidenceDB.On("CountDocuments", mock.Anything, bson.M{
		"evidence.caseID":     bson.M{"$in": []string{myCase.ID.Hex()}},
		"evidence.isApproved": nil,
	}).Return(int64(3), nil)
	mockHearingDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)

	handler := handlers.Dashboard{CDB: mockCaseDB, EDB: mockEvidenceDB, HDB: mockHearingDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/dashboard", nil)
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.DashboardHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var counts map[string]int64
	err = json.Unmarshal(w.Body.Bytes(), &counts)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), counts["pending_evidence"])
	assert.Equal(t, int64(1), counts["assigned_cases"])
	mockEvidenceDB.AssertExpectations(t)
}

func TestDashboard_DashboardHandlerOfficerCountsActivePrograms(t *testing.T) {
	mockInmateDB := &mocks.InmateDatabase{}
	mockInmateReportDB := &mocks.InmateReportDatabase{}
	mockVisitorDB := &mocks.VisitorLogDatabase{}
	mockProgramDB := &mocks.InmateProgramDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)

	myInmate := models.Inmate{
		ID: primitive.NewObjectID(),
		Details: models.InmateDetails{
			InmateID:          "INM-2026-001",
			Status:            models.InmateStatusActive,
			AssignedOfficerID: actor.ID.Hex(),
		},
	}

	mockInmateDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	mockInmateDB.On("Find", mock.Anything, bson.M{"inmate.assignedOfficerID": actor.ID.Hex()}).Return([]models.Inmate{myInmate}, nil)
	mockInmateReportDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	mockVisitorDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	mockProgramDB.On("CountDocuments", mock.Anything, bson.M{
		"inmateProgram.inmateID": bson.M{"$in": []string{myInmate.ID.Hex()}},
		"inmateProgram.status":   models.ProgramStatusActive,
	}).Return(int64(2), nil)

	handler := handlers.Dashboard{IDB: mockInmateDB, IRDB: mockInmateReportDB, VDB: mockVisitorDB, PDB: mockProgramDB, UDB: mockUserDB}

	req, err := http.NewRequest("GET", "/api/v1/dashboard", nil)
	assert.NoError(t, err)
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.DashboardHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var counts map[string]int64
	err = json.Unmarshal(w.Body.Bytes(), &counts)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), counts["active_programs"])
	assert.Equal(t, int64(1), counts["active_inmates"])
	mockProgramDB.AssertExpectations(t)
}
