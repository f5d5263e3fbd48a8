package handlers_test

import (
	"net/http"
	"net/http/httptest"
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

func TestPayment_CreateFineCheckoutHandlerCaseNotDecided(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleClerk)
	expectActorLookup(mockUserDB, actor)

	courtCase := &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber: "CR-2026-030",
			Status:     models.CaseStatusInProgress,
			FineAmount: 500,
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)

	handler := handlers.Payment{CDB: mockCaseDB, UDB: mockUserDB}

	req, err := http.NewRequest("POST", "/api/v1/case/"+courtCase.ID.Hex()+"/fine/checkout", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": courtCase.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateFineCheckoutHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "case has no payable fine")
}

func TestPayment_CreateFineCheckoutHandlerZeroFine(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RoleJudge)
	expectActorLookup(mockUserDB, actor)

	courtCase := &models.Case{
		ID: primitive.NewObjectID(),
		Details: models.CaseDetails{
			CaseNumber: "CR-2026-031",
			Status:     models.CaseStatusDecided,
		},
	}
	mockCaseDB.On("FindOne", mock.Anything, bson.M{"_id": courtCase.ID}).Return(courtCase, nil)

	handler := handlers.Payment{CDB: mockCaseDB, UDB: mockUserDB}

	req, err := http.NewRequest("POST", "/api/v1/case/"+courtCase.ID.Hex()+"/fine/checkout", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": courtCase.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateFineCheckoutHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "case has no payable fine")
}

func TestPayment_CreateFineCheckoutHandlerDeniedForOfficer(t *testing.T) {
	mockCaseDB := &mocks.CaseDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)

	handler := handlers.Payment{CDB: mockCaseDB, UDB: mockUserDB}

	caseID := primitive.NewObjectID().Hex()
	req, err := http.NewRequest("POST", "/api/v1/case/"+caseID+"/fine/checkout", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"case_id": caseID})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateFineCheckoutHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
	mockCaseDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}
