package handlers_test

import (
	"encoding/json"
	"fmt"
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

func visitFixture(actor *models.User) *models.Inmate {
	return &models.Inmate{
		ID: primitive.NewObjectID(),
		Details: models.InmateDetails{
			InmateID:          "INM-2026-001",
			FirstName:         "John",
			LastName:          "Doe",
			Status:            models.InmateStatusActive,
			AssignedOfficerID: actor.ID.Hex(),
		},
	}
}

func visitBody(visitDate string, duration int) string {
	return fmt.Sprintf(`{"visitorName": "Jane Doe", "relationship": "spouse", "visitType": "family", "visitDate": %q, "durationMinutes": %d}`,
		visitDate, duration)
}

func TestVisitorLog_CreateVisitorLogHandlerFutureVisitDate(t *testing.T) {
	mockVisitorDB := &mocks.VisitorLogDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)

	inmate := visitFixture(actor)
	mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)

	handler := handlers.VisitorLog{DB: mockVisitorDB, IDB: mockInmateDB, UDB: mockUserDB}

	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	req, err := http.NewRequest("POST", "/api/v1/inmate/"+inmate.ID.Hex()+"/visitors", strings.NewReader(visitBody(future, 60)))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"inmate_id": inmate.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateVisitorLogHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "visit date cannot be in the future")
	mockVisitorDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestVisitorLog_CreateVisitorLogHandlerDurationOutOfRange(t *testing.T) {
	for _, duration := range []int{14, 481, 0, -5} {
		mockVisitorDB := &mocks.VisitorLogDatabase{}
		mockInmateDB := &mocks.InmateDatabase{}
		mockUserDB := &mocks.UserDatabase{}

		actor := newActor(models.RolePrisonOfficer)
		expectActorLookup(mockUserDB, actor)

		inmate := visitFixture(actor)
		mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)

		handler := handlers.VisitorLog{DB: mockVisitorDB, IDB: mockInmateDB, UDB: mockUserDB}

		past := time.Now().Add(-2 * time.Hour).Format(time.RFC3339)
		req, err := http.NewRequest("POST", "/api/v1/inmate/"+inmate.ID.Hex()+"/visitors", strings.NewReader(visitBody(past, duration)))
		assert.NoError(t, err)
		req = mux.SetURLVars(req, map[string]string{"inmate_id": inmate.ID.Hex()})
		req = authenticated(req, actor)

		w := httptest.NewRecorder()
		handler.CreateVisitorLogHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "duration %d should be rejected", duration)
		assert.Contains(t, w.Body.String(), "visit duration out of range")
		mockVisitorDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
	}
}

func TestVisitorLog_CreateVisitorLogHandlerBoundaryDurations(t *testing.T) {
	for _, duration := range []int{models.MinVisitDuration, models.MaxVisitDuration} {
		mockVisitorDB := &mocks.VisitorLogDatabase{}
		mockInmateDB := &mocks.InmateDatabase{}
		mockUserDB := &mocks.UserDatabase{}
		mockAuditDB := &mocks.AuditLogDatabase{}

		actor := newActor(models.RolePrisonOfficer)
		expectActorLookup(mockUserDB, actor)
		expectAudit(mockAuditDB)

		inmate := visitFixture(actor)
		mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)
		mockVisitorDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

		handler := handlers.VisitorLog{DB: mockVisitorDB, IDB: mockInmateDB, UDB: mockUserDB, ADB: mockAuditDB}

		past := time.Now().Add(-2 * time.Hour).Format(time.RFC3339)
		req, err := http.NewRequest("POST", "/api/v1/inmate/"+inmate.ID.Hex()+"/visitors", strings.NewReader(visitBody(past, duration)))
		assert.NoError(t, err)
		req = mux.SetURLVars(req, map[string]string{"inmate_id": inmate.ID.Hex()})
		req = authenticated(req, actor)

		w := httptest.NewRecorder()
		handler.CreateVisitorLogHandler(w, req)

		assert.Equal(t, http.StatusCreated, w.Code, "duration %d should be accepted", duration)

		var created models.VisitorLog
		_ = json.Unmarshal(w.Body.Bytes(), &created)
		assert.Equal(t, duration, created.Details.DurationMinutes)
		assert.Equal(t, actor.ID.Hex(), created.Details.AuthorizedByID)
		mockVisitorDB.AssertExpectations(t)
	}
}

func TestVisitorLog_CreateVisitorLogHandlerNotAssignedOfficer(t *testing.T) {
	mockVisitorDB := &mocks.VisitorLogDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	other := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)

	inmate := visitFixture(other)
	mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)

	handler := handlers.VisitorLog{DB: mockVisitorDB, IDB: mockInmateDB, UDB: mockUserDB}

	past := time.Now().Add(-2 * time.Hour).Format(time.RFC3339)
	req, err := http.NewRequest("POST", "/api/v1/inmate/"+inmate.ID.Hex()+"/visitors", strings.NewReader(visitBody(past, 60)))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"inmate_id": inmate.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateVisitorLogHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestVisitorLog_VisitorLogsByInmateHandlerEmptyResponse(t *testing.T) {
	mockVisitorDB := &mocks.VisitorLogDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)
	mockVisitorDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.VisitorLog{DB: mockVisitorDB, IDB: mockInmateDB, UDB: mockUserDB}

	inmateID := primitive.NewObjectID().Hex()
	req, err := http.NewRequest("GET", "/api/v1/inmate/"+inmateID+"/visitors", nil)
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"inmate_id": inmateID})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.VisitorLogsByInmateHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
