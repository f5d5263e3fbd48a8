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

func TestInmateReport_CreateInmateReportHandlerUrgentRaisesNotification(t *testing.T) {
	mockReportDB := &mocks.InmateReportDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	inmate := visitFixture(actor)
	mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)
	mockReportDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	mockNotificationDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.InmateReport{DB: mockReportDB, IDB: mockInmateDB, UDB: mockUserDB, NDB: mockNotificationDB, ADB: mockAuditDB}

	body := `{"reportType": "urgent", "title": "Cell block altercation", "content": "Fight broke out during yard time.", "priority": "urgent"}`
	req, err := http.NewRequest("POST", "/api/v1/inmate/"+inmate.ID.Hex()+"/reports", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"inmate_id": inmate.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateInmateReportHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.InmateReport
	err = json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.Equal(t, models.InmateReportUrgent, created.Details.ReportType)
	assert.Equal(t, models.InmateReportPending, created.Details.Status)
	mockNotificationDB.AssertExpectations(t)
}

func TestInmateReport_CreateInmateReportHandlerRegularSkipsNotification(t *testing.T) {
	mockReportDB := &mocks.InmateReportDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockNotificationDB := &mocks.NotificationDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	inmate := visitFixture(actor)
	mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)
	mockReportDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)

	handler := handlers.InmateReport{DB: mockReportDB, IDB: mockInmateDB, UDB: mockUserDB, NDB: mockNotificationDB, ADB: mockAuditDB}

	body := `{"reportType": "regular", "title": "Weekly review", "content": "No incidents to report."}`
	req, err := http.NewRequest("POST", "/api/v1/inmate/"+inmate.ID.Hex()+"/reports", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"inmate_id": inmate.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.CreateInmateReportHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockNotificationDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestInmateReport_ReviewInmateReportHandlerInvalidStatus(t *testing.T) {
	mockReportDB := &mocks.InmateReportDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)

	inmate := visitFixture(actor)
	report := &models.InmateReport{
		ID: primitive.NewObjectID(),
		Details: models.InmateReportDetails{
			InmateID:   inmate.ID.Hex(),
			ReportType: models.InmateReportRegular,
			Title:      "Weekly review",
			Status:     models.InmateReportPending,
		},
	}
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": report.ID}).Return(report, nil)
	mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)

	handler := handlers.InmateReport{DB: mockReportDB, IDB: mockInmateDB, UDB: mockUserDB}

	body := `{"status": "archived"}`
	req, err := http.NewRequest("PUT", "/api/v1/inmate-report/"+report.ID.Hex()+"/review", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"report_id": report.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.ReviewInmateReportHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid report status")
	mockReportDB.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestInmateReport_ReviewInmateReportHandlerSuccess(t *testing.T) {
	mockReportDB := &mocks.InmateReportDatabase{}
	mockInmateDB := &mocks.InmateDatabase{}
	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}

	actor := newActor(models.RolePrisonOfficer)
	expectActorLookup(mockUserDB, actor)
	expectAudit(mockAuditDB)

	inmate := visitFixture(actor)
	report := &models.InmateReport{
		ID: primitive.NewObjectID(),
		Details: models.InmateReportDetails{
			InmateID:   inmate.ID.Hex(),
			ReportType: models.InmateReportDisciplinary,
			Title:      "Contraband found",
			Status:     models.InmateReportPending,
		},
	}
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": report.ID}).Return(report, nil)
	mockInmateDB.On("FindOne", mock.Anything, bson.M{"_id": inmate.ID}).Return(inmate, nil)
	mockReportDB.On("UpdateOne", mock.Anything, bson.M{"_id": report.ID}, mock.Anything).Return(nil)

	handler := handlers.InmateReport{DB: mockReportDB, IDB: mockInmateDB, UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"status": "reviewed", "reviewNotes": "confirmed, cell searched", "actionRequired": true, "actionTaken": "privileges suspended"}`
	req, err := http.NewRequest("PUT", "/api/v1/inmate-report/"+report.ID.Hex()+"/review", strings.NewReader(body))
	assert.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"report_id": report.ID.Hex()})
	req = authenticated(req, actor)

	w := httptest.NewRecorder()
	handler.ReviewInmateReportHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "report reviewed")
	mockReportDB.AssertExpectations(t)
}
