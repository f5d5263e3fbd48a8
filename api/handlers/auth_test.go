package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/justicedesk/court-prison-api/api/handlers"
	"github.com/justicedesk/court-prison-api/databases/mocks"
	"github.com/justicedesk/court-prison-api/models"
)

func TestAuth_StaffLoginHandlerSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	mockUserDB := &mocks.UserDatabase{}
	mockAuditDB := &mocks.AuditLogDatabase{}
	expectAudit(mockAuditDB)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email:     "clerk@justicedesk.example.com",
			Password:  string(hash),
			FirstName: "Test",
			LastName:  "Clerk",
			Profile:   models.Profile{Role: models.RoleClerk, IsActive: true},
		},
	}
	mockUserDB.On("FindOne", mock.Anything, bson.M{
		"user.email":            "clerk@justicedesk.example.com",
		"user.profile.isActive": true,
	}).Return(user, nil)

	handler := handlers.Auth{UDB: mockUserDB, ADB: mockAuditDB}

	body := `{"email": "Clerk@justicedesk.example.com", "password": "hunter22"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.StaffLoginHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   string      `json:"id"`
			Role models.Role `json:"role"`
		} `json:"user"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID.Hex(), resp.User.ID)
	assert.Equal(t, models.RoleClerk, resp.User.Role)
}

func TestAuth_StaffLoginHandlerWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	mockUserDB := &mocks.UserDatabase{}

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email:    "clerk@justicedesk.example.com",
			Password: string(hash),
			Profile:  models.Profile{Role: models.RoleClerk, IsActive: true},
		},
	}
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(user, nil)

	handler := handlers.Auth{UDB: mockUserDB}

	body := `{"email": "clerk@justicedesk.example.com", "password": "wrong"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.StaffLoginHandler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAuth_StaffLoginHandlerUnknownEmail(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	handler := handlers.Auth{UDB: mockUserDB}

	body := `{"email": "nobody@justicedesk.example.com", "password": "hunter22"}`
	req, err := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.StaffLoginHandler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAuth_StaffLoginHandlerMissingFields(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}

	handler := handlers.Auth{UDB: mockUserDB}

	body := `{"email": "", "password": ""}`
	req, err := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.StaffLoginHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email and password required")
	mockUserDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}
