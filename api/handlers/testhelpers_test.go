package handlers_test

import (
	"net/http"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/databases/mocks"
	"github.com/justicedesk/court-prison-api/models"
)

// newActor builds a staff user with the given role for handler tests
func newActor(role models.Role) *models.User {
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Username:  "test-user",
			Email:     "test@justicedesk.example.com",
			FirstName: "Test",
			LastName:  "User",
			Profile: models.Profile{
				Role:     role,
				IsActive: true,
			},
		},
	}
}

// authenticated stamps the actor's id on the request context the same way
// the auth middleware does
func authenticated(req *http.Request, actor *models.User) *http.Request {
	return req.WithContext(api.WithActorID(req.Context(), actor.ID.Hex()))
}

// expectActorLookup wires the user lookup performed by every role-gated handler
func expectActorLookup(udb *mocks.UserDatabase, actor *models.User) {
	udb.On("FindOne", mock.Anything, bson.M{"_id": actor.ID}).Return(actor, nil)
}

// expectAudit wires the fire-and-forget audit insert
func expectAudit(adb *mocks.AuditLogDatabase) {
	adb.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
}
