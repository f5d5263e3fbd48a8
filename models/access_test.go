package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/models"
)

func staff(role models.Role) *models.User {
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Username: "test-user",
			Profile:  models.Profile{Role: role, IsActive: true},
		},
	}
}

func TestHasRole(t *testing.T) {
	judge := staff(models.RoleJudge)

	assert.True(t, models.HasRole(judge, models.RoleJudge))
	assert.True(t, models.HasRole(judge, models.RoleClerk, models.RoleJudge))
	assert.False(t, models.HasRole(judge, models.RoleClerk))
	assert.False(t, models.HasRole(judge))
	assert.False(t, models.HasRole(nil, models.RoleJudge))

	roleless := staff("")
	assert.False(t, models.HasRole(roleless, models.RoleJudge))
}

func TestIsAssignedTo(t *testing.T) {
	judge := staff(models.RoleJudge)
	officer := staff(models.RolePrisonOfficer)

	courtCase := &models.Case{
		ID:      primitive.NewObjectID(),
		Details: models.CaseDetails{AssignedJudgeID: judge.ID.Hex()},
	}
	assert.True(t, models.IsAssignedTo(judge, courtCase))
	assert.False(t, models.IsAssignedTo(officer, courtCase))
	assert.False(t, models.IsAssignedTo(nil, courtCase))

	hearing := &models.Hearing{
		ID:      primitive.NewObjectID(),
		Details: models.HearingDetails{JudgeID: judge.ID.Hex()},
	}
	assert.True(t, models.IsAssignedTo(judge, hearing))

	inmate := &models.Inmate{
		ID:      primitive.NewObjectID(),
		Details: models.InmateDetails{AssignedOfficerID: officer.ID.Hex()},
	}
	assert.True(t, models.IsAssignedTo(officer, inmate))
	assert.False(t, models.IsAssignedTo(judge, inmate))

	// unassigned records match nobody
	unassigned := &models.Case{ID: primitive.NewObjectID()}
	assert.False(t, models.IsAssignedTo(judge, unassigned))
}
