package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justicedesk/court-prison-api/models"
)

func TestParseRole(t *testing.T) {
	role, err := models.ParseRole("prison_officer")
	assert.NoError(t, err)
	assert.Equal(t, models.RolePrisonOfficer, role)

	_, err = models.ParseRole("warden")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestParseCaseStatus(t *testing.T) {
	status, err := models.ParseCaseStatus("in_progress")
	assert.NoError(t, err)
	assert.Equal(t, models.CaseStatusInProgress, status)

	// parsing is strict about casing
	_, err = models.ParseCaseStatus("In_Progress")
	assert.Error(t, err)
}

func TestParseReleaseType(t *testing.T) {
	rt, err := models.ParseReleaseType("sentence_served")
	assert.NoError(t, err)
	assert.Equal(t, models.ReleaseSentenceServed, rt)

	_, err = models.ParseReleaseType("escape")
	assert.Error(t, err)
}

func TestParseVisitType(t *testing.T) {
	vt, err := models.ParseVisitType("legal")
	assert.NoError(t, err)
	assert.Equal(t, models.VisitLegal, vt)

	_, err = models.ParseVisitType("")
	assert.Error(t, err)
}
