package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// Dashboard exported for testing purposes
type Dashboard struct {
	CDB  databases.CaseDatabase
	EDB  databases.EvidenceDatabase
	HDB  databases.HearingDatabase
	CRDB databases.CaseReportDatabase
	IDB  databases.InmateDatabase
	IRDB databases.InmateReportDatabase
	VDB  databases.VisitorLogDatabase
	PDB  databases.InmateProgramDatabase
	UDB  databases.UserDatabase
}

// DashboardHandler returns the flat key/count map for the caller's role.
// Empty collections produce zero counts, never errors.
func (d Dashboard) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, d.UDB, models.RoleClerk, models.RoleJudge, models.RolePrisonOfficer)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var counts map[string]int64
	var err error
	switch actor.Details.Profile.Role {
	case models.RoleClerk:
		counts, err = d.clerkCounts(ctx)
	case models.RoleJudge:
		counts, err = d.judgeCounts(ctx, actor.ID.Hex())
	case models.RolePrisonOfficer:
		counts, err = d.officerCounts(ctx, actor.ID.Hex())
	}
	if err != nil {
		config.ErrorStatus("failed to build dashboard", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(counts)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (d Dashboard) clerkCounts(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	today := todayStart()

	caseStatuses := map[string]models.CaseStatus{
		"pending_cases":     models.CaseStatusPending,
		"assigned_cases":    models.CaseStatusAssigned,
		"in_progress_cases": models.CaseStatusInProgress,
		"decided_cases":     models.CaseStatusDecided,
		"closed_cases":      models.CaseStatusClosed,
	}

	n, err := d.CDB.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	counts["total_cases"] = n

	for key, status := range caseStatuses {
		n, err := d.CDB.CountDocuments(ctx, bson.M{"case.status": status})
		if err != nil {
			return nil, err
		}
		counts[key] = n
	}

	n, err = d.CDB.CountDocuments(ctx, bson.M{"case.filingDate": dayWindow(today)})
	if err != nil {
		return nil, err
	}
	counts["cases_filed_today"] = n

	// pending cases sitting for 30 days or more
	cutoff := primitive.NewDateTimeFromTime(today.AddDate(0, 0, -30))
	n, err = d.CDB.CountDocuments(ctx, bson.M{
		"case.status":     models.CaseStatusPending,
		"case.filingDate": bson.M{"$lte": cutoff},
	})
	if err != nil {
		return nil, err
	}
	counts["cases_needing_attention"] = n

	n, err = d.HDB.CountDocuments(ctx, bson.M{
		"hearing.scheduledDate": bson.M{"$gte": primitive.NewDateTimeFromTime(time.Now())},
		"hearing.isCompleted":   false,
		"hearing.isCancelled":   false,
	})
	if err != nil {
		return nil, err
	}
	counts["upcoming_hearings"] = n

	n, err = d.CRDB.CountDocuments(ctx, bson.M{"caseReport.submissionDate": dayWindow(today)})
	if err != nil {
		return nil, err
	}
	counts["reports_submitted_today"] = n

	return counts, nil
}

func (d Dashboard) judgeCounts(ctx context.Context, judgeID string) (map[string]int64, error) {
	counts := map[string]int64{}
	today := todayStart()
	mine := bson.M{"case.assignedJudgeID": judgeID}

	n, err := d.CDB.CountDocuments(ctx, mine)
	if err != nil {
		return nil, err
	}
	counts["assigned_cases"] = n

	n, err = d.CDB.CountDocuments(ctx, bson.M{
		"case.assignedJudgeID": judgeID,
		"case.status":          models.CaseStatusInProgress,
	})
	if err != nil {
		return nil, err
	}
	counts["pending_decisions"] = n

	n, err = d.CDB.CountDocuments(ctx, bson.M{
		"case.assignedJudgeID": judgeID,
		"case.status":          bson.M{"$in": []models.CaseStatus{models.CaseStatusDecided, models.CaseStatusClosed}},
	})
	if err != nil {
		return nil, err
	}
	counts["completed_cases"] = n

	for key, priority := range map[string]models.CasePriority{
		"high_priority_cases":   models.CasePriorityHigh,
		"medium_priority_cases": models.CasePriorityMedium,
		"low_priority_cases":    models.CasePriorityLow,
	} {
		n, err = d.CDB.CountDocuments(ctx, bson.M{
			"case.assignedJudgeID": judgeID,
			"case.priority":        priority,
		})
		if err != nil {
			return nil, err
		}
		counts[key] = n
	}

	// evidence awaiting review across this judge's cases
	myCases, err := d.CDB.Find(ctx, mine)
	if err != nil {
		return nil, err
	}
	caseIDs := make([]string, 0, len(myCases))
	for i := range myCases {
		caseIDs = append(caseIDs, myCases[i].ID.Hex())
	}
	n, err = d.EDB.CountDocuments(ctx, bson.M{
		"evidence.caseID":     bson.M{"$in": caseIDs},
		"evidence.isApproved": nil,
	})
	if err != nil {
		return nil, err
	}
	counts["pending_evidence"] = n

	n, err = d.HDB.CountDocuments(ctx, bson.M{
		"hearing.judgeID":       judgeID,
		"hearing.scheduledDate": bson.M{"$gte": primitive.NewDateTimeFromTime(time.Now())},
		"hearing.isCompleted":   false,
		"hearing.isCancelled":   false,
	})
	if err != nil {
		return nil, err
	}
	counts["upcoming_hearings"] = n

	n, err = d.CDB.CountDocuments(ctx, bson.M{
		"case.assignedJudgeID": judgeID,
		"case.status":          models.CaseStatusDecided,
		"case.decisionDate":    dayWindow(today),
	})
	if err != nil {
		return nil, err
	}
	counts["sentences_today"] = n

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	n, err = d.CDB.CountDocuments(ctx, bson.M{
		"case.assignedJudgeID": judgeID,
		"case.status":          models.CaseStatusDecided,
		"case.decisionDate":    bson.M{"$gte": primitive.NewDateTimeFromTime(monthStart)},
	})
	if err != nil {
		return nil, err
	}
	counts["sentences_this_month"] = n

	return counts, nil
}

func (d Dashboard) officerCounts(ctx context.Context, officerID string) (map[string]int64, error) {
	counts := map[string]int64{}
	today := todayStart()
	active := bson.M{
		"inmate.assignedOfficerID": officerID,
		"inmate.status":            models.InmateStatusActive,
	}

	n, err := d.IDB.CountDocuments(ctx, active)
	if err != nil {
		return nil, err
	}
	counts["active_inmates"] = n

	for key, flag := range map[string]string{
		"medical_attention_required": "inmate.medicalAttentionRequired",
		"disciplinary_issues":        "inmate.disciplinaryIssues",
		"protective_custody":         "inmate.protectiveCustody",
	} {
		n, err = d.IDB.CountDocuments(ctx, bson.M{
			"inmate.assignedOfficerID": officerID,
			"inmate.status":            models.InmateStatusActive,
			flag:                       true,
		})
		if err != nil {
			return nil, err
		}
		counts[key] = n
	}

	n, err = d.IRDB.CountDocuments(ctx, bson.M{
		"inmateReport.submittedByID": officerID,
		"inmateReport.status":        models.InmateReportPending,
	})
	if err != nil {
		return nil, err
	}
	counts["pending_reports"] = n

	n, err = d.IRDB.CountDocuments(ctx, bson.M{
		"inmateReport.submittedByID": officerID,
		"inmateReport.reportType":    models.InmateReportUrgent,
		"inmateReport.isReviewed":    false,
	})
	if err != nil {
		return nil, err
	}
	counts["urgent_unreviewed_reports"] = n

	now := time.Now()
	n, err = d.IDB.CountDocuments(ctx, bson.M{
		"inmate.assignedOfficerID": officerID,
		"inmate.status":            models.InmateStatusActive,
		"inmate.expectedReleaseDate": bson.M{
			"$gte": primitive.NewDateTimeFromTime(now),
			"$lt":  primitive.NewDateTimeFromTime(now.AddDate(0, 0, 7)),
		},
	})
	if err != nil {
		return nil, err
	}
	counts["upcoming_releases"] = n

	// active programs across this officer's inmates
	myInmates, err := d.IDB.Find(ctx, bson.M{"inmate.assignedOfficerID": officerID})
	if err != nil {
		return nil, err
	}
	inmateIDs := make([]string, 0, len(myInmates))
	for i := range myInmates {
		inmateIDs = append(inmateIDs, myInmates[i].ID.Hex())
	}
	n, err = d.PDB.CountDocuments(ctx, bson.M{
		"inmateProgram.inmateID": bson.M{"$in": inmateIDs},
		"inmateProgram.status":   models.ProgramStatusActive,
	})
	if err != nil {
		return nil, err
	}
	counts["active_programs"] = n

	n, err = d.VDB.CountDocuments(ctx, bson.M{
		"visitorLog.authorizedByID": officerID,
		"visitorLog.visitDate":      dayWindow(today),
	})
	if err != nil {
		return nil, err
	}
	counts["todays_visitors"] = n

	return counts, nil
}
