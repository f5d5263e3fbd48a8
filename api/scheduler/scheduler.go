package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
	templates "github.com/justicedesk/court-prison-api/templates/html"
)

// Scheduler handles periodic background jobs for the facility
type Scheduler struct {
	cron *cron.Cron
	IDB  databases.InmateDatabase
	IRDB databases.InmateReportDatabase
	NDB  databases.NotificationDatabase
	UDB  databases.UserDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	iDB databases.InmateDatabase,
	irDB databases.InmateReportDatabase,
	nDB databases.NotificationDatabase,
	uDB databases.UserDatabase,
) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		IDB:  iDB,
		IRDB: irDB,
		NDB:  nDB,
		UDB:  uDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Alert officers about upcoming releases daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.processUpcomingReleases)
	if err != nil {
		zap.S().Errorw("failed to register release alert job", "error", err)
	}

	// Remind officers about urgent reports left unreviewed, daily at 2 AM UTC
	_, err = s.cron.AddFunc("0 2 * * *", s.processStaleUrgentReports)
	if err != nil {
		zap.S().Errorw("failed to register urgent report reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Facility scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Facility scheduler stopped")
}

// processUpcomingReleases notifies assigned officers about inmates whose
// expected release date falls within the next 7 days. The job runs daily,
// so officers get one reminder per day per inmate until the release.
func (s *Scheduler) processUpcomingReleases() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"inmate.status": models.InmateStatusActive,
		"inmate.expectedReleaseDate": bson.M{
			"$gte": primitive.NewDateTimeFromTime(now),
			"$lt":  primitive.NewDateTimeFromTime(now.AddDate(0, 0, 7)),
		},
	}

	inmates, err := s.IDB.Find(ctx, filter)
	if err != nil {
		zap.S().Errorw("failed to find inmates nearing release", "error", err)
		return
	}

	for i := range inmates {
		s.alertUpcomingRelease(ctx, inmates[i])
	}

	zap.S().Infow("Release alert job complete", "inmatesAlerted", len(inmates))
}

func (s *Scheduler) alertUpcomingRelease(ctx context.Context, inmate models.Inmate) {
	officerID := inmate.Details.AssignedOfficerID
	if officerID == "" {
		return
	}

	releaseDate := ""
	if inmate.Details.ExpectedReleaseDate != nil {
		releaseDate = inmate.Details.ExpectedReleaseDate.Time().Format("2006-01-02")
	}
	message := fmt.Sprintf("Inmate %s (%s) is expected to be released on %s. Prepare the release paperwork.",
		inmate.FullName(), inmate.Details.InmateID, releaseDate)

	notification := models.Notification{
		ID: primitive.NewObjectID(),
		Details: models.NotificationDetails{
			RecipientID:      officerID,
			Title:            "Upcoming release",
			Message:          message,
			NotificationType: models.NotifyReleaseAlert,
			Priority:         models.PriorityHigh,
			CreatedAt:        primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if _, err := s.NDB.InsertOne(ctx, notification); err != nil {
		zap.S().Errorw("failed to insert release alert notification", "error", err, "inmateId", inmate.ID.Hex())
		return
	}

	email, name := s.getUserEmail(ctx, officerID)
	if email == "" {
		return
	}
	subject := "Upcoming Release: " + inmate.FullName()
	htmlContent := templates.RenderGenericEmail(subject, message)
	if err := s.sendEmail(email, name, subject, htmlContent, message); err != nil {
		zap.S().Errorw("failed to send release alert email", "error", err, "inmateId", inmate.ID.Hex())
	}
}

// processStaleUrgentReports reminds officers about urgent reports that have
// sat unreviewed for more than 48 hours.
func (s *Scheduler) processStaleUrgentReports() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-48 * time.Hour)
	filter := bson.M{
		"inmateReport.reportType":     models.InmateReportUrgent,
		"inmateReport.isReviewed":     false,
		"inmateReport.submissionDate": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	}

	reports, err := s.IRDB.Find(ctx, filter)
	if err != nil {
		zap.S().Errorw("failed to find stale urgent reports", "error", err)
		return
	}

	for i := range reports {
		s.remindStaleReport(ctx, reports[i])
	}

	zap.S().Infow("Urgent report reminder job complete", "reportsFlagged", len(reports))
}

func (s *Scheduler) remindStaleReport(ctx context.Context, report models.InmateReport) {
	officerID := report.Details.SubmittedByID
	if officerID == "" {
		return
	}

	message := fmt.Sprintf("Urgent report %q filed on %s is still awaiting review.",
		report.Details.Title, report.Details.SubmissionDate.Time().Format("2006-01-02"))

	notification := models.Notification{
		ID: primitive.NewObjectID(),
		Details: models.NotificationDetails{
			RecipientID:      officerID,
			Title:            "Urgent report awaiting review",
			Message:          message,
			NotificationType: models.NotifyUrgentReport,
			Priority:         models.PriorityUrgent,
			ReportID:         report.ID.Hex(),
			CreatedAt:        primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	if _, err := s.NDB.InsertOne(ctx, notification); err != nil {
		zap.S().Errorw("failed to insert urgent report reminder", "error", err, "reportId", report.ID.Hex())
		return
	}

	email, name := s.getUserEmail(ctx, officerID)
	if email == "" {
		return
	}
	subject := "Urgent Report Awaiting Review"
	htmlContent := templates.RenderGenericEmail(subject, message)
	if err := s.sendEmail(email, name, subject, htmlContent, message); err != nil {
		zap.S().Errorw("failed to send urgent report reminder email", "error", err, "reportId", report.ID.Hex())
	}
}

// --- Email Helper Functions ---

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("JusticeDesk", "no-reply@justicedesk.example.com")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

func (s *Scheduler) getUserEmail(ctx context.Context, userID string) (email, name string) {
	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", ""
	}
	user, err := s.UDB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil || user.Details.Email == "" {
		return "", ""
	}
	return user.Details.Email, user.DisplayName()
}
