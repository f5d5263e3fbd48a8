package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/api/scheduler"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	DB        databases.CollectionHelper
	Config    config.Config
	dbHelper  databases.DatabaseHelper
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{
		DB:     databases.NewUserDatabase(a.dbHelper),
		Tokens: databases.NewTokenDatabase(a.dbHelper),
	}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	auth := Auth{
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	u := User{
		DB:  databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	cs := Case{
		DB:  databases.NewCaseDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		NDB: databases.NewNotificationDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	ev := Evidence{
		DB:  databases.NewEvidenceDatabase(a.dbHelper),
		CDB: databases.NewCaseDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	h := Hearing{
		DB:  databases.NewHearingDatabase(a.dbHelper),
		CDB: databases.NewCaseDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	cr := CaseReport{
		DB:  databases.NewCaseReportDatabase(a.dbHelper),
		CDB: databases.NewCaseDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	i := Inmate{
		DB:  databases.NewInmateDatabase(a.dbHelper),
		RDB: databases.NewReleaseDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	ir := InmateReport{
		DB:  databases.NewInmateReportDatabase(a.dbHelper),
		IDB: databases.NewInmateDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		NDB: databases.NewNotificationDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	vl := VisitorLog{
		DB:  databases.NewVisitorLogDatabase(a.dbHelper),
		IDB: databases.NewInmateDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	pg := InmateProgram{
		DB:  databases.NewInmateProgramDatabase(a.dbHelper),
		IDB: databases.NewInmateDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	rl := Release{
		DB:  databases.NewReleaseDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	n := Notification{
		DB:  databases.NewNotificationDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
		ADB: databases.NewAuditLogDatabase(a.dbHelper),
	}
	au := Audit{
		DB:  databases.NewAuditLogDatabase(a.dbHelper),
		UDB: databases.NewUserDatabase(a.dbHelper),
	}
	d := Dashboard{
		CDB:  databases.NewCaseDatabase(a.dbHelper),
		EDB:  databases.NewEvidenceDatabase(a.dbHelper),
		HDB:  databases.NewHearingDatabase(a.dbHelper),
		CRDB: databases.NewCaseReportDatabase(a.dbHelper),
		IDB:  databases.NewInmateDatabase(a.dbHelper),
		IRDB: databases.NewInmateReportDatabase(a.dbHelper),
		VDB:  databases.NewVisitorLogDatabase(a.dbHelper),
		PDB:  databases.NewInmateProgramDatabase(a.dbHelper),
		UDB:  databases.NewUserDatabase(a.dbHelper),
	}
	pay := Payment{
		CDB:     databases.NewCaseDatabase(a.dbHelper),
		UDB:     databases.NewUserDatabase(a.dbHelper),
		BaseURL: a.Config.BaseURL,
	}
	uploadHandler := UploadHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(m.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.StaffLoginHandler)).Methods("POST")

	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")
	apiCreate.Handle("/users/role/{role}", api.Middleware(http.HandlerFunc(u.UsersByRoleHandler))).Methods("GET")
	apiCreate.Handle("/users/profile", api.Middleware(http.HandlerFunc(u.UpdateProfileHandler))).Methods("PUT")

	apiCreate.Handle("/case", api.Middleware(http.HandlerFunc(cs.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(cs.CasesHandler))).Methods("GET")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(cs.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(cs.UpdateCaseHandler))).Methods("PUT")
	apiCreate.Handle("/case/{case_id}/assign", api.Middleware(http.HandlerFunc(cs.AssignCaseHandler))).Methods("PUT")
	apiCreate.Handle("/case/{case_id}/sentence", api.Middleware(http.HandlerFunc(cs.SentenceCaseHandler))).Methods("PUT")
	apiCreate.Handle("/case/{case_id}/status", api.Middleware(http.HandlerFunc(cs.UpdateCaseStatusHandler))).Methods("PUT")

	apiCreate.Handle("/case/{case_id}/evidence", api.Middleware(http.HandlerFunc(ev.AddEvidenceHandler))).Methods("POST")
	apiCreate.Handle("/case/{case_id}/evidence", api.Middleware(http.HandlerFunc(ev.EvidenceByCaseHandler))).Methods("GET")
	apiCreate.Handle("/evidence/{evidence_id}/review", api.Middleware(http.HandlerFunc(ev.ReviewEvidenceHandler))).Methods("PUT")

	apiCreate.Handle("/case/{case_id}/hearings", api.Middleware(http.HandlerFunc(h.CreateHearingHandler))).Methods("POST")
	apiCreate.Handle("/case/{case_id}/hearings", api.Middleware(http.HandlerFunc(h.HearingsByCaseHandler))).Methods("GET")
	apiCreate.Handle("/hearing/{hearing_id}", api.Middleware(http.HandlerFunc(h.UpdateHearingHandler))).Methods("PUT")
	apiCreate.Handle("/hearing/{hearing_id}/complete", api.Middleware(http.HandlerFunc(h.CompleteHearingHandler))).Methods("PUT")

	apiCreate.Handle("/case/{case_id}/reports", api.Middleware(http.HandlerFunc(cr.SubmitCaseReportHandler))).Methods("POST")
	apiCreate.Handle("/case/{case_id}/reports", api.Middleware(http.HandlerFunc(cr.CaseReportsByCaseHandler))).Methods("GET")
	apiCreate.Handle("/case-report/{report_id}/approve", api.Middleware(http.HandlerFunc(cr.ApproveCaseReportHandler))).Methods("PUT")

	apiCreate.Handle("/case/{case_id}/fine/checkout", api.Middleware(http.HandlerFunc(pay.CreateFineCheckoutHandler))).Methods("POST")

	apiCreate.Handle("/inmate", api.Middleware(http.HandlerFunc(i.CreateInmateHandler))).Methods("POST")
	apiCreate.Handle("/inmates", api.Middleware(http.HandlerFunc(i.InmatesHandler))).Methods("GET")
	apiCreate.Handle("/inmate/{inmate_id}", api.Middleware(http.HandlerFunc(i.InmateByIDHandler))).Methods("GET")
	apiCreate.Handle("/inmate/{inmate_id}", api.Middleware(http.HandlerFunc(i.UpdateInmateHandler))).Methods("PUT")
	apiCreate.Handle("/inmate/{inmate_id}/assign", api.Middleware(http.HandlerFunc(i.AssignInmateHandler))).Methods("PUT")
	apiCreate.Handle("/inmate/{inmate_id}/release", api.Middleware(http.HandlerFunc(i.ReleaseInmateHandler))).Methods("POST")
	apiCreate.Handle("/inmate/{inmate_id}/releases", api.Middleware(http.HandlerFunc(rl.ReleasesByInmateHandler))).Methods("GET")

	apiCreate.Handle("/inmate/{inmate_id}/reports", api.Middleware(http.HandlerFunc(ir.CreateInmateReportHandler))).Methods("POST")
	apiCreate.Handle("/inmate/{inmate_id}/reports", api.Middleware(http.HandlerFunc(ir.InmateReportsByInmateHandler))).Methods("GET")
	apiCreate.Handle("/inmate-report/{report_id}/review", api.Middleware(http.HandlerFunc(ir.ReviewInmateReportHandler))).Methods("PUT")

	apiCreate.Handle("/inmate/{inmate_id}/visitors", api.Middleware(http.HandlerFunc(vl.CreateVisitorLogHandler))).Methods("POST")
	apiCreate.Handle("/inmate/{inmate_id}/visitors", api.Middleware(http.HandlerFunc(vl.VisitorLogsByInmateHandler))).Methods("GET")

	apiCreate.Handle("/inmate/{inmate_id}/programs", api.Middleware(http.HandlerFunc(pg.CreateProgramHandler))).Methods("POST")
	apiCreate.Handle("/inmate/{inmate_id}/programs", api.Middleware(http.HandlerFunc(pg.ProgramsByInmateHandler))).Methods("GET")
	apiCreate.Handle("/program/{program_id}", api.Middleware(http.HandlerFunc(pg.UpdateProgramHandler))).Methods("PUT")

	apiCreate.Handle("/notifications", api.Middleware(http.HandlerFunc(n.NotificationsHandler))).Methods("GET")
	apiCreate.Handle("/notifications/{notification_id}/read", api.Middleware(http.HandlerFunc(n.MarkNotificationReadHandler))).Methods("PUT")
	apiCreate.Handle("/ws/notifications", http.HandlerFunc(HandleNotificationsWebSocket)).Methods("GET")

	apiCreate.Handle("/audit-logs", api.Middleware(http.HandlerFunc(au.AuditLogsHandler))).Methods("GET")

	apiCreate.Handle("/dashboard", api.Middleware(http.HandlerFunc(d.DashboardHandler))).Methods("GET")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(uploadHandler.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/payments/success", http.HandlerFunc(pay.handleSuccessRedirect)).Methods("GET")
	apiCreate.Handle("/payments/cancel", http.HandlerFunc(pay.handleCancelRedirect)).Methods("GET")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("court-prison-api has connected to the database")

	// initialize stripe
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		return fmt.Errorf("stripe secret key is not set")
	}
	stripe.Key = stripeKey

	// background jobs: release alerts and stale urgent report reminders
	a.scheduler = scheduler.NewScheduler(
		databases.NewInmateDatabase(a.dbHelper),
		databases.NewInmateReportDatabase(a.dbHelper),
		databases.NewNotificationDatabase(a.dbHelper),
		databases.NewUserDatabase(a.dbHelper),
	)
	a.scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
