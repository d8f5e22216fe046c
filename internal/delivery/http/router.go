package http

import (
	"net/http"
	"time"

	"patientor/internal/delivery/http/handler"
	"patientor/internal/delivery/http/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router            *mux.Router
	log               *logrus.Logger
	requestTimeout    time.Duration
	pageHandler       *handler.PatientPageHandler
	entryFormHandler  *handler.EntryFormHandler
	auditLogHandler   *handler.AuditLogHandler
	sessionMiddleware *middleware.SessionMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	requestTimeout time.Duration,
	pageHandler *handler.PatientPageHandler,
	entryFormHandler *handler.EntryFormHandler,
	auditLogHandler *handler.AuditLogHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		log:               log,
		requestTimeout:    requestTimeout,
		pageHandler:       pageHandler,
		entryFormHandler:  entryFormHandler,
		auditLogHandler:   auditLogHandler,
		sessionMiddleware: sessionMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestLogger(r.log),
		chimw.Recoverer,
		chimw.Timeout(r.requestTimeout),
	)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.corsMiddleware.Handle)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient page (JSON)
	patients := api.PathPrefix("/patients/{id}").Subrouter()
	patients.Use(r.sessionMiddleware.Handle)
	patients.HandleFunc("", r.entryFormHandler.GetPage).Methods(http.MethodGet)
	patients.HandleFunc("/form/actions", r.entryFormHandler.DispatchActions).Methods(http.MethodPost, http.MethodOptions)
	patients.HandleFunc("/form/submit", r.entryFormHandler.Submit).Methods(http.MethodPost, http.MethodOptions)
	patients.HandleFunc("/form/cancel", r.entryFormHandler.Cancel).Methods(http.MethodPost, http.MethodOptions)
	patients.HandleFunc("/audit-logs", r.auditLogHandler.GetPatientAuditLogs).Methods(http.MethodGet)

	// Patient page (HTML)
	pages := r.router.PathPrefix("/patients/{id}").Subrouter()
	pages.Use(r.sessionMiddleware.Handle)
	pages.HandleFunc("", r.pageHandler.ShowPage).Methods(http.MethodGet)
	pages.HandleFunc("/form", r.pageHandler.UpdateForm).Methods(http.MethodPost)
	pages.HandleFunc("/form/kind", r.pageHandler.SelectKind).Methods(http.MethodPost)
	pages.HandleFunc("/form/cancel", r.pageHandler.CancelForm).Methods(http.MethodPost)
	pages.HandleFunc("/entries", r.pageHandler.SubmitEntry).Methods(http.MethodPost)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
