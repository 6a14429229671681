package http

import (
	"net/http"

	"clinic-management-api/internal/delivery/http/handler"
	"clinic-management-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	appointmentHandler   *handler.AppointmentHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	prescriptionHandler  *handler.PrescriptionHandler
	paymentHandler       *handler.PaymentHandler
	scheduleHandler      *handler.DoctorScheduleHandler
	userHandler          *handler.UserHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	paymentHandler *handler.PaymentHandler,
	scheduleHandler *handler.DoctorScheduleHandler,
	userHandler *handler.UserHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		appointmentHandler:   appointmentHandler,
		medicalRecordHandler: medicalRecordHandler,
		prescriptionHandler:  prescriptionHandler,
		paymentHandler:       paymentHandler,
		scheduleHandler:      scheduleHandler,
		userHandler:          userHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointments: any authenticated role; visibility enforced in usecases
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Medical records: writes are clinician-only at the route level
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("", r.medicalRecordHandler.List).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.Get).Methods(http.MethodGet)

	recordWrites := api.PathPrefix("/medical-records").Subrouter()
	recordWrites.Use(r.authMiddleware.Authenticate)
	recordWrites.Use(middleware.RequireClinician)
	recordWrites.HandleFunc("", r.medicalRecordHandler.Create).Methods(http.MethodPost)
	recordWrites.HandleFunc("/{id}", r.medicalRecordHandler.Update).Methods(http.MethodPatch)

	// Prescriptions
	prescriptions := api.PathPrefix("/prescriptions").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.HandleFunc("", r.prescriptionHandler.List).Methods(http.MethodGet)
	prescriptions.HandleFunc("/{id}", r.prescriptionHandler.Get).Methods(http.MethodGet)

	prescriptionWrites := api.PathPrefix("/prescriptions").Subrouter()
	prescriptionWrites.Use(r.authMiddleware.Authenticate)
	prescriptionWrites.Use(middleware.RequireClinician)
	prescriptionWrites.HandleFunc("", r.prescriptionHandler.Create).Methods(http.MethodPost)

	// Payments
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.HandleFunc("", r.paymentHandler.Create).Methods(http.MethodPost)
	payments.HandleFunc("", r.paymentHandler.List).Methods(http.MethodGet)
	payments.HandleFunc("/{id}", r.paymentHandler.Get).Methods(http.MethodGet)

	paymentWrites := api.PathPrefix("/payments").Subrouter()
	paymentWrites.Use(r.authMiddleware.Authenticate)
	paymentWrites.Use(middleware.RequireClinician)
	paymentWrites.HandleFunc("/{id}/status", r.paymentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Doctor schedules: reads for everyone, writes for clinicians
	schedules := api.PathPrefix("/doctor-schedules").Subrouter()
	schedules.Use(r.authMiddleware.Authenticate)
	schedules.HandleFunc("", r.scheduleHandler.List).Methods(http.MethodGet)

	scheduleWrites := api.PathPrefix("/doctor-schedules").Subrouter()
	scheduleWrites.Use(r.authMiddleware.Authenticate)
	scheduleWrites.Use(middleware.RequireClinician)
	scheduleWrites.HandleFunc("", r.scheduleHandler.Create).Methods(http.MethodPost)
	scheduleWrites.HandleFunc("/{id}", r.scheduleHandler.Delete).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", r.userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", r.userHandler.UpdateRole).Methods(http.MethodPatch)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.Get).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
