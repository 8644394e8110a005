package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kantoria/hr-backoffice-go/internal/config"
	"github.com/kantoria/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/jwt"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	referenceHandler ReferenceHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backoffice"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/{id}", attendanceHandler.Get)
				r.Get("/roster/{employeeID}/month", attendanceHandler.MonthRoster)
				r.Get("/roster/{employeeID}/range", attendanceHandler.RangeRoster)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", attendanceHandler.Create)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
					r.Post("/reconcile", attendanceHandler.ReconcileDay)
					r.Post("/reconcile-all", attendanceHandler.ReconcileAll)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/cycles", func(r chi.Router) {
					r.Get("/", payrollHandler.ListCycles)
					r.Get("/{id}", payrollHandler.GetCycle)
					r.Get("/{id}/payrolls", payrollHandler.ListPayrollsByCycle)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", payrollHandler.CreateCycle)
						r.Post("/{id}/process", payrollHandler.ProcessCycle)
					})
				})

				r.Route("/payrolls", func(r chi.Router) {
					r.Get("/{id}", payrollHandler.GetPayroll)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/{id}/recalculate", payrollHandler.RecalculatePayroll)
						r.Put("/{id}/manual-correction", payrollHandler.ApplyManualCorrection)
						r.Post("/{id}/mark-paid", payrollHandler.MarkPaid)
					})
				})
			})

			r.Route("/working-hours", func(r chi.Router) {
				r.Get("/", referenceHandler.ListWorkingHours)
				r.Get("/{id}", referenceHandler.GetWorkingHours)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", referenceHandler.CreateWorkingHours)
					r.Put("/{id}", referenceHandler.UpdateWorkingHours)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", referenceHandler.ListHolidays)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", referenceHandler.CreateHoliday)
					r.Delete("/{id}", referenceHandler.DeleteHoliday)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", referenceHandler.CreateLeaveRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/decide", referenceHandler.DecideLeaveRequest)
					r.Post("/credits", referenceHandler.GrantLeaveCredit)
				})
			})

			r.Route("/cash-advances", func(r chi.Router) {
				r.Post("/", referenceHandler.CreateCashAdvance)
				r.Get("/", referenceHandler.ListCashAdvances)
				r.Get("/{id}", referenceHandler.GetCashAdvance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/decide", referenceHandler.DecideCashAdvance)
					r.Post("/{id}/disburse", referenceHandler.DisburseCashAdvance)
				})
			})
		})
	})

	return r
}
