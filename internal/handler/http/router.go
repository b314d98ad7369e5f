package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// FilesDir is served under /files for HR when non-empty.
	FilesDir string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceClock)).Post("/clock-in", attendanceHandler.ClockIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceClock)).Post("/clock-out", attendanceHandler.ClockOut)
				r.Post("/late-penalty", attendanceHandler.ClassifyLatePenalty)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).
					Get("/employees/{id}/report/{year}/{month}", attendanceHandler.MonthlyReport)
			})

			r.Route("/salary", func(r chi.Router) {
				r.Get("/working-days/{year}/{month}", payrollHandler.GetWorkingDays)
				r.Get("/rates", payrollHandler.GetRates)
			})

			r.Route("/employees/{id}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).
					Get("/attendance-summary/{year}/{month}", payrollHandler.GetAttendanceSummary)
				r.With(middleware.RequirePermission(user.PermissionSalaryCalculate)).
					Post("/calculate-salary", payrollHandler.CalculateSalary)
				r.With(middleware.RequirePermission(user.PermissionSalaryViewOwn)).
					Post("/generate-salary-slip", payrollHandler.GenerateSalarySlip)
				r.With(middleware.RequirePermission(user.PermissionSalaryViewOwn)).
					Get("/salary/annual/{year}", payrollHandler.GetAnnualSummary)
			})

			// HR and admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollRun))
				r.Post("/payroll/run", payrollHandler.RunPayroll)
			})
		})
	})

	if cfg.FilesDir != "" {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequirePermission(user.PermissionSalaryViewAll))
			r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.FilesDir))))
		})
	}

	return r
}
