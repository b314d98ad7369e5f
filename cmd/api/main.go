package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/config"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hrms-payroll/internal/handler/http"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/payslip"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-payroll/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-payroll/internal/service/attendance"
	payrollService "github.com/cmlabs-hris/hrms-payroll/internal/service/payroll"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "hrms-payroll"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: 2,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		slog.Info("Database schema applied")
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return fmt.Errorf("error loading timezone: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRecordRepo := postgresql.NewSalaryRecordRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	var fileStorage storage.FileStorage
	if cfg.Storage.Enabled {
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		fileStorage = local
	}

	rates := payroll.RateConfigForState(cfg.Payroll.State)
	calculator := payrollService.NewSalaryCalculator(rates, cfg.Payroll.StrictAttendance)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		attendanceService.NewLatePenaltyClassifier(attendance.DefaultPenaltyPolicy()),
		cfg.Payroll.ScheduledLogin,
		loc,
	)
	payrollSvc := payrollService.NewPayrollService(
		employeeRepo,
		attendanceRepo,
		salaryRecordRepo,
		calculator,
		payslip.NewRenderer(cfg.Payroll.CompanyName),
		fileStorage,
		cfg.Payroll.Workers,
		cfg.Payroll.DefaultMetro,
	)

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrollSvc, cfg.Payroll.AutoRun).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	routerCfg := appHTTP.RouterConfig{
		AppName:        "hrms-payroll",
		Version:        version,
		Env:            cfg.App.Env,
		LogLevel:       level,
		AllowedOrigins: cfg.App.AllowedOrigins,
	}
	if cfg.Storage.Enabled {
		routerCfg.FilesDir = cfg.Storage.BasePath
	}
	router := appHTTP.NewRouter(
		routerCfg,
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "state", rates.State)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
