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

	"github.com/kantoria/hr-backoffice-go/internal/config"
	appHTTP "github.com/kantoria/hr-backoffice-go/internal/handler/http"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/cron"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/jwt"
	"github.com/kantoria/hr-backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/kantoria/hr-backoffice-go/internal/service/attendance"
	authService "github.com/kantoria/hr-backoffice-go/internal/service/auth"
	payrollService "github.com/kantoria/hr-backoffice-go/internal/service/payroll"
	referenceService "github.com/kantoria/hr-backoffice-go/internal/service/reference"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	workingHoursRepo := postgresql.NewWorkingHoursRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	biometricRepo := postgresql.NewBiometricEventRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveCreditRepo := postgresql.NewLeaveCreditRepository(db)
	installmentRepo := postgresql.NewInstallmentRepository(db)
	cashAdvanceRepo := postgresql.NewCashAdvanceRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	classifier := attendanceService.Classifier{
		GraceHours:     cfg.Payroll.GraceHours,
		LateGraceHours: cfg.Payroll.LateGraceHours,
	}
	reconciler := attendanceService.NewReconciler(txManager, attendanceRepo, biometricRepo, workingHoursRepo, classifier)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		holidayRepo,
		leaveRequestRepo,
		workingHoursRepo,
		employeeRepo,
		reconciler,
		classifier,
		cfg.Payroll.BatchWorkers,
		cfg.Payroll.PolicyWindowDays,
	)

	processor := payrollService.NewProcessor(
		txManager,
		payrollRepo,
		attendanceRepo,
		holidayRepo,
		leaveRequestRepo,
		leaveCreditRepo,
		installmentRepo,
		salaryRepo,
		workingHoursRepo,
		cfg.Payroll,
	)
	payrollSvc := payrollService.NewPayrollService(processor, payrollRepo, employeeRepo, cfg.Payroll)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	referenceSvc := referenceService.NewService(txManager, workingHoursRepo, holidayRepo, leaveRequestRepo, leaveCreditRepo, cashAdvanceRepo)

	router := appHTTP.NewRouter(
		cfg.App,
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewReferenceHandler(referenceSvc),
	)

	scheduler := cron.NewScheduler()
	cron.NewBackOfficeJobs(attendanceSvc, payrollSvc, payrollRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
