package main

import (
	"fmt"
	"net/http"

	"github.com/opspay/payroll-backend-go/internal/config"
	appHTTP "github.com/opspay/payroll-backend-go/internal/handler/http"
	"github.com/opspay/payroll-backend-go/internal/pkg/cron"
	"github.com/opspay/payroll-backend-go/internal/pkg/database"
	"github.com/opspay/payroll-backend-go/internal/pkg/jwt"
	"github.com/opspay/payroll-backend-go/internal/pkg/locking"
	"github.com/opspay/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/opspay/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/opspay/payroll-backend-go/internal/service/employee"
	paycycleService "github.com/opspay/payroll-backend-go/internal/service/paycycle"
	paymentService "github.com/opspay/payroll-backend-go/internal/service/payment"
	settingsService "github.com/opspay/payroll-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	cycleRepo := postgresql.NewPayCycleRepository(db)
	slipRepo := postgresql.NewPaySlipRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	locks := locking.NewKeyedMutex()

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, cfg.Payroll.WorkdayStart)
	cycleSvc := paycycleService.NewCycleService(txManager, cycleRepo, slipRepo, employeeRepo, attendanceRepo, settingsRepo, cfg.Payroll.AbsencePenalty, locks)
	ledgerSvc := paymentService.NewLedgerService(txManager, paymentRepo, slipRepo, cycleRepo, locks)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, cfg.Payroll.AbsencePenalty)

	scheduler := cron.NewScheduler()
	payrollJobs := cron.NewPayrollJobs(attendanceSvc, cfg.Payroll.AttendanceCutoff)
	payrollJobs.RegisterJobs(scheduler, cfg.Payroll.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	cycleHandler := appHTTP.NewPayCycleHandler(cycleSvc)
	paymentHandler := appHTTP.NewPaymentHandler(ledgerSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cycleHandler,
		paymentHandler,
		employeeHandler,
		attendanceHandler,
		settingsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
