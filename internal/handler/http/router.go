package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/opspay/payroll-backend-go/internal/handler/http/middleware"
	"github.com/opspay/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	cycleHandler PayCycleHandler,
	paymentHandler PaymentHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "opspay-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Deactivate)
					r.Get("/attendance", attendanceHandler.ListByEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Record)
				r.Post("/sweep", attendanceHandler.Sweep)
			})

			r.Route("/cycles", func(r chi.Router) {
				r.Get("/", cycleHandler.List)
				r.Post("/", cycleHandler.Create)
				r.Route("/{cycleID}", func(r chi.Router) {
					r.Get("/", cycleHandler.Get)
					r.Post("/generate", cycleHandler.GenerateBulletins)
					r.Post("/approve", cycleHandler.Approve)
					r.Post("/close", cycleHandler.Close)
					r.Get("/payslips", cycleHandler.ListSlips)
					r.Get("/summary", cycleHandler.Summary)
				})
			})

			r.Route("/payslips/{slipID}", func(r chi.Router) {
				r.Get("/", cycleHandler.GetSlip)
				r.Get("/payments", paymentHandler.List)
				r.Post("/payments", paymentHandler.Record)
			})

			r.Delete("/payments/{paymentID}", paymentHandler.Void)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Put("/", settingsHandler.Update)
			})
		})
	})
	return r
}
