package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lifespring/clinic/internal/config"
	"github.com/lifespring/clinic/internal/domain/agreement"
	"github.com/lifespring/clinic/internal/domain/billing"
	"github.com/lifespring/clinic/internal/domain/catalog"
	"github.com/lifespring/clinic/internal/domain/identity"
	"github.com/lifespring/clinic/internal/domain/medicalrecord"
	"github.com/lifespring/clinic/internal/domain/scheduling"
	"github.com/lifespring/clinic/internal/domain/servicerequest"
	"github.com/lifespring/clinic/internal/domain/treatment"
	"github.com/lifespring/clinic/internal/platform/auth"
	"github.com/lifespring/clinic/internal/platform/db"
	"github.com/lifespring/clinic/internal/platform/middleware"
)

func main() {
	root := &cobra.Command{
		Use:   "clinic-server",
		Short: "Fertility clinic operations API",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			cancel()
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true

			e.Use(middleware.Recovery(logger))
			e.Use(middleware.RequestID())
			e.Use(middleware.Logger(logger))
			e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
				AllowOrigins: cfg.CORSOrigins,
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			}))
			e.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimitRPS,
				BurstSize:         cfg.RateLimitBurst,
			}))

			e.GET("/health", func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			})
			e.GET("/health/db", db.HealthHandler(pool))

			api := e.Group("/api/v1")
			if cfg.IsDev() && cfg.AuthIssuer == "" {
				logger.Warn().Msg("running with dev auth, every request gets admin access")
				api.Use(auth.DevAuthMiddleware())
			} else {
				api.Use(auth.JWTMiddleware(auth.JWTConfig{
					Issuer:   cfg.AuthIssuer,
					Audience: cfg.AuthAudience,
					JWKSURL:  cfg.AuthJWKSURL,
				}))
			}
			api.Use(middleware.Audit(logger))

			// Repositories
			patientRepo := identity.NewPatientRepoPG(pool)
			doctorRepo := identity.NewDoctorRepoPG(pool)
			appointmentRepo := scheduling.NewRepoPG(pool)
			cycleRepo := treatment.NewCycleRepoPG(pool)
			agreementRepo := agreement.NewRepoPG(pool)
			recordRepo := medicalrecord.NewRecordRepoPG(pool)
			prescriptionRepo := medicalrecord.NewPrescriptionRepoPG(pool)
			requestRepo := servicerequest.NewRepoPG(pool)
			medicineRepo := catalog.NewMedicineRepoPG(pool)
			clinicServiceRepo := catalog.NewServiceRepoPG(pool)
			transactionRepo := billing.NewTransactionRepoPG(pool)
			cryoRepo := billing.NewCryoContractRepoPG(pool)

			// Services
			identitySvc := identity.NewService(patientRepo, doctorRepo)
			schedulingSvc := scheduling.NewService(appointmentRepo)
			agreementSvc := agreement.NewService(agreementRepo)
			treatmentSvc := treatment.NewService(cycleRepo, agreementSvc)
			requestSvc := servicerequest.NewService(requestRepo)
			inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
				return db.InTx(ctx, pool, fn)
			}
			recordSvc := medicalrecord.NewService(recordRepo, prescriptionRepo, requestSvc, inTx)
			catalogSvc := catalog.NewService(medicineRepo, clinicServiceRepo)
			billingSvc := billing.NewService(transactionRepo, cryoRepo, logger)

			// Handlers
			identity.NewHandler(identitySvc).RegisterRoutes(api)
			scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)
			treatment.NewHandler(treatmentSvc).RegisterRoutes(api)
			agreement.NewHandler(agreementSvc).RegisterRoutes(api)
			medicalrecord.NewHandler(recordSvc).RegisterRoutes(api)
			servicerequest.NewHandler(requestSvc).RegisterRoutes(api)
			catalog.NewHandler(catalogSvc).RegisterRoutes(api)
			billingHandler := billing.NewHandler(billingSvc, billing.ClinicInfo{
				Name:    cfg.ClinicName,
				Address: cfg.ClinicAddress,
				TaxID:   cfg.ClinicTaxID,
			}, cfg.PaymentWebhookSecret)
			billingHandler.RegisterRoutes(api)
			billingHandler.RegisterWebhook(e)

			var reminder *scheduling.Reminder
			if cfg.RemindersEnabled {
				reminder = scheduling.NewReminder(
					appointmentRepo,
					&scheduling.LogNotifier{Log: logger},
					time.Duration(cfg.ReminderLeadMinutes)*time.Minute,
					logger,
				)
				if err := reminder.Start(); err != nil {
					return fmt.Errorf("start reminders: %w", err)
				}
				defer reminder.Stop()
			}

			go func() {
				addr := ":" + cfg.Port
				logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server stopped")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit
			logger.Info().Msg("shutting down")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "directory holding migration SQL files")

	withMigrator := func(fn func(ctx context.Context, m *db.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()
			return fn(ctx, db.NewMigrator(pool, dir))
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator) error {
			n, err := m.Up(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("applied %d migration(s)\n", n)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied " + s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%03d %-40s %s\n", s.Version, s.Name, state)
			}
			return nil
		}),
	})

	return cmd
}
