package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"clinic-history/internal/adapters/auth/centrauth"
	"clinic-history/internal/adapters/sources/appointments"
	"clinic-history/internal/adapters/sources/clinicalnotes"
	"clinic-history/internal/adapters/sources/diagnostics"
	"clinic-history/internal/adapters/sources/invoices"
	"clinic-history/internal/adapters/sources/payments"
	"clinic-history/internal/adapters/telemetry/opshub"
	"clinic-history/internal/config"
	"clinic-history/internal/domain/timeline"
	"clinic-history/internal/middleware"
	"clinic-history/internal/platform/httpclient"
	"clinic-history/internal/platform/logger"
	"clinic-history/internal/ports/auth"
	"clinic-history/internal/ports/telemetry"
	"clinic-history/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env local para dev; en deploy las vars vienen del entorno.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "clinic-history",
	})

	tokens := middleware.RequestToken(cfg.Auth.ServiceToken)

	sources, err := buildSources(cfg, tokens)
	if err != nil {
		log.Fatalf("sources: %v", err)
	}

	var reporter telemetry.Reporter = telemetry.Nop{}
	if hub := opshub.NewClient(opshub.Config{
		BaseURL: cfg.OpsHub.BaseURL,
		APIKey:  cfg.OpsHub.APIKey,
	}); hub.IsConfigured() {
		reporter = hub
	}

	svc := timeline.NewService(sources, lg, reporter)

	var verifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	if iam := centrauth.NewClient(centrauth.Config{
		BaseURL: cfg.Auth.BaseURL,
		APIKey:  cfg.Auth.APIKey,
	}); iam.IsConfigured() {
		verifier = centrauth.NewVerifier(iam)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Timeline:     svc,
		Log:          lg,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": cfg.Server.Address()})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// buildSources instancia los cinco adapters, cada uno con su propio
// httpclient apuntando a su upstream.
func buildSources(cfg config.Config, tokens auth.TokenSource) ([]timeline.Source, error) {
	newClient := func(sc config.SourceConfig) (*httpclient.Client, error) {
		return httpclient.NewWithBaseURL(sc.BaseURL, sc.Timeout())
	}

	apptsClient, err := newClient(cfg.Sources.Appointments)
	if err != nil {
		return nil, err
	}
	paymentsClient, err := newClient(cfg.Sources.Payments)
	if err != nil {
		return nil, err
	}
	invoicesClient, err := newClient(cfg.Sources.Invoices)
	if err != nil {
		return nil, err
	}
	diagClient, err := newClient(cfg.Sources.Diagnostics.SourceConfig)
	if err != nil {
		return nil, err
	}
	notesClient, err := newClient(cfg.Sources.ClinicalNotes.SourceConfig)
	if err != nil {
		return nil, err
	}

	bulk := cfg.Sources.FallbackBulkLimit

	return []timeline.Source{
		appointments.New(apptsClient, tokens),
		payments.New(paymentsClient, tokens, bulk),
		invoices.New(invoicesClient, tokens, bulk),
		diagnostics.New(diagClient, tokens, bulk, cfg.Sources.Diagnostics.CompletionStatuses),
		clinicalnotes.New(notesClient, tokens, cfg.Sources.ClinicalNotes.PageSize),
	}, nil
}
