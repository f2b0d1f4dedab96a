// Package app wires configuration, services and handlers together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/handlers"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/analysis"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/llm"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/pdf"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/session"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/validation"
)

// App holds all application services and handlers.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Store     *session.Store
	Extractor *pdf.Extractor
	Writer    *pdf.Writer
	Validator *validation.Validator
	Provider  interfaces.LLMProvider
	Analysis  *analysis.Service

	APIHandler      *handlers.APIHandler
	DocumentHandler *handlers.DocumentHandler
	AnalysisHandler *handlers.AnalysisHandler
	QuestionHandler *handlers.QuestionHandler
	PageHandler     *handlers.PageHandler

	scheduler *cron.Cron
}

// New creates the application, wiring services bottom-up. A missing API key
// is not fatal here: upload and validation still work, and the analysis
// endpoints report the configuration problem per request.
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	extractor := pdf.NewExtractor(logger)
	writer := pdf.NewWriter(&config.Export, logger)
	validator := validation.NewValidator(&config.Validation, logger)
	store := session.NewStore(logger)

	var provider interfaces.LLMProvider
	if config.HasAPIKey(config.LLM.DefaultProvider) {
		p, err := llm.NewProvider(ctx, config, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM provider: %w", err)
		}
		provider = p
	} else {
		logger.Warn().
			Str("provider", string(config.LLM.DefaultProvider)).
			Msg("No API key configured; analysis endpoints will be unavailable")
	}

	analysisService, err := analysis.NewService(config, provider, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    config,
		Logger:    logger,
		Store:     store,
		Extractor: extractor,
		Writer:    writer,
		Validator: validator,
		Provider:  provider,
		Analysis:  analysisService,

		APIHandler:      handlers.NewAPIHandler(config, logger),
		DocumentHandler: handlers.NewDocumentHandler(extractor, validator, store, logger),
		AnalysisHandler: handlers.NewAnalysisHandler(config, analysisService, writer, store, logger),
		QuestionHandler: handlers.NewQuestionHandler(analysisService, store, logger),
		PageHandler:     handlers.NewPageHandler(logger),
	}

	if err := a.startScheduler(); err != nil {
		return nil, err
	}

	return a, nil
}

// startScheduler runs the periodic sweep of orphaned PDF scratch files.
func (a *App) startScheduler() error {
	schedule := a.Config.Maintenance.TempSweepSchedule
	if schedule == "" {
		return nil
	}

	maxAge, err := time.ParseDuration(a.Config.Maintenance.TempMaxAge)
	if err != nil {
		return fmt.Errorf("invalid maintenance.temp_max_age: %w", err)
	}

	// Schedule uses the six-field format with a seconds column
	a.scheduler = cron.New(cron.WithSeconds())
	_, err = a.scheduler.AddFunc(schedule, func() {
		if _, err := a.Extractor.SweepTemp(maxAge); err != nil {
			a.Logger.Warn().Err(err).Msg("Temp file sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid maintenance.temp_sweep_schedule: %w", err)
	}

	a.scheduler.Start()
	a.Logger.Debug().
		Str("schedule", schedule).
		Str("max_age", maxAge.String()).
		Msg("Temp file sweep scheduled")

	return nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Provider != nil {
		if err := a.Provider.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Provider close failed")
		}
	}
	return nil
}
