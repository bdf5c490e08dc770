package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dkemper/driftboard-api/internal/config"
	"github.com/dkemper/driftboard-api/internal/events"
	"github.com/dkemper/driftboard-api/internal/platform/postgres"
	"github.com/dkemper/driftboard-api/internal/service"
	"github.com/dkemper/driftboard-api/internal/service/auth"
	"github.com/dkemper/driftboard-api/internal/store"
)

// activityLogHandler is an event handler that records every published task
// event in the application log. It is the default subscriber; richer
// subscribers (notifications, projections) register the same way.
type activityLogHandler struct {
	logger *slog.Logger
}

// HandleEvent logs the event with its type and aggregate for later triage.
func (h *activityLogHandler) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	h.logger.Info("task activity",
		"event_id", event.ID,
		"event_type", event.Type,
		"task_id", event.AggregateID,
		"occurred_at", event.CreatedAt)
	return nil
}

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore  store.TaskStore
	boardStore store.BoardStore

	// Event infrastructure
	eventBus *events.InMemoryEventBus

	// Services
	jwtService   auth.JWTService
	taskService  service.TaskService
	boardService service.BoardService
}

// newApplication wires up all application dependencies from the given
// configuration and an established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.boardStore = postgres.NewPostgresBoardStore(db, logger)

	// Event bus with the default activity-log subscriber
	app.eventBus = events.NewInMemoryEventBus(logger)
	app.eventBus.RegisterHandler(&activityLogHandler{
		logger: logger.With("component", "activity_log"),
	})

	// Services
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	taskService, err := service.NewTaskService(app.taskStore, app.eventBus, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	boardRepo := service.NewBoardRepositoryAdapter(app.boardStore, db)
	boardService, err := service.NewBoardService(boardRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}
	app.boardService = boardService

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
