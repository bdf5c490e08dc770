package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dkemper/driftboard-api/internal/api"
	apiMiddleware "github.com/dkemper/driftboard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	boardHandler := api.NewBoardHandler(app.boardService)
	taskHandler := api.NewTaskHandler(app.taskService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Board endpoints
		r.Post("/boards", boardHandler.CreateBoard)
		r.Get("/boards/{boardID}", boardHandler.GetBoard)

		// Task endpoints
		r.Post("/boards/{boardID}/tasks", taskHandler.CreateTask)
		r.Get("/boards/{boardID}/tasks/stale", taskHandler.GetStaleTasks)
		r.Post("/tasks/{taskID}/stale", taskHandler.MarkStale)
		r.Post("/tasks/{taskID}/move", taskHandler.MoveTask)
		r.Post("/tasks/{taskID}/complete", taskHandler.CompleteTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
