package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (*usecase.GameView, error)
	GetGame(ctx context.Context, id string) (*usecase.GameView, error)
	MakeMove(ctx context.Context, id string, cell int) (*usecase.GameView, error)
	JumpTo(ctx context.Context, id string, index int) (*usecase.GameView, error)
	DeleteGame(ctx context.Context, id string) error
}

type handler struct {
	logger *slog.Logger
	games  gameUseCase
}

// New builds the HTTP server; the caller runs ListenAndServe and Shutdown.
func New(logger *slog.Logger, port string, games gameUseCase) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, games),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

func NewRouter(logger *slog.Logger, games gameUseCase) http.Handler {
	h := &handler{
		logger: logger.With("component", "rest"),
		games:  games,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/ping", h.ping)
	r.Get("/products", h.listProducts)

	r.Post("/games", h.createGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.getGame)
		r.Delete("/", h.deleteGame)
		r.Post("/moves", h.makeMove)
		r.Post("/jump", h.jumpTo)
	})

	return r
}

func (that *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
