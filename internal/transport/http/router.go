package http

import (
	"context"
	"log/slog"
	"net/http"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Controller is the application surface the HTTP layer drives.
type Controller interface {
	State(ctx context.Context) domain.AppState
	Subscribe(ctx context.Context) (<-chan domain.AppState, func())

	SubmitInviteCode(ctx context.Context, code string) (bool, error)
	Answer(ctx context.Context, selected int) bool
	Reset(ctx context.Context)

	AdminLogin(ctx context.Context, password string) bool
	AdminLogout(ctx context.Context)
	IsAdmin() bool

	GenerateCodes(ctx context.Context, prefix string, count int) ([]domain.InviteCode, error)
	DeleteCode(ctx context.Context, id string) error
	Codes() ([]domain.InviteCode, error)
	InviteStats() (domain.InviteStats, error)
	CodesText() (string, error)
	ExportRows() ([]domain.ExportRow, error)

	Questions(ctx context.Context) ([]domain.Question, error)
	AddQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	EditQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	DeleteQuestion(ctx context.Context, id string) error

	Settings() (domain.QuizSettings, error)
	UpdateSettings(ctx context.Context, settings domain.QuizSettings) error
}

// NewRouter wires the JSON API and the websocket view stream.
func NewRouter(log *slog.Logger, ctrl Controller) http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(middleware.Recoverer)
	router.Use(RequestLogger(log))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Requested resource not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("Method not allowed"))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/ws", NewWSHandler(log, ctrl).ServeWS)

	router.Route("/api", func(api chi.Router) {
		api.Use(render.SetContentType(render.ContentTypeJSON))

		api.Get("/view", CurrentView(log, ctrl))
		api.Post("/invite", SubmitInvite(log, ctrl))
		api.Post("/quiz/answer", Answer(log, ctrl))
		api.Post("/quiz/reset", Reset(log, ctrl))
		api.Post("/admin/login", AdminLogin(log, ctrl))
		api.Post("/admin/logout", AdminLogout(log, ctrl))

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(AdminOnly(log, ctrl))

			admin.Get("/codes", ListCodes(log, ctrl))
			admin.Post("/codes", GenerateCodes(log, ctrl))
			admin.Get("/codes/stats", CodeStats(log, ctrl))
			admin.Get("/codes/text", CodesText(log, ctrl))
			admin.Get("/codes/export", ExportCodes(log, ctrl))
			admin.Delete("/codes/{id}", DeleteCode(log, ctrl))

			admin.Get("/questions", ListQuestions(log, ctrl))
			admin.Post("/questions", AddQuestion(log, ctrl))
			admin.Put("/questions/{id}", EditQuestion(log, ctrl))
			admin.Delete("/questions/{id}", DeleteQuestion(log, ctrl))

			admin.Get("/settings", GetSettings(log, ctrl))
			admin.Put("/settings", UpdateSettings(log, ctrl))
		})
	})
	return router
}
