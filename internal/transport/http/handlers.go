package http

import (
	"errors"
	"log/slog"
	"net/http"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/lib/api/response"
	"invite-quiz-service/internal/lib/sl"
	"invite-quiz-service/internal/view"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func CurrentView(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(publicView(ctrl.State(r.Context()))))
	}
}

// SubmitInvite redeems an invite code and unlocks the quiz.
func SubmitInvite(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.invite")

		var req inviteRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		ok, err := ctrl.SubmitInviteCode(r.Context(), req.Code)
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		state := ctrl.State(r.Context())
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(state.Message))
			return
		}
		render.JSON(w, r, response.Ok(publicView(state)))
	}
}

type answerResult struct {
	Correct bool      `json:"correct"`
	View    view.View `json:"view"`
}

func Answer(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.answer")

		var req answerRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		correct := ctrl.Answer(r.Context(), *req.Option)
		render.JSON(w, r, response.Ok(answerResult{
			Correct: correct,
			View:    publicView(ctrl.State(r.Context())),
		}))
	}
}

func Reset(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.Reset(r.Context())
		render.JSON(w, r, response.Ok(publicView(ctrl.State(r.Context()))))
	}
}

func AdminLogin(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.admin.login")

		var req loginRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		if !ctrl.AdminLogin(r.Context(), req.Password) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error(ctrl.State(r.Context()).Message))
			return
		}
		render.JSON(w, r, response.Ok(view.Render(ctrl.State(r.Context()))))
	}
}

func AdminLogout(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.AdminLogout(r.Context())
		render.JSON(w, r, response.Ok(publicView(ctrl.State(r.Context()))))
	}
}

// publicView renders state for the shared view surfaces. The admin flag is
// process-wide, so invite codes are served only by the admin code routes.
func publicView(st domain.AppState) view.View {
	st.Codes = nil
	return view.Render(st)
}

func requestLog(log *slog.Logger, r *http.Request, module string) *slog.Logger {
	return log.With(
		sl.Module(module),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func badRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.Debug("bind request", sl.Err(err))
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(err.Error()))
}

// fail maps domain errors to statuses; anything unknown is logged and hidden.
func fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", sl.Err(err))
		message = "Internal error"
	}
	render.Status(r, status)
	render.JSON(w, r, response.Error(message))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAdminRequired),
		errors.Is(err, domain.ErrInvalidAdminCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidQuestion),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrInvalidInviteCode),
		errors.Is(err, domain.ErrNoQuestions):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
