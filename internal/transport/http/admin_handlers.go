package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"invite-quiz-service/internal/infra/xlsx"
	"invite-quiz-service/internal/lib/api/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func ListCodes(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := ctrl.Codes()
		if err != nil {
			fail(w, r, requestLog(log, r, "http.codes.list"), err)
			return
		}
		render.JSON(w, r, response.Ok(codes))
	}
}

func GenerateCodes(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.codes.generate")

		var req generateRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		created, err := ctrl.GenerateCodes(r.Context(), req.Prefix, req.Count)
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		logger.Info("codes generated", slog.Int("count", len(created)))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(created))
	}
}

func DeleteCode(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteCode(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, r, requestLog(log, r, "http.codes.delete"), err)
			return
		}
		render.JSON(w, r, response.Ok(nil))
	}
}

func CodeStats(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ctrl.InviteStats()
		if err != nil {
			fail(w, r, requestLog(log, r, "http.codes.stats"), err)
			return
		}
		render.JSON(w, r, response.Ok(stats))
	}
}

// CodesText serves the newline-joined code list as plain text.
func CodesText(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := ctrl.CodesText()
		if err != nil {
			fail(w, r, requestLog(log, r, "http.codes.text"), err)
			return
		}
		render.PlainText(w, r, text)
	}
}

// ExportCodes streams the collection as an xlsx attachment.
func ExportCodes(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.codes.export")

		rows, err := ctrl.ExportRows()
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		var buf bytes.Buffer
		if err := xlsx.WriteInviteCodes(&buf, rows); err != nil {
			fail(w, r, logger, err)
			return
		}
		w.Header().Set("Content-Type", xlsx.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+xlsx.FileName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = w.Write(buf.Bytes())
	}
}

func ListQuestions(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := ctrl.Questions(r.Context())
		if err != nil {
			fail(w, r, requestLog(log, r, "http.questions.list"), err)
			return
		}
		render.JSON(w, r, response.Ok(questions))
	}
}

func AddQuestion(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.questions.add")

		var req questionRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		added, err := ctrl.AddQuestion(r.Context(), req.toDomain(""))
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(added))
	}
}

func EditQuestion(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.questions.edit")

		var req questionRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		edited, err := ctrl.EditQuestion(r.Context(), req.toDomain(chi.URLParam(r, "id")))
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		render.JSON(w, r, response.Ok(edited))
	}
}

func DeleteQuestion(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteQuestion(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, r, requestLog(log, r, "http.questions.delete"), err)
			return
		}
		render.JSON(w, r, response.Ok(nil))
	}
}

func GetSettings(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := ctrl.Settings()
		if err != nil {
			fail(w, r, requestLog(log, r, "http.settings.get"), err)
			return
		}
		render.JSON(w, r, response.Ok(settings))
	}
}

func UpdateSettings(log *slog.Logger, ctrl Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r, "http.settings.update")

		var req settingsRequest
		if err := render.Bind(r, &req); err != nil {
			badRequest(w, r, logger, err)
			return
		}
		if err := ctrl.UpdateSettings(r.Context(), req.QuizSettings); err != nil {
			fail(w, r, logger, err)
			return
		}
		render.JSON(w, r, response.Ok(req.QuizSettings))
	}
}
