package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"invite-quiz-service/internal/app"
	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/infra/memory"
	"invite-quiz-service/internal/lib/logger"
)

// idleScheduler never ticks, so the countdown stays at its full value.
type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }

func newTestController(t *testing.T, codes ...domain.InviteCode) *app.Controller {
	t.Helper()
	log := logger.Discard()
	invites, err := app.NewInviteService(context.Background(), memory.NewInviteStore(codes...), app.NewCodeGenerator(), log)
	if err != nil {
		t.Fatalf("invite service: %v", err)
	}
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizStore(memory.DefaultQuiz("default")), time.Minute)
	bank := app.NewQuestionBank("default", quizzes, log)
	ctrl := app.NewController(invites, bank, app.NewAdminSession("admin123"), log, app.WithScheduler(idleScheduler{}))
	t.Cleanup(ctrl.Close)
	return ctrl
}

func newTestServer(t *testing.T, codes ...domain.InviteCode) (*httptest.Server, *app.Controller) {
	t.Helper()
	ctrl := newTestController(t, codes...)
	server := httptest.NewServer(NewRouter(logger.Discard(), ctrl))
	t.Cleanup(server.Close)
	return server, ctrl
}
