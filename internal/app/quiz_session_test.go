package app

import (
	"testing"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/infra/memory"
)

func threeQuestions() []domain.Question {
	return memory.DefaultQuiz("default").Questions
}

func TestAllCorrectScoresThree(t *testing.T) {
	s := NewQuizSession()
	s.Unlock(threeQuestions())
	for _, q := range threeQuestions() {
		if !s.Answer(q.Correct) {
			t.Fatalf("expected correct answer for %s", q.ID)
		}
	}
	st := s.State()
	if st.Score != 3 || !st.Complete || s.Phase() != domain.PhaseComplete {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestFirstWrongScoresTwo(t *testing.T) {
	s := NewQuizSession()
	qs := threeQuestions()
	s.Unlock(qs)

	s.Answer((qs[0].Correct + 1) % domain.OptionCount)
	s.Answer(qs[1].Correct)
	s.Answer(qs[2].Correct)
	if st := s.State(); st.Score != 2 || !st.Complete {
		t.Fatalf("expected score 2 and complete, got %+v", st)
	}
}

func TestTimerExpiryMatchesWrongAnswer(t *testing.T) {
	qs := threeQuestions()

	timed := NewQuizSession()
	timed.Unlock(qs)
	for i := 0; i < domain.QuestionTimeLimit-1; i++ {
		if timed.Tick() {
			t.Fatalf("advanced early at tick %d", i+1)
		}
	}
	if !timed.Tick() {
		t.Fatalf("expected advance when timer reaches zero")
	}

	wrong := NewQuizSession()
	wrong.Unlock(qs)
	wrong.Answer((qs[0].Correct + 1) % domain.OptionCount)

	if timed.State() != wrong.State() {
		t.Fatalf("expiry %+v differs from wrong answer %+v", timed.State(), wrong.State())
	}
	if st := timed.State(); st.CurrentQuestionIndex != 1 || st.TimeLeft != domain.QuestionTimeLimit || st.Score != 0 {
		t.Fatalf("unexpected state after expiry %+v", st)
	}
}

func TestExpiryOnLastQuestionCompletesAndStops(t *testing.T) {
	s := NewQuizSession()
	s.Unlock(threeQuestions()[:1])
	for i := 0; i < domain.QuestionTimeLimit; i++ {
		s.Tick()
	}
	st := s.State()
	if !st.Complete || st.TimeLeft != 0 {
		t.Fatalf("expected completion at zero, got %+v", st)
	}
	if s.Tick() {
		t.Fatalf("tick after completion must not advance")
	}
	if s.Answer(0) {
		t.Fatalf("answer after completion must be ignored")
	}
	if after := s.State(); after != st {
		t.Fatalf("state changed after completion: %+v", after)
	}
}

func TestLockedSessionIgnoresActions(t *testing.T) {
	s := NewQuizSession()
	s.Answer(0)
	s.Tick()
	if st := s.State(); st.Score != 0 || st.TimeLeft != domain.QuestionTimeLimit || st.Phase != domain.PhaseLocked {
		t.Fatalf("locked session mutated: %+v", st)
	}
	if s.CurrentQuestion() != nil {
		t.Fatalf("locked session exposes a question")
	}
	s.Unlock(nil)
	if s.Phase() != domain.PhaseLocked {
		t.Fatalf("empty bank must not unlock")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := NewQuizSession()
	qs := threeQuestions()
	s.Unlock(qs)
	s.Answer(qs[0].Correct)
	s.Tick()

	s.Reset()
	want := domain.SessionState{
		CurrentQuestionIndex: 0,
		Score:                0,
		TimeLeft:             15,
		Complete:             false,
		Authenticated:        false,
		Phase:                domain.PhaseLocked,
	}
	if got := s.State(); got != want {
		t.Fatalf("reset state %+v, want %+v", got, want)
	}
}

func TestUnlockSnapshotsQuestions(t *testing.T) {
	qs := threeQuestions()
	s := NewQuizSession()
	s.Unlock(qs)
	qs[0].Correct = 0

	if got := s.CurrentQuestion(); got == nil || got.Correct != 1 {
		t.Fatalf("expected snapshot unaffected by later edits, got %+v", got)
	}
}
