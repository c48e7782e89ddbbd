package app

import "invite-quiz-service/internal/domain"

// QuizSession is the Locked -> InProgress -> Complete state machine for one run.
// Every method is total: actions that do not apply to the current phase are no-ops.
// QuizSession is not safe for concurrent use; the Controller serialises access.
type QuizSession struct {
	questions     []domain.Question
	index         int
	score         int
	timeLeft      int
	complete      bool
	authenticated bool
}

func NewQuizSession() *QuizSession {
	s := &QuizSession{}
	s.Reset()
	return s
}

// Unlock starts a run over a snapshot of questions. It does nothing unless Locked.
func (s *QuizSession) Unlock(questions []domain.Question) {
	if s.authenticated || len(questions) == 0 {
		return
	}
	s.questions = make([]domain.Question, len(questions))
	copy(s.questions, questions)
	s.index = 0
	s.score = 0
	s.timeLeft = domain.QuestionTimeLimit
	s.complete = false
	s.authenticated = true
}

// Answer scores selected against the current question and advances.
// It reports whether the answer was correct.
func (s *QuizSession) Answer(selected int) bool {
	if s.Phase() != domain.PhaseInProgress {
		return false
	}
	correct := selected == s.questions[s.index].Correct
	if correct {
		s.score++
	}
	s.advance()
	return correct
}

// Tick consumes one second. Reaching zero advances like an unscored answer.
// It reports whether the question changed or the run completed.
func (s *QuizSession) Tick() bool {
	if s.Phase() != domain.PhaseInProgress {
		return false
	}
	if s.timeLeft > 0 {
		s.timeLeft--
	}
	if s.timeLeft > 0 {
		return false
	}
	s.advance()
	return true
}

func (s *QuizSession) advance() {
	if s.index < len(s.questions)-1 {
		s.index++
		s.timeLeft = domain.QuestionTimeLimit
		return
	}
	s.complete = true
}

// Reset returns to Locked with zero score and a full timer.
func (s *QuizSession) Reset() {
	s.questions = nil
	s.index = 0
	s.score = 0
	s.timeLeft = domain.QuestionTimeLimit
	s.complete = false
	s.authenticated = false
}

func (s *QuizSession) Phase() domain.Phase {
	switch {
	case !s.authenticated:
		return domain.PhaseLocked
	case s.complete:
		return domain.PhaseComplete
	default:
		return domain.PhaseInProgress
	}
}

// CurrentQuestion is nil unless a run is in progress.
func (s *QuizSession) CurrentQuestion() *domain.Question {
	if s.Phase() != domain.PhaseInProgress {
		return nil
	}
	q := s.questions[s.index]
	return &q
}

func (s *QuizSession) TotalQuestions() int {
	return len(s.questions)
}

func (s *QuizSession) State() domain.SessionState {
	return domain.SessionState{
		CurrentQuestionIndex: s.index,
		Score:                s.score,
		TimeLeft:             s.timeLeft,
		Complete:             s.complete,
		Authenticated:        s.authenticated,
		Phase:                s.Phase(),
	}
}
