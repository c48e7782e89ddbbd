package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/lib/sl"
	"invite-quiz-service/internal/lib/validate"

	"github.com/google/uuid"
)

// QuizRepository loads and stores question banks (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// QuestionBank is the admin-editable ordered question list and the
// source the quiz session snapshots at unlock.
type QuestionBank struct {
	quizID string
	repo   QuizRepository
	newID  func() string
	log    *slog.Logger

	mu sync.Mutex
}

func NewQuestionBank(quizID string, repo QuizRepository, log *slog.Logger) *QuestionBank {
	return &QuestionBank{
		quizID: quizID,
		repo:   repo,
		newID:  uuid.NewString,
		log:    log.With(sl.Module("app.questions"), slog.String("quiz_id", quizID)),
	}
}

// Questions returns the bank in order. A bank that was never stored is empty.
func (b *QuestionBank) Questions(ctx context.Context) ([]domain.Question, error) {
	quiz, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return quiz.Questions, nil
}

// Add validates q, assigns a fresh ID and appends it.
func (b *QuestionBank) Add(ctx context.Context, q domain.Question) (domain.Question, error) {
	q, err := NormalizeQuestion(q)
	if err != nil {
		return domain.Question{}, err
	}
	q.ID = b.newID()

	b.mu.Lock()
	defer b.mu.Unlock()
	quiz, err := b.load(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	quiz.Questions = append(quiz.Questions, q)
	if err := b.save(ctx, quiz); err != nil {
		return domain.Question{}, err
	}
	b.log.Info("question added", slog.String("id", q.ID))
	return q, nil
}

// Edit fully replaces the question with q.ID.
func (b *QuestionBank) Edit(ctx context.Context, q domain.Question) (domain.Question, error) {
	id := q.ID
	q, err := NormalizeQuestion(q)
	if err != nil {
		return domain.Question{}, err
	}
	q.ID = id

	b.mu.Lock()
	defer b.mu.Unlock()
	quiz, err := b.load(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	idx := indexOfQuestion(quiz.Questions, id)
	if idx < 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	quiz.Questions[idx] = q
	if err := b.save(ctx, quiz); err != nil {
		return domain.Question{}, err
	}
	b.log.Info("question edited", slog.String("id", id))
	return q, nil
}

// Delete removes the question with id; unknown IDs are a no-op.
func (b *QuestionBank) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	quiz, err := b.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOfQuestion(quiz.Questions, id)
	if idx < 0 {
		return nil
	}
	quiz.Questions = append(quiz.Questions[:idx], quiz.Questions[idx+1:]...)
	if err := b.save(ctx, quiz); err != nil {
		return err
	}
	b.log.Info("question deleted", slog.String("id", id))
	return nil
}

func (b *QuestionBank) load(ctx context.Context) (domain.Quiz, error) {
	quiz, err := b.repo.GetQuiz(ctx, b.quizID)
	if errors.Is(err, domain.ErrQuizNotFound) {
		return domain.Quiz{ID: b.quizID, Questions: []domain.Question{}}, nil
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load question bank: %w", err)
	}
	// Callers mutate the slice; never alias a cached bank.
	questions := make([]domain.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	quiz.ID = b.quizID
	quiz.Questions = questions
	return quiz, nil
}

func (b *QuestionBank) save(ctx context.Context, quiz domain.Quiz) error {
	if err := b.repo.SaveQuiz(ctx, quiz); err != nil {
		b.log.Error("persist question bank", sl.Err(err))
		return fmt.Errorf("save question bank: %w", err)
	}
	return nil
}

// NormalizeQuestion trims text and options and checks the submission rules:
// non-empty question, exactly four non-empty options, correct in range.
func NormalizeQuestion(q domain.Question) (domain.Question, error) {
	out := domain.Question{
		ID:       q.ID,
		Question: strings.TrimSpace(q.Question),
		Options:  make([]string, len(q.Options)),
		Correct:  q.Correct,
	}
	for i, opt := range q.Options {
		out.Options[i] = strings.TrimSpace(opt)
	}
	if err := validate.Struct(out); err != nil {
		return domain.Question{}, fmt.Errorf("%w: %v", domain.ErrInvalidQuestion, err)
	}
	return out, nil
}

func indexOfQuestion(questions []domain.Question, id string) int {
	for i := range questions {
		if questions[i].ID == id {
			return i
		}
	}
	return -1
}
