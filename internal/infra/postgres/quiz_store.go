package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"invite-quiz-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizStore keeps each question bank as one JSONB row in question_banks.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load question bank: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("%w: question bank %s: %v", domain.ErrMalformedData, quizID, err)
	}
	quiz.ID = quizID
	return quiz, nil
}

func (s *QuizStore) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if quiz.Questions == nil {
		quiz.Questions = []domain.Question{}
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal question bank: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO question_banks (id, data, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		quiz.ID, string(data))
	if err != nil {
		return fmt.Errorf("save question bank: %w", err)
	}
	return nil
}

// SeedQuiz stores quiz only when no bank with its ID exists yet.
func (s *QuizStore) SeedQuiz(ctx context.Context, quiz domain.Quiz) (bool, error) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return false, fmt.Errorf("marshal question bank: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO question_banks (id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO NOTHING`,
		quiz.ID, string(data))
	if err != nil {
		return false, fmt.Errorf("seed question bank: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
