package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/infra/memory"
	"invite-quiz-service/internal/lib/logger"
)

func newBank(seed ...domain.Quiz) *QuestionBank {
	repo := memory.NewQuizRepository(memory.NewStaticQuizStore(seed...), time.Minute)
	return NewQuestionBank("default", repo, logger.Discard())
}

func TestQuestionBankCRUD(t *testing.T) {
	ctx := context.Background()
	bank := newBank()

	qs, err := bank.Questions(ctx)
	if err != nil || len(qs) != 0 {
		t.Fatalf("expected empty bank, got %v %v", qs, err)
	}

	added, err := bank.Add(ctx, domain.Question{
		Question: "  Largest ocean?  ",
		Options:  []string{"Atlantic", " Pacific ", "Indian", "Arctic"},
		Correct:  1,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" || added.Question != "Largest ocean?" || added.Options[1] != "Pacific" {
		t.Fatalf("expected normalized question with id, got %+v", added)
	}

	added.Question = "Which ocean is largest?"
	added.Correct = 1
	if _, err := bank.Edit(ctx, added); err != nil {
		t.Fatalf("edit: %v", err)
	}
	qs, _ = bank.Questions(ctx)
	if len(qs) != 1 || qs[0].Question != "Which ocean is largest?" {
		t.Fatalf("unexpected bank after edit %+v", qs)
	}

	if err := bank.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := bank.Delete(ctx, added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if qs, _ = bank.Questions(ctx); len(qs) != 0 {
		t.Fatalf("expected empty bank after delete, got %+v", qs)
	}
}

func TestQuestionBankDefaultsCorrectToFirstOption(t *testing.T) {
	added, err := newBank().Add(context.Background(), domain.Question{
		Question: "Pick one",
		Options:  []string{"a", "b", "c", "d"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Correct != 0 {
		t.Fatalf("expected correct=0, got %d", added.Correct)
	}
}

func TestQuestionBankValidation(t *testing.T) {
	bank := newBank()
	cases := []domain.Question{
		{Question: "   ", Options: []string{"a", "b", "c", "d"}},
		{Question: "q", Options: []string{"a", "b", "  ", "d"}},
		{Question: "q", Options: []string{"a", "b", "c"}},
		{Question: "q", Options: []string{"a", "b", "c", "d"}, Correct: 4},
		{Question: "q", Options: []string{"a", "b", "c", "d"}, Correct: -1},
	}
	for _, q := range cases {
		if _, err := bank.Add(context.Background(), q); !errors.Is(err, domain.ErrInvalidQuestion) {
			t.Fatalf("expected invalid question for %+v, got %v", q, err)
		}
	}
}

func TestQuestionBankEditUnknown(t *testing.T) {
	_, err := newBank(memory.DefaultQuiz("default")).Edit(context.Background(), domain.Question{
		ID:       "nope",
		Question: "q",
		Options:  []string{"a", "b", "c", "d"},
	})
	if !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
