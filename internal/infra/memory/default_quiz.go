package memory

import "invite-quiz-service/internal/domain"

// DefaultQuiz is the built-in bank used when nothing has been stored yet.
func DefaultQuiz(quizID string) domain.Quiz {
	return domain.Quiz{
		ID: quizID,
		Questions: []domain.Question{
			{
				ID:       "1",
				Question: "What is 2 + 2?",
				Options:  []string{"3", "4", "5", "6"},
				Correct:  1,
			},
			{
				ID:       "2",
				Question: "Which planet is closest to the Sun?",
				Options:  []string{"Venus", "Mars", "Mercury", "Earth"},
				Correct:  2,
			},
			{
				ID:       "3",
				Question: "What is the capital of France?",
				Options:  []string{"London", "Berlin", "Madrid", "Paris"},
				Correct:  3,
			},
		},
	}
}
