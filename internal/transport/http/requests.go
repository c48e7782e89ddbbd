package http

import (
	"net/http"
	"strings"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/lib/validate"
)

type inviteRequest struct {
	Code string `json:"code"`
}

func (req *inviteRequest) Bind(*http.Request) error {
	return nil
}

type answerRequest struct {
	Option *int `json:"option" validate:"required,min=0,max=3"`
}

func (req *answerRequest) Bind(*http.Request) error {
	return validate.Struct(req)
}

type loginRequest struct {
	Password string `json:"password"`
}

func (req *loginRequest) Bind(*http.Request) error {
	return nil
}

type generateRequest struct {
	Prefix string `json:"prefix" validate:"max=64"`
	Count  int    `json:"count"`
}

func (req *generateRequest) Bind(*http.Request) error {
	req.Prefix = strings.TrimSpace(req.Prefix)
	return validate.Struct(req)
}

// questionRequest is validated by the question bank, which owns the rules.
type questionRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

func (req *questionRequest) Bind(*http.Request) error {
	return nil
}

func (req *questionRequest) toDomain(id string) domain.Question {
	return domain.Question{
		ID:       id,
		Question: req.Question,
		Options:  req.Options,
		Correct:  req.Correct,
	}
}

type settingsRequest struct {
	domain.QuizSettings
}

func (req *settingsRequest) Bind(*http.Request) error {
	return nil
}
