// Package view renders the four screens from an application snapshot.
// It holds no state and makes no decisions beyond presentation.
package view

import (
	"fmt"

	"invite-quiz-service/internal/domain"
)

type Screen string

const (
	ScreenLanding    Screen = "landing"
	ScreenQuiz       Screen = "quiz"
	ScreenScoreBoard Screen = "scoreboard"
	ScreenAdmin      Screen = "admin"
)

// View is the rendered screen; exactly one of the screen fields is set.
type View struct {
	Screen     Screen      `json:"screen"`
	Landing    *Landing    `json:"landing,omitempty"`
	Quiz       *Quiz       `json:"quiz,omitempty"`
	ScoreBoard *ScoreBoard `json:"scoreboard,omitempty"`
	Admin      *Admin      `json:"admin,omitempty"`
}

type Landing struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	Error  string `json:"error,omitempty"`
}

// Quiz never carries the correct option.
type Quiz struct {
	Progress        string   `json:"progress"`
	QuestionNumber  int      `json:"questionNumber"`
	TotalQuestions  int      `json:"totalQuestions"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	TimeLeft        int      `json:"timeLeft"`
	TimerPercentage float64  `json:"timerPercentage"`
}

type ScoreBoard struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
	HighScore  bool    `json:"highScore"`
	Summary    string  `json:"summary"`
}

type Admin struct {
	Codes     []domain.InviteCode `json:"codes"`
	Stats     domain.InviteStats  `json:"stats"`
	Questions []domain.Question   `json:"questions"`
	Settings  domain.QuizSettings `json:"settings"`
}

// Render picks the screen: admin first, then the running or finished quiz, else landing.
func Render(st domain.AppState) View {
	switch {
	case st.IsAdmin:
		return View{Screen: ScreenAdmin, Admin: renderAdmin(st)}
	case st.Session.Authenticated && st.Session.Complete:
		return View{Screen: ScreenScoreBoard, ScoreBoard: RenderScore(st.Session.Score, st.TotalQuestions)}
	case st.Session.Authenticated && st.CurrentQuestion != nil:
		return View{Screen: ScreenQuiz, Quiz: renderQuiz(st)}
	default:
		return View{Screen: ScreenLanding, Landing: &Landing{
			Title:  "Quiz Challenge",
			Prompt: "Enter your invite code to begin",
			Error:  st.Message,
		}}
	}
}

func renderQuiz(st domain.AppState) *Quiz {
	q := st.CurrentQuestion
	number := st.Session.CurrentQuestionIndex + 1
	return &Quiz{
		Progress:        fmt.Sprintf("Question %d/%d", number, st.TotalQuestions),
		QuestionNumber:  number,
		TotalQuestions:  st.TotalQuestions,
		Question:        q.Question,
		Options:         append([]string(nil), q.Options...),
		TimeLeft:        st.Session.TimeLeft,
		TimerPercentage: float64(st.Session.TimeLeft*100) / domain.QuestionTimeLimit,
	}
}

// RenderScore builds the summary card for score out of total.
func RenderScore(score, total int) *ScoreBoard {
	var percentage float64
	if total > 0 {
		percentage = float64(score*100) / float64(total)
	}
	return &ScoreBoard{
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Message:    scoreMessage(percentage),
		HighScore:  percentage >= 70,
		Summary:    fmt.Sprintf("You scored %d out of %d", score, total),
	}
}

func scoreMessage(percentage float64) string {
	switch {
	case percentage == 100:
		return "Perfect Score!"
	case percentage >= 75:
		return "Great Job!"
	case percentage >= 50:
		return "Good Try!"
	default:
		return "Keep Practicing!"
	}
}

func renderAdmin(st domain.AppState) *Admin {
	codes := st.Codes
	if codes == nil {
		codes = []domain.InviteCode{}
	}
	questions := st.Questions
	if questions == nil {
		questions = []domain.Question{}
	}
	return &Admin{
		Codes:     codes,
		Stats:     st.Stats,
		Questions: questions,
		Settings:  st.Settings,
	}
}
