package domain

import "time"

// QuestionTimeLimit is the per-question countdown budget in seconds.
const QuestionTimeLimit = 15

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// InviteCode is a single-use token that unlocks the quiz.
type InviteCode struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"createdAt"`
}

// Status is the label used in listings and exports.
func (c InviteCode) Status() string {
	if c.Used {
		return "Used"
	}
	return "Available"
}

// InviteStats summarizes the invite collection.
type InviteStats struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

// ExportRow is one spreadsheet line: Invite Code | Created Date | Status.
type ExportRow struct {
	Code        string
	CreatedDate string
	Status      string
}

// Question models an MCQ question; Correct indexes into Options.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"len=4,dive,required"`
	Correct  int      `json:"correct" validate:"min=0,max=3"`
}

// Quiz is the stored form of a question bank.
type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// QuizSettings is the admin timing window. It does not gate the quiz.
type QuizSettings struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	IsActive  bool       `json:"isActive"`
}

// Phase is the quiz session's position in Locked -> InProgress -> Complete.
type Phase string

const (
	PhaseLocked     Phase = "locked"
	PhaseInProgress Phase = "in_progress"
	PhaseComplete   Phase = "complete"
)

// SessionState is the transient per-run quiz state.
type SessionState struct {
	CurrentQuestionIndex int   `json:"currentQuestionIndex"`
	Score                int   `json:"score"`
	TimeLeft             int   `json:"timeLeft"`
	Complete             bool  `json:"complete"`
	Authenticated        bool  `json:"authenticated"`
	Phase                Phase `json:"phase"`
}

// AppState is a snapshot of everything the view layer renders from.
type AppState struct {
	IsAdmin         bool
	Message         string
	Session         SessionState
	CurrentQuestion *Question
	TotalQuestions  int
	Codes           []InviteCode
	Stats           InviteStats
	Questions       []Question
	Settings        QuizSettings
}
