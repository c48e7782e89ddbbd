package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"invite-quiz-service/internal/domain"
	"invite-quiz-service/internal/lib/sl"
)

// Inline messages shown on the landing screen.
const (
	MessageInvalidInvite = "Invalid or already used invite code"
	MessageInvalidAdmin  = "Invalid admin credentials"
	MessageNoQuestions   = "Quiz has no questions yet"
)

const tickInterval = time.Second

// Controller owns the application state. All transitions are serialised by
// one mutex, including countdown ticks, and every change is broadcast to
// subscribers as a fresh snapshot.
type Controller struct {
	invites   *InviteService
	bank      *QuestionBank
	admin     *AdminSession
	session   *QuizSession
	scheduler Scheduler
	log       *slog.Logger

	mu            sync.Mutex
	settings      domain.QuizSettings
	message       string
	stopCountdown func()
	countdownGen  uint64
	subscribers   map[chan domain.AppState]struct{}
}

type ControllerOption func(*Controller)

// WithScheduler replaces the ticker-backed countdown, e.g. with a manual one in tests.
func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) {
		c.scheduler = s
	}
}

func NewController(invites *InviteService, bank *QuestionBank, admin *AdminSession, log *slog.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		invites:     invites,
		bank:        bank,
		admin:       admin,
		session:     NewQuizSession(),
		scheduler:   TickerScheduler{},
		log:         log.With(sl.Module("app.controller")),
		subscribers: make(map[chan domain.AppState]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitInviteCode normalises raw input like the landing form does and
// unlocks the quiz on a successful redemption. A rejected code sets the
// inline message and leaves every record untouched.
func (c *Controller) SubmitInviteCode(ctx context.Context, raw string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Phase() != domain.PhaseLocked {
		return true, nil
	}

	questions, err := c.bank.Questions(ctx)
	if err != nil {
		return false, err
	}
	if len(questions) == 0 {
		c.message = MessageNoQuestions
		c.broadcastLocked(ctx)
		return false, nil
	}

	code := strings.ToUpper(strings.TrimSpace(raw))
	if err := c.invites.Redeem(ctx, code); err != nil {
		if !errors.Is(err, domain.ErrInvalidInviteCode) {
			return false, err
		}
		c.message = MessageInvalidInvite
		c.broadcastLocked(ctx)
		return false, nil
	}

	c.session.Unlock(questions)
	c.message = ""
	c.restartCountdownLocked()
	c.log.Info("quiz unlocked", slog.Int("questions", len(questions)))
	c.broadcastLocked(ctx)
	return true, nil
}

// Answer records selected for the current question. It reports whether the
// answer was correct; outside a running quiz it does nothing.
func (c *Controller) Answer(ctx context.Context, selected int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Phase() != domain.PhaseInProgress {
		return false
	}
	correct := c.session.Answer(selected)
	c.syncCountdownLocked(true)
	c.broadcastLocked(ctx)
	return correct
}

// Reset returns the quiz to the landing state.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Reset()
	c.stopCountdownLocked()
	c.broadcastLocked(ctx)
}

func (c *Controller) AdminLogin(ctx context.Context, password string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.admin.Login(password)
	if ok {
		c.message = ""
		c.log.Info("admin logged in")
	} else {
		c.message = MessageInvalidAdmin
		c.log.Warn("admin login failed")
	}
	c.broadcastLocked(ctx)
	return ok
}

func (c *Controller) AdminLogout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.admin.Logout()
	c.broadcastLocked(ctx)
}

func (c *Controller) IsAdmin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.admin.IsAdmin()
}

func (c *Controller) GenerateCodes(ctx context.Context, prefix string, count int) ([]domain.InviteCode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return nil, err
	}
	created, err := c.invites.Create(ctx, prefix, count)
	if err != nil {
		return nil, err
	}
	c.broadcastLocked(ctx)
	return created, nil
}

func (c *Controller) DeleteCode(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return err
	}
	if err := c.invites.Delete(ctx, id); err != nil {
		return err
	}
	c.broadcastLocked(ctx)
	return nil
}

func (c *Controller) Codes() ([]domain.InviteCode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return nil, err
	}
	return c.invites.List(), nil
}

func (c *Controller) InviteStats() (domain.InviteStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return domain.InviteStats{}, err
	}
	return c.invites.Stats(), nil
}

// CodesText is the newline-joined list copied by "copy all".
func (c *Controller) CodesText() (string, error) {
	codes, err := c.Codes()
	if err != nil {
		return "", err
	}
	return CodesText(codes), nil
}

func (c *Controller) ExportRows() ([]domain.ExportRow, error) {
	codes, err := c.Codes()
	if err != nil {
		return nil, err
	}
	return ExportRows(codes), nil
}

func (c *Controller) Questions(ctx context.Context) ([]domain.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return nil, err
	}
	return c.bank.Questions(ctx)
}

func (c *Controller) AddQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return domain.Question{}, err
	}
	added, err := c.bank.Add(ctx, q)
	if err != nil {
		return domain.Question{}, err
	}
	c.broadcastLocked(ctx)
	return added, nil
}

func (c *Controller) EditQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return domain.Question{}, err
	}
	edited, err := c.bank.Edit(ctx, q)
	if err != nil {
		return domain.Question{}, err
	}
	c.broadcastLocked(ctx)
	return edited, nil
}

func (c *Controller) DeleteQuestion(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return err
	}
	if err := c.bank.Delete(ctx, id); err != nil {
		return err
	}
	c.broadcastLocked(ctx)
	return nil
}

func (c *Controller) Settings() (domain.QuizSettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return domain.QuizSettings{}, err
	}
	return c.settings, nil
}

// UpdateSettings replaces the timing window. The window is informational only.
func (c *Controller) UpdateSettings(ctx context.Context, settings domain.QuizSettings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAdminLocked(); err != nil {
		return err
	}
	if settings.StartTime != nil && settings.EndTime != nil && settings.EndTime.Before(*settings.StartTime) {
		return domain.ErrInvalidSettings
	}
	c.settings = settings
	c.broadcastLocked(ctx)
	return nil
}

// State returns a snapshot of the application state.
func (c *Controller) State(ctx context.Context) domain.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(ctx)
}

// Subscribe returns a channel that receives a snapshot after every change,
// starting with the current one. The caller must invoke cancel to avoid leaks.
func (c *Controller) Subscribe(ctx context.Context) (<-chan domain.AppState, func()) {
	ch := make(chan domain.AppState, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	ch <- c.snapshotLocked(ctx)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// Close stops the countdown and releases all subscribers.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopCountdownLocked()
	for ch := range c.subscribers {
		delete(c.subscribers, ch)
		close(ch)
	}
}

func (c *Controller) requireAdminLocked() error {
	if !c.admin.IsAdmin() {
		return domain.ErrAdminRequired
	}
	return nil
}

// restartCountdownLocked cancels any live countdown before starting a new one,
// so at most one task exists. Ticks from a cancelled task are ignored by generation.
func (c *Controller) restartCountdownLocked() {
	c.stopCountdownLocked()
	c.countdownGen++
	gen := c.countdownGen
	c.stopCountdown = c.scheduler.Every(tickInterval, func() {
		c.tick(gen)
	})
}

func (c *Controller) stopCountdownLocked() {
	if c.stopCountdown != nil {
		c.stopCountdown()
		c.stopCountdown = nil
	}
	c.countdownGen++
}

// syncCountdownLocked restarts the countdown for a new question or stops it
// once the run is no longer in progress.
func (c *Controller) syncCountdownLocked(questionChanged bool) {
	if c.session.Phase() != domain.PhaseInProgress {
		c.stopCountdownLocked()
		return
	}
	if questionChanged {
		c.restartCountdownLocked()
	}
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.countdownGen {
		return
	}
	changed := c.session.Tick()
	c.syncCountdownLocked(changed)
	c.broadcastLocked(context.Background())
}

func (c *Controller) broadcastLocked(ctx context.Context) {
	if len(c.subscribers) == 0 {
		return
	}
	state := c.snapshotLocked(ctx)
	for ch := range c.subscribers {
		select {
		case ch <- state:
		default:
			// Drop the stale snapshot so a slow subscriber never blocks a transition.
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}

func (c *Controller) snapshotLocked(ctx context.Context) domain.AppState {
	state := domain.AppState{
		IsAdmin:         c.admin.IsAdmin(),
		Message:         c.message,
		Session:         c.session.State(),
		CurrentQuestion: c.session.CurrentQuestion(),
		TotalQuestions:  c.session.TotalQuestions(),
		Settings:        c.settings,
	}
	if !state.IsAdmin {
		return state
	}
	state.Codes = c.invites.List()
	state.Stats = statsOf(state.Codes)
	questions, err := c.bank.Questions(ctx)
	if err != nil {
		c.log.Error("load questions for snapshot", sl.Err(err))
		questions = nil
	}
	state.Questions = questions
	return state
}
