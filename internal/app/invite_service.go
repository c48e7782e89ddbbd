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
)

// maxCodeDraws bounds the uniqueness retry loop for a single code.
const maxCodeDraws = 8

// InviteRepository persists the whole invite collection as one entry.
// Load returns an empty slice when nothing is stored and wraps
// domain.ErrMalformedData when stored data cannot be decoded.
type InviteRepository interface {
	Load(ctx context.Context) ([]domain.InviteCode, error)
	Save(ctx context.Context, codes []domain.InviteCode) error
}

// InviteService owns the ordered invite collection. Every mutation re-reads
// the repository, applies the change and writes the whole collection back,
// so records written by another process sharing the store are kept. A failed
// write rolls the mutation back.
type InviteService struct {
	repo InviteRepository
	gen  *CodeGenerator
	log  *slog.Logger

	mu    sync.Mutex
	codes []domain.InviteCode
}

// NewInviteService loads the persisted collection. Malformed data resets
// the collection to empty instead of failing startup.
func NewInviteService(ctx context.Context, repo InviteRepository, gen *CodeGenerator, log *slog.Logger) (*InviteService, error) {
	log = log.With(sl.Module("app.invites"))
	codes, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedData) {
			return nil, fmt.Errorf("load invite codes: %w", err)
		}
		log.Warn("stored invite codes unreadable, starting empty", sl.Err(err))
		codes = nil
	}
	if codes == nil {
		codes = []domain.InviteCode{}
	}
	log.Debug("invite codes loaded", slog.Int("count", len(codes)))
	return &InviteService{repo: repo, gen: gen, log: log, codes: codes}, nil
}

// Create generates count codes (clamped to [1,100]) sharing an optional prefix.
func (s *InviteService) Create(ctx context.Context, prefix string, count int) ([]domain.InviteCode, error) {
	count = ClampBatch(count)
	prefix = SanitizePrefix(prefix)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(s.codes)+count)
	for _, c := range s.codes {
		taken[c.Code] = struct{}{}
	}

	created := make([]domain.InviteCode, 0, count)
	for i := 0; i < count; i++ {
		code, err := s.uniqueCode(prefix, taken)
		if err != nil {
			return nil, err
		}
		id, err := s.gen.ID(i)
		if err != nil {
			return nil, err
		}
		taken[code] = struct{}{}
		created = append(created, domain.InviteCode{
			ID:        id,
			Code:      code,
			Used:      false,
			CreatedAt: s.gen.now().UTC(),
		})
	}

	next := make([]domain.InviteCode, 0, len(s.codes)+len(created))
	next = append(next, s.codes...)
	next = append(next, created...)
	if err := s.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	s.log.Info("invite codes created", slog.Int("count", len(created)), slog.String("prefix", prefix))
	return created, nil
}

func (s *InviteService) uniqueCode(prefix string, taken map[string]struct{}) (string, error) {
	for attempt := 0; attempt < maxCodeDraws; attempt++ {
		code, err := s.gen.Code(prefix)
		if err != nil {
			return "", err
		}
		if _, dup := taken[code]; !dup {
			return code, nil
		}
	}
	return "", domain.ErrCodeSpaceExhausted
}

// Redeem consumes the first unused record whose code matches exactly.
// It returns domain.ErrInvalidInviteCode when nothing matches.
func (s *InviteService) Redeem(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}

	idx := -1
	for i, c := range s.codes {
		if c.Code == code && !c.Used {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.Debug("invite redemption rejected", sl.Secret("code", code))
		return domain.ErrInvalidInviteCode
	}

	next := cloneCodes(s.codes)
	next[idx].Used = true
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}
	s.log.Info("invite code redeemed", slog.String("id", next[idx].ID))
	return nil
}

// Delete removes the record with id. Deleting an unknown id is a no-op.
func (s *InviteService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return err
	}

	next := make([]domain.InviteCode, 0, len(s.codes))
	for _, c := range s.codes {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.codes) {
		return nil
	}
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}
	s.log.Info("invite code deleted", slog.String("id", id))
	return nil
}

// List returns a copy of the collection in creation order.
func (s *InviteService) List() []domain.InviteCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCodes(s.codes)
}

// Get returns the record with id.
func (s *InviteService) Get(id string) (domain.InviteCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.codes {
		if c.ID == id {
			return c, true
		}
	}
	return domain.InviteCode{}, false
}

// Stats counts used and available codes.
func (s *InviteService) Stats() domain.InviteStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statsOf(s.codes)
}

// refreshLocked replaces the in-memory collection with the stored one.
// Unreadable stored data keeps the current collection, which the next
// commit writes back over it.
func (s *InviteService) refreshLocked(ctx context.Context) error {
	codes, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedData) {
			s.log.Warn("stored invite codes unreadable, keeping loaded copy", sl.Err(err))
			return nil
		}
		return fmt.Errorf("reload invite codes: %w", err)
	}
	if codes == nil {
		codes = []domain.InviteCode{}
	}
	s.codes = codes
	return nil
}

func (s *InviteService) commitLocked(ctx context.Context, next []domain.InviteCode) error {
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error("persist invite codes", sl.Err(err))
		return fmt.Errorf("save invite codes: %w", err)
	}
	s.codes = next
	return nil
}

func statsOf(codes []domain.InviteCode) domain.InviteStats {
	stats := domain.InviteStats{Total: len(codes)}
	for _, c := range codes {
		if c.Used {
			stats.Used++
		}
	}
	stats.Available = stats.Total - stats.Used
	return stats
}

// CodesText joins codes with newlines, the clipboard form of a listing.
func CodesText(codes []domain.InviteCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.Code
	}
	return strings.Join(parts, "\n")
}

// ExportRows maps codes to spreadsheet rows.
func ExportRows(codes []domain.InviteCode) []domain.ExportRow {
	rows := make([]domain.ExportRow, len(codes))
	for i, c := range codes {
		rows[i] = domain.ExportRow{
			Code:        c.Code,
			CreatedDate: c.CreatedAt.Format("2006-01-02"),
			Status:      c.Status(),
		}
	}
	return rows
}

func cloneCodes(codes []domain.InviteCode) []domain.InviteCode {
	out := make([]domain.InviteCode, len(codes))
	copy(out, codes)
	return out
}
