package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"invite-quiz-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// QuizLoader fetches question banks from a backing store (e.g., Postgres).
type QuizLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizSaver persists question banks to the backing store.
type QuizSaver interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// QuizStore is both loader and saver.
type QuizStore interface {
	QuizLoader
	QuizSaver
}

// QuizRepository caches question banks with TTL to avoid repeated store hits.
// Saves write through to the store and refresh the cache.
type QuizRepository struct {
	store QuizStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizRepository(store QuizStore, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		store: store,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedQuiz),
	}
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := r.cached(quizID); ok {
		return quiz, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		if quiz, ok := r.cached(quizID); ok {
			return quiz, nil
		}

		quiz, err := r.store.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		r.put(quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return cloneQuiz(result.(domain.Quiz)), nil
}

func (r *QuizRepository) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := r.store.SaveQuiz(ctx, quiz); err != nil {
		return err
	}
	r.put(cloneQuiz(quiz))
	return nil
}

func (r *QuizRepository) cached(quizID string) (domain.Quiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[quizID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.Quiz{}, false
	}
	return cloneQuiz(entry.quiz), true
}

func (r *QuizRepository) put(quiz domain.Quiz) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[quiz.ID] = cachedQuiz{
		quiz:      quiz,
		expiresAt: r.clock().Add(r.ttlWithJitterLocked()),
	}
}

func (r *QuizRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticQuizStore is an in-memory bank store, seeded up front (useful for tests/demos).
type StaticQuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

func NewStaticQuizStore(seed ...domain.Quiz) *StaticQuizStore {
	s := &StaticQuizStore{quizzes: make(map[string]domain.Quiz, len(seed))}
	for _, quiz := range seed {
		s.quizzes[quiz.ID] = cloneQuiz(quiz)
	}
	return s
}

func (s *StaticQuizStore) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if quiz, ok := s.quizzes[quizID]; ok {
		return cloneQuiz(quiz), nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (s *StaticQuizStore) SaveQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

func cloneQuiz(quiz domain.Quiz) domain.Quiz {
	questions := make([]domain.Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		q.Options = append([]string(nil), q.Options...)
		questions[i] = q
	}
	quiz.Questions = questions
	return quiz
}
