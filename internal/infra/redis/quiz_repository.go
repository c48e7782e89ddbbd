package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"invite-quiz-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuizStore is the backing store behind the Redis cache (e.g., Postgres).
type QuizStore interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// QuizRepository caches question banks in Redis and falls back to the store on a miss.
// Banks are stored as: SET quiz:{quizID}:questions <json> EX ttl
type QuizRepository struct {
	client *redis.Client
	store  QuizStore
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizRepository(client *redis.Client, store QuizStore, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		client: client,
		store:  store,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := r.cached(ctx, quizID); ok {
		return quiz, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := r.cached(ctx, quizID); ok {
			return quiz, nil
		}

		quiz, err := r.store.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		r.fill(ctx, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// SaveQuiz writes through to the store, then refreshes the cached copy.
func (r *QuizRepository) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := r.store.SaveQuiz(ctx, quiz); err != nil {
		return err
	}
	r.fill(ctx, quiz)
	return nil
}

// cached treats unreadable entries as a miss; the store stays authoritative.
func (r *QuizRepository) cached(ctx context.Context, quizID string) (domain.Quiz, bool) {
	raw, err := r.client.Get(ctx, r.questionsKey(quizID)).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

// fill caches quiz for the jittered TTL. A non-positive TTL disables caching,
// matching the in-memory repository.
func (r *QuizRepository) fill(ctx context.Context, quiz domain.Quiz) {
	ttl := r.ttlWithJitter()
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	// best-effort; a failed fill only costs a reload
	_ = r.client.Set(ctx, r.questionsKey(quiz.ID), raw, ttl).Err()
}

// Invalidate drops the cached bank so the next read reloads from the store.
func (r *QuizRepository) Invalidate(ctx context.Context, quizID string) error {
	return r.client.Del(ctx, r.questionsKey(quizID)).Err()
}

func (r *QuizRepository) questionsKey(quizID string) string {
	return "quiz:" + quizID + ":questions"
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
