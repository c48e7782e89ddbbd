package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"invite-quiz-service/internal/app"
	"invite-quiz-service/internal/config"
	"invite-quiz-service/internal/infra/file"
	"invite-quiz-service/internal/infra/memory"
	"invite-quiz-service/internal/infra/postgres"
	redisinfra "invite-quiz-service/internal/infra/redis"
	"invite-quiz-service/internal/lib/sl"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// backends holds the storage selected by config: Redis or a local JSON file
// for invite codes, Postgres or the built-in bank behind an optional Redis
// cache for questions.
type backends struct {
	invites app.InviteRepository
	quizzes app.QuizRepository
	store   memory.QuizStore
	cache   *redisinfra.QuizRepository

	closers []func()
}

func openBackends(ctx context.Context, cfg config.Config, log *slog.Logger) (*backends, error) {
	log = log.With(sl.Module("cli.backends"))
	b := &backends{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, func() { _ = redisClient.Close() })
		if err := redisClient.Ping(ctx).Err(); err != nil {
			b.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.invites = redisinfra.NewInviteStore(redisClient)
		log.Info("invite codes stored in redis", slog.String("addr", cfg.Redis.Addr))
	} else {
		b.invites = file.NewInviteStore(file.NewStore(cfg.Storage.Path))
		log.Info("invite codes stored in file", slog.String("path", cfg.Storage.Path))
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		store := postgres.NewQuizStore(pool)
		seeded, err := store.SeedQuiz(ctx, memory.DefaultQuiz(cfg.Quiz.ID))
		if err != nil {
			b.Close()
			return nil, err
		}
		if seeded {
			log.Info("question bank seeded", slog.String("quiz_id", cfg.Quiz.ID))
		}
		b.store = store
	} else {
		b.store = memory.NewStaticQuizStore(memory.DefaultQuiz(cfg.Quiz.ID))
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if redisClient != nil {
		b.cache = redisinfra.NewQuizRepository(redisClient, b.store, quizTTL)
		b.quizzes = b.cache
	} else {
		b.quizzes = memory.NewQuizRepository(b.store, quizTTL)
	}
	return b, nil
}

// Close releases connections in reverse order of opening.
func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

func (b *backends) inviteService(ctx context.Context, log *slog.Logger) (*app.InviteService, error) {
	return app.NewInviteService(ctx, b.invites, app.NewCodeGenerator(), log)
}
