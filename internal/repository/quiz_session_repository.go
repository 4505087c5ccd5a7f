package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lshigami/vidcert/internal/model"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=quiz_session_repository.go -destination=mock/quiz_session_repository_mock.go

const quizKeyPrefix = "vidcert:quiz:"

var ErrQuizNotFound = errors.New("quiz not found or expired")

// QuizSessionRepository holds generated quizzes, answer key included, between
// generation and submission. Take removes and returns a quiz in one step, so
// at most one caller can claim it.
type QuizSessionRepository interface {
	Save(ctx context.Context, quiz *model.Quiz) error
	Find(ctx context.Context, id string) (*model.Quiz, error)
	Take(ctx context.Context, id string) (*model.Quiz, error)
}

type redisQuizSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisQuizSessionRepository(client *redis.Client, ttl time.Duration) QuizSessionRepository {
	return &redisQuizSessionRepository{client: client, ttl: ttl}
}

func (r *redisQuizSessionRepository) Save(ctx context.Context, quiz *model.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}
	if err := r.client.Set(ctx, quizKeyPrefix+quiz.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store quiz %s: %w", quiz.ID, err)
	}
	return nil
}

func (r *redisQuizSessionRepository) Find(ctx context.Context, id string) (*model.Quiz, error) {
	return decodeQuiz(id, r.client.Get(ctx, quizKeyPrefix+id))
}

func (r *redisQuizSessionRepository) Take(ctx context.Context, id string) (*model.Quiz, error) {
	return decodeQuiz(id, r.client.GetDel(ctx, quizKeyPrefix+id))
}

func decodeQuiz(id string, cmd *redis.StringCmd) (*model.Quiz, error) {
	data, err := cmd.Bytes()
	if err == redis.Nil {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz %s: %w", id, err)
	}
	var quiz model.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, fmt.Errorf("decode quiz %s: %w", id, err)
	}
	return &quiz, nil
}

type memoryEntry struct {
	quiz      model.Quiz
	expiresAt time.Time
}

type memoryQuizSessionRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryQuizSessionRepository keeps quizzes in process memory. Expired
// entries are dropped lazily on access.
func NewMemoryQuizSessionRepository(ttl time.Duration) QuizSessionRepository {
	return &memoryQuizSessionRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *memoryQuizSessionRepository) Save(_ context.Context, quiz *model.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	r.entries[quiz.ID] = memoryEntry{quiz: cloneQuiz(quiz), expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *memoryQuizSessionRepository) Find(_ context.Context, id string) (*model.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id, false)
}

func (r *memoryQuizSessionRepository) Take(_ context.Context, id string) (*model.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(id, true)
}

// lookup must be called with mu held.
func (r *memoryQuizSessionRepository) lookup(id string, remove bool) (*model.Quiz, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrQuizNotFound
	}
	expired := !r.now().Before(entry.expiresAt)
	if remove || expired {
		delete(r.entries, id)
	}
	if expired {
		return nil, ErrQuizNotFound
	}
	quiz := cloneQuiz(&entry.quiz)
	return &quiz, nil
}

// evictExpired must be called with mu held.
func (r *memoryQuizSessionRepository) evictExpired() {
	now := r.now()
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
		}
	}
}

func cloneQuiz(q *model.Quiz) model.Quiz {
	out := *q
	out.Questions = make([]model.QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		out.Questions[i] = question
	}
	return out
}
