package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz(id string) *model.Quiz {
	return &model.Quiz{
		ID:       id,
		OwnerID:  "user-1",
		VideoURL: "https://youtu.be/abc123",
		Topic:    "Intro to Python",
		Questions: []model.QuizQuestion{
			{Question: "What is a list?", Options: []string{"A", "B", "C", "D"}, CorrectAnswerIndex: 2},
		},
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRedisQuizSessionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedisQuizSessionRepository(client, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleQuiz("q1")))
	assert.True(t, mr.Exists(quizKeyPrefix+"q1"))
	assert.Equal(t, 30*time.Minute, mr.TTL(quizKeyPrefix+"q1"))

	got, err := repo.Find(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz("q1"), got)

	_, err = repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrQuizNotFound)

	taken, err := repo.Take(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz("q1"), taken)
	assert.False(t, mr.Exists(quizKeyPrefix+"q1"))

	_, err = repo.Take(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	_, err = repo.Find(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestRedisQuizSessionRepository_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedisQuizSessionRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleQuiz("q1")))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Find(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestRedisQuizSessionRepository_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	repo := NewRedisQuizSessionRepository(client, time.Minute)
	_, err := repo.Find(context.Background(), "q1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuizNotFound)
}

func TestMemoryQuizSessionRepository(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryQuizSessionRepository(time.Hour).(*memoryQuizSessionRepository)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	quiz := sampleQuiz("q1")
	require.NoError(t, repo.Save(ctx, quiz))

	// Stored copies are isolated from the caller's slices.
	quiz.Questions[0].Options[0] = "mutated"
	got, err := repo.Find(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Questions[0].Options[0])

	got.Questions[0].CorrectAnswerIndex = 0
	again, err := repo.Find(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Questions[0].CorrectAnswerIndex)

	now = now.Add(time.Hour)
	_, err = repo.Find(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.Empty(t, repo.entries)
}

func TestMemoryQuizSessionRepository_Take(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryQuizSessionRepository(time.Hour).(*memoryQuizSessionRepository)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleQuiz("q1")))
	taken, err := repo.Take(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz("q1"), taken)

	_, err = repo.Take(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	_, err = repo.Find(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)

	require.NoError(t, repo.Save(ctx, sampleQuiz("q2")))
	now = now.Add(time.Hour)
	_, err = repo.Take(ctx, "q2")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.Empty(t, repo.entries)
}

func TestMemoryQuizSessionRepository_TakeConcurrent(t *testing.T) {
	repo := NewMemoryQuizSessionRepository(time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleQuiz("q1")))

	const workers = 16
	var (
		wg      sync.WaitGroup
		claimed atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Take(ctx, "q1"); err == nil {
				claimed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), claimed.Load())
}
