package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/opsboard/internal/constants"
	"github.com/yukikurage/opsboard/internal/dto"
	"github.com/yukikurage/opsboard/internal/models"
)

type stubRepository struct {
	listFn    func(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	reorderFn func(ctx context.Context, items []dto.ReorderItem) error
	listCalls int
}

func (s *stubRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = 99
	return nil
}

func (s *stubRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	return nil, errors.New("unexpected FindByID call")
}

func (s *stubRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	s.listCalls++
	if s.listFn == nil {
		return nil, errors.New("unexpected List call")
	}
	return s.listFn(ctx, filter)
}

func (s *stubRepository) Update(ctx context.Context, task *models.Task) error { return nil }

func (s *stubRepository) Delete(ctx context.Context, id uint64) error { return nil }

func (s *stubRepository) CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error) {
	return 0, nil
}

func (s *stubRepository) Reorder(ctx context.Context, items []dto.ReorderItem) error {
	if s.reorderFn == nil {
		return nil
	}
	return s.reorderFn(ctx, items)
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func boardFixture() []models.Task {
	due := models.NewDate(2026, 1, 2)
	return []models.Task{
		{ID: 1, Title: "Write report", Status: models.TaskStatusTodo, Priority: models.TaskPriorityHigh, DueDate: &due},
		{ID: 2, Title: "Book flights", Status: models.TaskStatusDone, Priority: models.TaskPriorityLow},
	}
}

func TestCachedList_MissThenHit(t *testing.T) {
	mr, client := newTestRedis(t)
	stub := &stubRepository{listFn: func(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
		return boardFixture(), nil
	}}
	repo := NewCachedTaskRepository(stub, client, time.Minute)
	ctx := context.Background()

	first, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	second, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, stub.listCalls)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.Equal(t, "2026-01-02", second[0].DueDate.String())
	assert.Nil(t, second[1].DueDate)

	ttl := mr.TTL(BoardCacheKey(0))
	assert.True(t, ttl > 0 && ttl <= time.Minute, "unexpected TTL %v", ttl)
}

func TestCachedList_FilteredBypassesCache(t *testing.T) {
	mr, client := newTestRedis(t)
	stub := &stubRepository{listFn: func(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
		return boardFixture()[:1], nil
	}}
	repo := NewCachedTaskRepository(stub, client, time.Minute)

	status := models.TaskStatusTodo
	_, err := repo.List(context.Background(), TaskFilter{Status: &status})
	require.NoError(t, err)

	assert.False(t, mr.Exists(BoardCacheKey(0)))
}

func TestCachedWrites_Evict(t *testing.T) {
	mr, client := newTestRedis(t)
	stub := &stubRepository{
		listFn: func(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
			return boardFixture(), nil
		},
		reorderFn: func(ctx context.Context, items []dto.ReorderItem) error {
			return errors.New("transaction aborted")
		},
	}
	repo := NewCachedTaskRepository(stub, client, time.Minute)
	ctx := context.Background()

	_, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	require.True(t, mr.Exists(BoardCacheKey(0)))

	require.NoError(t, repo.Create(ctx, &models.Task{Title: "new"}))
	gen, err := mr.Get(constants.TaskBoardCacheGenKey)
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	_, err = repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, stub.listCalls)
	require.True(t, mr.Exists(BoardCacheKey(1)))

	err = repo.Reorder(ctx, []dto.ReorderItem{{ID: 1, Status: models.TaskStatusDone}})
	assert.Error(t, err)

	_, err = repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, stub.listCalls)
}

func TestCachedList_WriteDuringReadIsNotCached(t *testing.T) {
	_, client := newTestRedis(t)
	status := models.TaskStatusTodo
	reading := make(chan struct{})
	release := make(chan struct{})
	stub := &stubRepository{
		listFn: func(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
			snapshot := []models.Task{{ID: 1, Title: "Write report", Status: status, Priority: models.TaskPriorityHigh}}
			if reading != nil {
				close(reading)
				reading = nil
				<-release
			}
			return snapshot, nil
		},
		reorderFn: func(ctx context.Context, items []dto.ReorderItem) error {
			status = items[0].Status
			return nil
		},
	}
	repo := NewCachedTaskRepository(stub, client, time.Minute)
	ctx := context.Background()

	wait := reading
	done := make(chan []models.Task)
	go func() {
		tasks, err := repo.List(ctx, TaskFilter{})
		assert.NoError(t, err)
		done <- tasks
	}()

	<-wait
	require.NoError(t, repo.Reorder(ctx, []dto.ReorderItem{{ID: 1, Status: models.TaskStatusDone}}))
	close(release)

	stale := <-done
	require.Len(t, stale, 1)
	assert.Equal(t, models.TaskStatusTodo, stale[0].Status)

	tasks, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskStatusDone, tasks[0].Status)
}

func TestCachedList_CorruptEntryFallsBack(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set(BoardCacheKey(0), "{not json"))

	stub := &stubRepository{listFn: func(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
		return boardFixture(), nil
	}}
	repo := NewCachedTaskRepository(stub, client, time.Minute)

	tasks, err := repo.List(context.Background(), TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, 1, stub.listCalls)
}

func TestCachedList_Disabled(t *testing.T) {
	stub := &stubRepository{listFn: func(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
		return boardFixture(), nil
	}}
	repo := NewCachedTaskRepository(stub, nil, time.Minute)

	_, err := repo.List(context.Background(), TaskFilter{})
	require.NoError(t, err)
	_, err = repo.List(context.Background(), TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, stub.listCalls)
}
