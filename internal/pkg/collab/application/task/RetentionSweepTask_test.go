package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	qport "go-collab/internal/infrastructure/queue/port"
	collab "go-collab/internal/pkg/collab/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskServer struct {
	handlers map[string]qport.Handler
}

func newFakeTaskServer() *fakeTaskServer {
	return &fakeTaskServer{handlers: make(map[string]qport.Handler)}
}

func (s *fakeTaskServer) Register(taskType string, h qport.Handler) { s.handlers[taskType] = h }
func (s *fakeTaskServer) Run(ctx context.Context) error            { return nil }
func (s *fakeTaskServer) Stop(ctx context.Context) error           { return nil }

type enqueuedTask struct {
	task qport.Task
	opt  qport.EnqueueOption
}

type fakeQueueClient struct {
	mu    sync.Mutex
	tasks []enqueuedTask
}

func (c *fakeQueueClient) Enqueue(ctx context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var opt qport.EnqueueOption
	if len(opts) > 0 {
		opt = opts[0]
	}
	c.tasks = append(c.tasks, enqueuedTask{task: t, opt: opt})
	return "task-id", nil
}

func (c *fakeQueueClient) Close() error { return nil }

func (c *fakeQueueClient) enqueued() []enqueuedTask {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]enqueuedTask(nil), c.tasks...)
}

// sweepRepo implements the notification repository with a controllable
// DeleteOlderThan; the remaining operations are never reached by the sweep.
type sweepRepo struct {
	swept int64
	err   error
}

func (r *sweepRepo) Save(ctx context.Context, n collab.Notification) (string, error) {
	return "", errors.New("not implemented")
}

func (r *sweepRepo) ListByUser(ctx context.Context, userID string, limit int, offset int) ([]collab.Notification, error) {
	return nil, errors.New("not implemented")
}

func (r *sweepRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	return 0, errors.New("not implemented")
}

func (r *sweepRepo) MarkRead(ctx context.Context, id string, userID string) error {
	return errors.New("not implemented")
}

func (r *sweepRepo) MarkAllRead(ctx context.Context, userID string) error {
	return errors.New("not implemented")
}

func (r *sweepRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.swept, r.err
}

func TestRetentionSweep_ReschedulesEvenWhenSweepFails(t *testing.T) {
	srv := newFakeTaskServer()
	client := &fakeQueueClient{}
	RegisterRetentionSweepTask(srv, client, &sweepRepo{err: errors.New("db down")})

	handler := srv.handlers[RetentionSweepTaskType]
	require.NotNil(t, handler)

	err := handler(context.Background(), qport.Task{Type: RetentionSweepTaskType})
	assert.Error(t, err, "a failed sweep still signals retry")

	tasks := client.enqueued()
	require.Len(t, tasks, 1, "the next run must be scheduled before sweeping")
	assert.Equal(t, RetentionSweepTaskType, tasks[0].task.Type)
	assert.Equal(t, sweepInterval, tasks[0].opt.ProcessIn)
	assert.Equal(t, sweepInterval, tasks[0].opt.UniqueTTL)
}

func TestRetentionSweep_SuccessfulRunReschedules(t *testing.T) {
	srv := newFakeTaskServer()
	client := &fakeQueueClient{}
	RegisterRetentionSweepTask(srv, client, &sweepRepo{swept: 7})

	err := srv.handlers[RetentionSweepTaskType](context.Background(), qport.Task{Type: RetentionSweepTaskType})
	require.NoError(t, err)

	tasks := client.enqueued()
	require.Len(t, tasks, 1)
	assert.Equal(t, RetentionSweepTaskType, tasks[0].task.Type)
}
