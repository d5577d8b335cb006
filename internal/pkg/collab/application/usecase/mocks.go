package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*collab.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collab.User), args.Error(1)
}

func (m *MockUserRepository) FirstActiveAdmin(ctx context.Context) (*collab.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collab.User), args.Error(1)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindByID(ctx context.Context, id string) (*collab.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collab.Team), args.Error(1)
}

func (m *MockTeamRepository) AddMember(ctx context.Context, mb collab.Membership) (bool, error) {
	args := m.Called(ctx, mb)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) RemoveMember(ctx context.Context, teamID string, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTeamRepository) IsMember(ctx context.Context, teamID string, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Save(ctx context.Context, n collab.Notification) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, limit int, offset int) ([]collab.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collab.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// memActivityRepository is an in-memory ActivityRepository good enough for
// exercising the Mutate contract (row-lock serialization is the real
// adapter's concern and is covered by postgres, not simulated here).
type memActivityRepository struct {
	mu         sync.Mutex
	activities map[string]collab.Activity
	remarks    []collab.Remark
	nextID     int
}

func newMemActivityRepository() *memActivityRepository {
	return &memActivityRepository{activities: make(map[string]collab.Activity)}
}

var _ repository.ActivityRepository = (*memActivityRepository)(nil)

func (r *memActivityRepository) put(a collab.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[a.ID] = a
}

func (r *memActivityRepository) Create(_ context.Context, a collab.Activity) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = "act-" + strconv.Itoa(r.nextID)
	r.activities[a.ID] = a
	return a.ID, nil
}

func (r *memActivityRepository) FindByID(_ context.Context, id string) (*collab.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok {
		return nil, collab.ErrNotFound
	}
	cp := a
	cp.AssigneeIDs = append([]string(nil), a.AssigneeIDs...)
	return &cp, nil
}

func (r *memActivityRepository) Update(_ context.Context, a collab.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[a.ID]; !ok {
		return collab.ErrNotFound
	}
	r.activities[a.ID] = a
	return nil
}

func (r *memActivityRepository) Mutate(ctx context.Context, id string, fn func(a *collab.Activity, remarks repository.RemarkAppender) error) (*collab.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok {
		return nil, collab.ErrNotFound
	}
	cp := a
	cp.AssigneeIDs = append([]string(nil), a.AssigneeIDs...)

	appender := &memRemarkAppender{}
	if err := fn(&cp, appender); err != nil {
		return nil, err
	}
	r.activities[id] = cp
	r.remarks = append(r.remarks, appender.appended...)

	out := cp
	out.AssigneeIDs = append([]string(nil), cp.AssigneeIDs...)
	return &out, nil
}

func (r *memActivityRepository) SaveRemark(_ context.Context, rm collab.Remark) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm.ID = "rem-" + strconv.Itoa(len(r.remarks)+1)
	r.remarks = append(r.remarks, rm)
	return rm.ID, nil
}

func (r *memActivityRepository) ListRemarks(_ context.Context, activityID string) ([]collab.Remark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []collab.Remark
	for _, rm := range r.remarks {
		if rm.ActivityID == activityID {
			out = append(out, rm)
		}
	}
	return out, nil
}

type memRemarkAppender struct {
	appended []collab.Remark
}

func (a *memRemarkAppender) Append(rm collab.Remark) error {
	a.appended = append(a.appended, rm)
	return nil
}

// recordingNotifier captures emitted events synchronously.
type recordingNotifier struct {
	mu     sync.Mutex
	events []collab.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e collab.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) recorded() []collab.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]collab.Event(nil), n.events...)
}

// fakeDelivery records pushes and can simulate users without live connections.
type fakeDelivery struct {
	mu     sync.Mutex
	pushes map[string][][]byte
	live   map[string]bool // nil means every user is live
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{pushes: make(map[string][][]byte)}
}

func (d *fakeDelivery) Push(userID string, payload []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.live != nil && !d.live[userID] {
		return 0
	}
	d.pushes[userID] = append(d.pushes[userID], payload)
	return 1
}

func (d *fakeDelivery) pushedTo(userID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pushes[userID])
}

// fakeUnread is an in-memory UnreadCounter.
type fakeUnread struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeUnread() *fakeUnread {
	return &fakeUnread{counts: make(map[string]int64)}
}

func (u *fakeUnread) Incr(_ context.Context, userID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts[userID]++
	return nil
}

func (u *fakeUnread) Forget(_ context.Context, userID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.counts, userID)
	return nil
}

func (u *fakeUnread) Get(_ context.Context, userID string) (int64, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	c, ok := u.counts[userID]
	return c, ok, nil
}

func (u *fakeUnread) Put(_ context.Context, userID string, count int64) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts[userID] = count
	return nil
}
