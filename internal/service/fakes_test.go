package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/repository"
)

var uniqueViolation = &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}

type fakeCompanies struct {
	repository.CompanyRepository
	byHandle map[string]domain.Company
}

func (f *fakeCompanies) GetByHandle(_ context.Context, handle string) (*domain.Company, error) {
	c, ok := f.byHandle[handle]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (f *fakeCompanies) Create(_ context.Context, c domain.Company) (*domain.Company, error) {
	if _, ok := f.byHandle[c.Handle]; ok {
		return nil, &pgconn.PgError{Code: "23505", ConstraintName: "companies_pkey"}
	}
	f.byHandle[c.Handle] = c
	return &c, nil
}

func (f *fakeCompanies) Update(_ context.Context, handle string, fields map[string]any) (*domain.Company, error) {
	c, ok := f.byHandle[handle]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if v, ok := fields["description"].(string); ok {
		c.Description = &v
	}
	f.byHandle[handle] = c
	return &c, nil
}

func (f *fakeCompanies) Delete(_ context.Context, handle string) error {
	if _, ok := f.byHandle[handle]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byHandle, handle)
	return nil
}

type fakeJobs struct {
	repository.JobRepository
	err error
}

func (f *fakeJobs) GetByID(context.Context, int) (*domain.Job, error) {
	return nil, f.err
}

func (f *fakeJobs) Delete(context.Context, int) error {
	return f.err
}

type fakeUsers struct {
	repository.UserRepository
	mu      sync.Mutex
	byName  map[string]domain.User
	updates []map[string]any
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]domain.User{}}
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u.Password = ""
	return &u, nil
}

func (f *fakeUsers) GetWithPassword(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (f *fakeUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[u.Username]; ok {
		return nil, uniqueViolation
	}
	f.byName[u.Username] = u
	u.Password = ""
	return &u, nil
}

func (f *fakeUsers) Update(_ context.Context, username string, fields map[string]any) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	f.updates = append(f.updates, fields)
	if v, ok := fields["password"].(string); ok {
		u.Password = v
	}
	f.byName[username] = u
	return &u, nil
}

func (f *fakeUsers) SetAdmin(_ context.Context, username string, isAdmin bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[username]
	if !ok {
		return pgx.ErrNoRows
	}
	u.IsAdmin = isAdmin
	f.byName[username] = u
	return nil
}

type stubTokens struct {
	issued []string
}

func (s *stubTokens) GenerateToken(username string, isAdmin bool) (string, time.Time, error) {
	token := username
	if isAdmin {
		token += ":admin"
	}
	s.issued = append(s.issued, token)
	return token, time.Now().Add(time.Hour), nil
}

type countingLimiter struct {
	max      int
	failures map[string]int
	resets   int
}

func (l *countingLimiter) Allow(_ context.Context, username string) bool {
	return l.failures[username] < l.max
}

func (l *countingLimiter) RecordFailure(_ context.Context, username string) {
	l.failures[username]++
}

func (l *countingLimiter) Reset(_ context.Context, username string) {
	l.resets++
	delete(l.failures, username)
}

// eventLog records every event published through a dispatcher.
type eventLog struct {
	events.Dispatcher
	seen []events.Event
}

func newEventLog() *eventLog {
	l := &eventLog{Dispatcher: events.NewInMemoryDispatcher()}
	for _, t := range events.AllEventTypes {
		l.Subscribe(t, func(_ context.Context, e events.Event) error {
			l.seen = append(l.seen, e)
			return nil
		})
	}
	return l
}

func (l *eventLog) types() []events.EventType {
	out := make([]events.EventType, 0, len(l.seen))
	for _, e := range l.seen {
		out = append(out, e.Type)
	}
	return out
}
