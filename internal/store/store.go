package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/bizdesk/internal/audit"
	"github.com/roach88/bizdesk/internal/auth"
	"github.com/roach88/bizdesk/internal/kv"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/report"
)

// DefaultTimeout bounds each storage call.
const DefaultTimeout = 5 * time.Second

// Store is the single source of truth for business data.
type Store struct {
	storage    kv.Storage
	clock      Clock
	ids        IDGenerator
	logger     *slog.Logger
	timeout    time.Duration
	sampleData bool
	logLimit   int

	products []model.Product
	sales    []model.Sale
	expenses []model.Expense
	users    []model.User
	logs     *audit.Trail
	settings model.Settings
	session  *auth.Session

	// loadErr blocks every write until a later Init loads cleanly, so a
	// partial load never overwrites what storage still holds.
	loadErr error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source. Defaults to the UTC wall clock.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDGenerator sets the id source. Defaults to UUIDGenerator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTimeout bounds each storage call. Non-positive values keep
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSampleData controls whether Init seeds example products into an
// empty catalogue. Enabled by default.
func WithSampleData(enabled bool) Option {
	return func(s *Store) { s.sampleData = enabled }
}

// WithLogLimit overrides the audit trail bound of audit.DefaultLimit.
func WithLogLimit(n int) Option {
	return func(s *Store) { s.logLimit = n }
}

// New creates a Store over storage. Call Init before use.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage:    storage,
		clock:      systemClock{},
		ids:        UUIDGenerator{},
		logger:     slog.Default(),
		timeout:    DefaultTimeout,
		sampleData: true,
		logLimit:   audit.DefaultLimit,
		settings:   model.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logs = audit.NewTrail(s.logLimit)
	return s
}

// Init loads every collection from storage, seeds the default users and,
// when enabled, the sample catalogue, then persists. If any key fails to
// load the store keeps what did load, switches to read-only and neither
// seeds nor writes.
func (s *Store) Init() {
	s.loadErr = s.load()
	if s.loadErr != nil {
		s.handleStorageError("load", s.loadErr)
		return
	}
	s.seedDefaults()
	s.save()
}

// LoadErr returns the error of the last Init, if storage failed to load.
func (s *Store) LoadErr() error {
	return s.loadErr
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Reports returns a report generator over the live state.
func (s *Store) Reports() *report.Generator {
	return report.New(s)
}

// ReadOnly reports whether a storage write has failed.
func (s *Store) ReadOnly() bool {
	return s.settings.ReadOnlyMode
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *Store) load() error {
	ctx, cancel := s.ctx()
	defer cancel()

	s.products = nil
	s.sales = nil
	s.expenses = nil
	s.users = nil
	s.logs.Clear()
	s.session = nil

	var logs []model.LogEntry
	targets := []struct {
		key string
		dst any
	}{
		{kv.KeyProducts, &s.products},
		{kv.KeySales, &s.sales},
		{kv.KeyExpenses, &s.expenses},
		{kv.KeyUsers, &s.users},
		{kv.KeyLogs, &logs},
		{kv.KeySettings, &s.settings},
	}
	var errs []error
	for _, t := range targets {
		if err := s.get(ctx, t.key, t.dst); err != nil {
			errs = append(errs, err)
		}
	}
	s.logs.Reset(logs)
	// The flag describes this process's storage, not the data.
	s.settings.ReadOnlyMode = false

	var session auth.Session
	found, err := s.getFound(ctx, kv.KeyCurrentSession, &session)
	if err != nil {
		errs = append(errs, err)
	} else if found {
		s.session = &session
	}
	return errors.Join(errs...)
}

func (s *Store) get(ctx context.Context, key string, dst any) error {
	_, err := s.getFound(ctx, key, dst)
	return err
}

func (s *Store) getFound(ctx context.Context, key string, dst any) (bool, error) {
	data, found, err := s.storage.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found || len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

type keyValue struct {
	key string
	v   any
}

// save writes every collection, the settings and the session if any.
func (s *Store) save() {
	if s.skipWrite() {
		return
	}
	ctx, cancel := s.ctx()
	defer cancel()

	values := []keyValue{
		{kv.KeyProducts, nonNil(s.products)},
		{kv.KeySales, nonNil(s.sales)},
		{kv.KeyExpenses, nonNil(s.expenses)},
		{kv.KeyUsers, nonNil(s.users)},
		{kv.KeyLogs, nonNil(s.logs.Entries())},
		{kv.KeySettings, s.settings},
	}
	if s.session != nil {
		values = append(values, keyValue{kv.KeyCurrentSession, s.session})
	}
	for _, v := range values {
		if err := s.put(ctx, v.key, v.v); err != nil {
			s.handleStorageError("save", err)
			return
		}
	}
}

// saveLogs writes only the audit trail.
func (s *Store) saveLogs() {
	if s.skipWrite() {
		return
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.put(ctx, kv.KeyLogs, nonNil(s.logs.Entries())); err != nil {
		s.handleStorageError("save logs", err)
	}
}

func (s *Store) skipWrite() bool {
	if s.loadErr != nil {
		s.logger.Warn("storage did not load, not writing", "error", s.loadErr)
		return true
	}
	return false
}

func (s *Store) handleStorageError(op string, err error) {
	s.logger.Error("storage failure, switching to read-only mode", "op", op, "error", err)
	s.settings.ReadOnlyMode = true
}

// commit records one audit entry and persists the full state.
func (s *Store) commit(action model.Action, module, details string) {
	s.appendLog(action, module, details, "", "")
	s.save()
}

// touch returns a timestamp strictly after prev.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.clock.Now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
