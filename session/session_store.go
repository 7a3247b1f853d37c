package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hanksha/fitclass-booking/notify"
	"go.uber.org/zap"
)

const DefaultEntryName = "auth-storage"

const expiredMessage = "Your session has expired. Please login again."

const persistTimeout = 5 * time.Second

//go:generate mockgen -destination=mocks/authenticator.go -package=mocks . Authenticator

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (User, error)
}

// Timer is the handle of a scheduled expiry; *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var validate = validator.New()

type Store struct {
	mu sync.Mutex

	auth      Authenticator
	storage   Storage
	entry     string
	notifier  notify.Notifier
	log       *zap.Logger
	now       func() time.Time
	afterFunc func(d time.Duration, f func()) Timer

	user          *User
	authenticated bool
	loading       bool
	lastErr       string

	// generation identifies the current session; expiry tasks carry the
	// generation they were scheduled for and do nothing once it moved on.
	generation uint64
	expiry     Timer

	watch       sync.Once
	unsubscribe func()
	lastSaved   atomic.Pointer[string]

	listeners    map[int]func(State)
	nextListener int
}

type Option func(*Store)

func WithEntryName(name string) Option {
	return func(s *Store) { s.entry = name }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithScheduler(afterFunc func(d time.Duration, f func()) Timer) Option {
	return func(s *Store) { s.afterFunc = afterFunc }
}

func NewStore(auth Authenticator, storage Storage, opts ...Option) *Store {
	s := &Store{
		auth:     auth,
		storage:  storage,
		entry:    DefaultEntryName,
		notifier: notify.Discard{},
		log:      zap.NewNop(),
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		listeners: map[int]func(State){},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// User returns the authenticated user or ErrNotAuthenticated.
func (s *Store) User() (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || s.user == nil {
		return User{}, ErrNotAuthenticated
	}

	return *s.user, nil
}

// Subscribe registers fn for every state change and returns its unsubscribe func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Login exchanges the credentials for a session. Failures are recorded in
// State().Error and never returned.
func (s *Store) Login(ctx context.Context, username, password string) State {
	if err := validate.Struct(Credentials{Username: username, Password: password}); err != nil {
		s.update(func() {
			s.lastErr = "Username and password are required"
		})
		return s.State()
	}

	s.update(func() {
		s.loading = true
		s.lastErr = ""
	})

	user, err := s.auth.Authenticate(ctx, username, password)

	if err == nil {
		user.TokenExpiration, err = tokenExpiration(user.Token)
	}

	if err != nil {
		s.log.Warn("login failed", zap.String("username", username), zap.Error(err))
		s.update(func() {
			s.loading = false
			s.lastErr = loginErrorMessage(err)
		})
		return s.State()
	}

	s.mu.Lock()
	s.stopExpiry()
	s.generation++
	s.user = &user
	s.authenticated = true
	s.loading = false
	s.lastErr = ""
	s.persist()
	s.scheduleExpiry()
	state := s.snapshot()
	listeners := s.listenerList()
	s.mu.Unlock()

	s.log.Info("user logged in", zap.String("userId", user.ID), zap.Int64("tokenExpiration", user.TokenExpiration))
	emit(listeners, state)

	return state
}

// Logout clears the session and cancels its pending expiry. It is idempotent.
func (s *Store) Logout() {
	s.update(func() {
		s.clear()
	})
}

// CheckAuthStatus enforces the expiry of a restored session: an expired one is
// logged out with a notice, a live one gets its expiry rescheduled.
func (s *Store) CheckAuthStatus(ctx context.Context) {
	s.mu.Lock()

	if s.user == nil || !s.authenticated {
		s.mu.Unlock()
		return
	}

	exp := s.user.TokenExpiration

	if exp != 0 && s.now().UnixMilli() > exp {
		s.clear()
		state := s.snapshot()
		listeners := s.listenerList()
		s.mu.Unlock()

		s.log.Info("restored session already expired")
		emit(listeners, state)
		s.notifyExpired(ctx)
		return
	}

	s.stopExpiry()
	s.scheduleExpiry()
	s.mu.Unlock()
}

// Rehydrate restores the persisted entry then runs CheckAuthStatus. From then
// on the store follows changes other stores save under the same entry.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.watch.Do(func() {
		unsubscribe := s.storage.Subscribe(s.entry, s.entryChanged)
		s.mu.Lock()
		s.unsubscribe = unsubscribe
		s.mu.Unlock()
	})

	data, err := s.storage.Load(ctx, s.entry)

	if errors.Is(err, ErrEntryNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	return s.restore(ctx, data)
}

// Close stops the pending expiry task and stops following the storage.
func (s *Store) Close() {
	s.mu.Lock()
	s.stopExpiry()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// entryChanged runs inside Save, possibly while this store holds mu for its
// own persist, so anything but its own write is reloaded on another goroutine.
func (s *Store) entryChanged(data []byte) {
	if s.ownWrite(data) {
		return
	}

	go s.reload()
}

func (s *Store) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := s.storage.Load(ctx, s.entry)

	if err != nil {
		s.log.Warn("failed to reload session", zap.String("entry", s.entry), zap.Error(err))
		return
	}

	if s.ownWrite(data) {
		return
	}

	if err := s.restore(ctx, data); err != nil {
		s.log.Warn("failed to reload session", zap.String("entry", s.entry), zap.Error(err))
		return
	}

	s.log.Debug("session reloaded from storage", zap.String("entry", s.entry))
	s.update(func() {})
}

func (s *Store) ownWrite(data []byte) bool {
	last := s.lastSaved.Load()
	return last != nil && *last == string(data)
}

func (s *Store) restore(ctx context.Context, data []byte) error {
	var envelope persistedEnvelope

	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode session: %w", err)
	}

	s.mu.Lock()
	s.stopExpiry()
	s.generation++
	s.user = envelope.State.User
	s.authenticated = envelope.State.Authenticated && envelope.State.User != nil
	s.mu.Unlock()

	s.CheckAuthStatus(ctx)

	return nil
}

func (s *Store) expire(generation uint64) {
	s.mu.Lock()

	if generation != s.generation || !s.authenticated {
		s.mu.Unlock()
		return
	}

	s.clear()
	state := s.snapshot()
	listeners := s.listenerList()
	s.mu.Unlock()

	s.log.Info("session expired")
	emit(listeners, state)
	s.notifyExpired(context.Background())
}

func (s *Store) notifyExpired(ctx context.Context) {
	s.notifier.Notify(ctx, notify.Notice{Level: notify.LevelInfo, Title: "Session", Message: expiredMessage})
}

// update applies fn under the lock then notifies listeners.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	state := s.snapshot()
	listeners := s.listenerList()
	s.mu.Unlock()

	emit(listeners, state)
}

// clear must be called with mu held.
func (s *Store) clear() {
	s.stopExpiry()
	s.generation++
	s.user = nil
	s.authenticated = false
	s.lastErr = ""
	s.persist()
}

// scheduleExpiry must be called with mu held.
func (s *Store) scheduleExpiry() {
	if s.user == nil || s.user.TokenExpiration == 0 {
		return
	}

	remaining := time.Duration(s.user.TokenExpiration-s.now().UnixMilli()) * time.Millisecond

	if remaining <= 0 {
		return
	}

	generation := s.generation
	s.expiry = s.afterFunc(remaining, func() { s.expire(generation) })
}

// stopExpiry must be called with mu held.
func (s *Store) stopExpiry() {
	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
}

// persist must be called with mu held.
func (s *Store) persist() {
	data, err := json.Marshal(persistedEnvelope{
		State: persistedState{User: s.user, Authenticated: s.authenticated},
	})

	if err != nil {
		s.log.Error("failed to encode session", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	saved := string(data)
	s.lastSaved.Store(&saved)

	if err := s.storage.Save(ctx, s.entry, data); err != nil {
		s.log.Error("failed to persist session", zap.String("entry", s.entry), zap.Error(err))
	}
}

func (s *Store) snapshot() State {
	state := State{
		Authenticated: s.authenticated,
		Loading:       s.loading,
		Error:         s.lastErr,
	}

	if s.user != nil {
		u := *s.user
		state.User = &u
	}

	return state
}

func (s *Store) listenerList() []func(State) {
	list := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		list = append(list, fn)
	}
	return list
}

func emit(listeners []func(State), state State) {
	for _, fn := range listeners {
		fn(state)
	}
}

func loginErrorMessage(err error) string {
	if errors.Is(err, ErrInvalidToken) {
		return "Login failed: invalid access token"
	}

	var msgErr interface{ UserMessage() string }
	if errors.As(err, &msgErr) {
		return msgErr.UserMessage()
	}

	return err.Error()
}
