package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hanksha/fitclass-booking/notify"
	"go.uber.org/zap"
)

// isoMillis renders timestamps like JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

const (
	unknownClass    = "Unknown Class"
	unknownDetail   = "N/A"
	defaultLocation = "Main Studio"
)

//go:generate mockgen -source=booking_service.go -destination=mocks/booking_service.go -package=mocks

type RemoteStore interface {
	GetClasses(ctx context.Context) ([]FitnessClass, error)
	GetClass(ctx context.Context, id string) (FitnessClass, error)
	PatchClassRemaining(ctx context.Context, token, id string, remaining int) (FitnessClass, error)
	GetUser(ctx context.Context, id string) (UserDocument, error)
	PutUser(ctx context.Context, token string, doc UserDocument) (UserDocument, error)
	PatchUserBookings(ctx context.Context, token, id string, bookings []Booking) (UserDocument, error)
}

type Service struct {
	remote     RemoteStore
	cache      *QueryCache
	notifier   notify.Notifier
	log        *zap.Logger
	now        func() time.Time
	newID      func() string
	retries    int
	retryDelay func(attempt int) time.Duration
	listeners  []func(Changed)
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithRetries sets how many extra attempts a failed read gets. A nil delay
// keeps the exponential backoff capped at 30s.
func WithRetries(retries int, delay func(attempt int) time.Duration) Option {
	return func(s *Service) {
		s.retries = retries
		if delay != nil {
			s.retryDelay = delay
		}
	}
}

func NewService(remote RemoteStore, cache *QueryCache, notifier notify.Notifier, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		remote:     remote,
		cache:      cache,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewString,
		retries:    3,
		retryDelay: defaultRetryDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.OnChange(cache.Invalidate)

	return s
}

// OnChange registers fn for every successful or partially applied booking write.
func (s *Service) OnChange(fn func(Changed)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Service) FetchClasses(ctx context.Context) ([]FitnessClass, error) {
	if classes, found := s.cache.Classes(); found {
		return classes, nil
	}

	var classes []FitnessClass

	err := s.withRetry(ctx, "fetch classes", func() error {
		var err error
		classes, err = s.remote.GetClasses(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to fetch classes: %w", err)
	}

	if classes == nil {
		classes = []FitnessClass{}
	}

	s.cache.SetClasses(classes)

	return classes, nil
}

// FetchUserBookings returns ErrNoUser without any request when userID is empty.
func (s *Service) FetchUserBookings(ctx context.Context, userID string) ([]Booking, error) {
	if len(strings.TrimSpace(userID)) == 0 {
		return nil, ErrNoUser
	}

	doc, found := s.cache.User(userID)

	if !found {
		err := s.withRetry(ctx, "fetch user data", func() error {
			var err error
			doc, err = s.remote.GetUser(ctx, userID)
			return err
		})

		if err != nil {
			return nil, fmt.Errorf("failed to fetch user data: %w", err)
		}

		s.cache.SetUser(doc)
	}

	if doc.Bookings == nil {
		return []Booking{}, nil
	}

	return doc.Bookings, nil
}

// BookClass appends an upcoming booking for classID to the user's document
// then takes one seat off the class. A class without remaining seats fails
// with ErrClassFull before anything is written. The steps are independent
// requests; when the seat update fails the previous bookings are written back.
func (s *Service) BookClass(ctx context.Context, userID, token, classID string) (Booking, error) {
	if len(strings.TrimSpace(userID)) == 0 {
		return Booking{}, ErrNoUser
	}

	if len(strings.TrimSpace(classID)) == 0 {
		return Booking{}, fmt.Errorf("class id is required")
	}

	booking, err := s.bookClass(ctx, userID, token, classID)

	if err != nil {
		s.log.Warn("failed to book class", zap.String("userId", userID), zap.String("classId", classID), zap.Error(err))
		s.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Title: "Booking", Message: fmt.Sprintf("Failed to book class. %v", err)})
		return Booking{}, err
	}

	s.log.Info("class booked", zap.String("userId", userID), zap.String("classId", classID), zap.String("bookingId", booking.ID))
	s.notifier.Notify(ctx, notify.Notice{Level: notify.LevelSuccess, Title: "Booking", Message: "Class booked successfully!"})

	return booking, nil
}

func (s *Service) bookClass(ctx context.Context, userID, token, classID string) (Booking, error) {
	user, err := s.remote.GetUser(ctx, userID)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch user data: %w", err)
	}

	for _, b := range user.Bookings {
		if b.ClassID == classID && b.Status.Active() {
			return Booking{}, ErrDuplicateBooking
		}
	}

	class, err := s.remote.GetClass(ctx, classID)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch class: %w", err)
	}

	if class.Remaining <= 0 {
		return Booking{}, ErrClassFull
	}

	booking := Booking{
		ID:       s.newID(),
		ClassID:  classID,
		Status:   StatusUpcoming,
		BookedAt: s.now().UTC().Format(isoMillis),
	}

	original := user
	original.Bookings = slices.Clone(user.Bookings)
	user.Bookings = append(slices.Clone(user.Bookings), booking)

	if _, err := s.remote.PutUser(ctx, token, user); err != nil {
		return Booking{}, fmt.Errorf("failed to book class: %w", err)
	}

	if err := s.adjustRemaining(ctx, token, classID, -1); err != nil {
		sagaErr := &SagaError{Step: "take class seat", Err: err}

		if _, compErr := s.remote.PutUser(ctx, token, original); compErr != nil {
			sagaErr.CompErr = compErr
		} else {
			sagaErr.Compensated = true
		}

		s.publish(Changed{UserID: userID, ClassID: classID})

		return Booking{}, sagaErr
	}

	s.publish(Changed{UserID: userID, ClassID: classID})

	return booking, nil
}

// CancelBooking moves an upcoming booking to cancelled and gives its seat
// back. An unknown bookingID is a no-op.
func (s *Service) CancelBooking(ctx context.Context, userID, token, bookingID string) error {
	if len(strings.TrimSpace(userID)) == 0 {
		return ErrNoUser
	}

	classID, err := s.cancelBooking(ctx, userID, token, bookingID)

	if err != nil {
		s.log.Warn("failed to cancel booking", zap.String("userId", userID), zap.String("bookingId", bookingID), zap.Error(err))
		s.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Title: "Booking", Message: fmt.Sprintf("Failed to cancel booking. %v", err)})
		return err
	}

	if len(classID) == 0 {
		s.log.Debug("booking to cancel not found", zap.String("userId", userID), zap.String("bookingId", bookingID))
		return nil
	}

	s.log.Info("booking cancelled", zap.String("userId", userID), zap.String("classId", classID), zap.String("bookingId", bookingID))
	s.notifier.Notify(ctx, notify.Notice{Level: notify.LevelSuccess, Title: "Booking", Message: "Booking cancelled."})

	return nil
}

func (s *Service) cancelBooking(ctx context.Context, userID, token, bookingID string) (string, error) {
	user, err := s.remote.GetUser(ctx, userID)

	if err != nil {
		return "", fmt.Errorf("failed to fetch user data: %w", err)
	}

	idx := slices.IndexFunc(user.Bookings, func(b Booking) bool { return b.ID == bookingID })

	if idx < 0 {
		return "", nil
	}

	target := user.Bookings[idx]

	if !target.Status.CanTransitionTo(StatusCancelled) {
		return "", ErrInvalidBookingState
	}

	updated := slices.Clone(user.Bookings)
	updated[idx].Status = StatusCancelled

	if _, err := s.remote.PatchUserBookings(ctx, token, userID, updated); err != nil {
		return "", fmt.Errorf("failed to cancel booking: %w", err)
	}

	if err := s.adjustRemaining(ctx, token, target.ClassID, 1); err != nil {
		sagaErr := &SagaError{Step: "release class seat", Err: err}

		if _, compErr := s.remote.PatchUserBookings(ctx, token, userID, user.Bookings); compErr != nil {
			sagaErr.CompErr = compErr
		} else {
			sagaErr.Compensated = true
		}

		s.publish(Changed{UserID: userID, ClassID: target.ClassID})

		return "", sagaErr
	}

	s.publish(Changed{UserID: userID, ClassID: target.ClassID})

	return target.ClassID, nil
}

// adjustRemaining re-reads the class and writes remaining+delta. Concurrent
// writers can still push the result out of [0, capacity]; it is logged, not clamped.
func (s *Service) adjustRemaining(ctx context.Context, token, classID string, delta int) error {
	class, err := s.remote.GetClass(ctx, classID)

	if err != nil {
		return fmt.Errorf("failed to fetch class: %w", err)
	}

	remaining := class.Remaining + delta

	if remaining < 0 || remaining > class.Capacity {
		s.log.Warn("class remaining out of range",
			zap.String("classId", classID),
			zap.Int("remaining", remaining),
			zap.Int("capacity", class.Capacity))
	}

	if _, err := s.remote.PatchClassRemaining(ctx, token, classID, remaining); err != nil {
		return fmt.Errorf("failed to update class remaining: %w", err)
	}

	return nil
}

// Dashboard joins the user's bookings with the class list.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	bookings, err := s.FetchUserBookings(ctx, userID)

	if err != nil {
		return Dashboard{}, err
	}

	classes, err := s.FetchClasses(ctx)

	if err != nil {
		return Dashboard{}, err
	}

	byID := make(map[string]FitnessClass, len(classes))
	for _, c := range classes {
		byID[c.ID] = c
	}

	dashboard := Dashboard{Upcoming: []BookingDetails{}, Past: []BookingDetails{}}

	for _, b := range bookings {
		details := BookingDetails{
			Booking:    b,
			ClassName:  unknownClass,
			Time:       unknownDetail,
			Instructor: unknownDetail,
			Location:   defaultLocation,
		}

		if c, ok := byID[b.ClassID]; ok {
			details.ClassName = c.Name
			details.Time = c.Time
			details.Instructor = c.Instructor
		}

		if b.Status == StatusUpcoming {
			dashboard.Upcoming = append(dashboard.Upcoming, details)
		} else {
			dashboard.Past = append(dashboard.Past, details)
		}
	}

	return dashboard, nil
}

func (s *Service) publish(ev Changed) {
	for _, fn := range s.listeners {
		fn(ev)
	}
}

func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error

	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if attempt >= s.retries || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		s.log.Debug("retrying query", zap.String("op", op), zap.Int("attempt", attempt+1), zap.Error(err))

		select {
		case <-ctx.Done():
			return err
		case <-time.After(s.retryDelay(attempt)):
		}
	}
}

func defaultRetryDelay(attempt int) time.Duration {
	d := time.Second << attempt
	if d > 30*time.Second {
		return 30 * time.Second
	}
	return d
}
