package booking_test

import (
	"context"
	"testing"
	"time"

	bk "github.com/hanksha/fitclass-booking/booking"
	"github.com/hanksha/fitclass-booking/mockapi"
	"github.com/hanksha/fitclass-booking/mockapi/mockapitest"
	"github.com/hanksha/fitclass-booking/notify"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBookAndCancelAgainstMockAPI(t *testing.T) {
	srv := mockapitest.NewServer(token)
	defer srv.Close()

	srv.Seed("classes", bk.FitnessClass{ID: "1", Name: "Yoga Basics", Time: "Mon 09:00", Instructor: "Anna", Capacity: 10, Remaining: 3})
	srv.Seed("users", map[string]any{"id": userID, "username": "emilys", "email": "emily@example.com", "bookings": []any{}})

	ctx := context.Background()
	service := bk.NewService(mockapi.NewClient(srv.URL), bk.NewQueryCache(2*time.Minute), notify.Discard{}, zap.NewNop(),
		bk.WithRetries(0, func(int) time.Duration { return 0 }))

	classes, err := service.FetchClasses(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, classes[0].Remaining)

	booking, err := service.BookClass(ctx, userID, token, "1")
	require.NoError(t, err)
	require.Equal(t, bk.StatusUpcoming, booking.Status)

	classes, err = service.FetchClasses(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, classes[0].Remaining)

	dashboard, err := service.Dashboard(ctx, userID)
	require.NoError(t, err)
	require.Len(t, dashboard.Upcoming, 1)
	require.Equal(t, "Yoga Basics", dashboard.Upcoming[0].ClassName)
	require.Empty(t, dashboard.Past)

	_, err = service.BookClass(ctx, userID, token, "1")
	require.ErrorIs(t, err, bk.ErrDuplicateBooking)

	require.NoError(t, service.CancelBooking(ctx, userID, token, booking.ID))

	var class bk.FitnessClass
	require.NoError(t, srv.Decode("classes", "1", &class))
	require.Equal(t, 3, class.Remaining)

	bookings, err := service.FetchUserBookings(ctx, userID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.Equal(t, bk.StatusCancelled, bookings[0].Status)

	// a cancelled booking does not block booking the class again
	_, err = service.BookClass(ctx, userID, token, "1")
	require.NoError(t, err)
}

func TestBookCompensatesWhenSeatUpdateFails(t *testing.T) {
	srv := mockapitest.NewServer(token)
	defer srv.Close()

	srv.Seed("classes", bk.FitnessClass{ID: "1", Name: "Yoga Basics", Capacity: 10, Remaining: 3})
	srv.Seed("users", map[string]any{"id": userID, "username": "emilys", "phone": "555", "bookings": []any{}})
	srv.Fail("PATCH", "/classes/1", 500)

	service := bk.NewService(mockapi.NewClient(srv.URL), bk.NewQueryCache(time.Minute), notify.Discard{}, zap.NewNop())

	_, err := service.BookClass(context.Background(), userID, token, "1")

	var sagaErr *bk.SagaError
	require.ErrorAs(t, err, &sagaErr)
	require.True(t, sagaErr.Compensated)

	var user map[string]any
	require.NoError(t, srv.Decode("users", userID, &user))
	require.Empty(t, user["bookings"])
	require.Equal(t, "555", user["phone"])
	require.Equal(t, []string{"PUT /users/1", "PATCH /classes/1", "PUT /users/1"}, srv.Writes())
}

func TestBookFullClassAgainstMockAPI(t *testing.T) {
	srv := mockapitest.NewServer(token)
	defer srv.Close()

	srv.Seed("classes", bk.FitnessClass{ID: "1", Name: "Spin", Capacity: 5, Remaining: 0})
	srv.Seed("users", map[string]any{"id": userID, "username": "emilys", "bookings": []any{}})

	service := bk.NewService(mockapi.NewClient(srv.URL), bk.NewQueryCache(time.Minute), notify.Discard{}, zap.NewNop())

	for range 2 {
		_, err := service.BookClass(context.Background(), userID, token, "1")
		require.ErrorIs(t, err, bk.ErrClassFull)
	}

	var class bk.FitnessClass
	require.NoError(t, srv.Decode("classes", "1", &class))
	require.Equal(t, 0, class.Remaining)
	require.Empty(t, srv.Writes())
}
