package mockapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	bk "github.com/hanksha/fitclass-booking/booking"
	"github.com/hanksha/fitclass-booking/mockapi"
	"github.com/hanksha/fitclass-booking/mockapi/mockapitest"
	"github.com/stretchr/testify/require"
)

const token = "access-token"

var yoga = bk.FitnessClass{ID: "1", Name: "Yoga Basics", Time: "Mon 09:00", Instructor: "Anna", Capacity: 10, Remaining: 3}

func newServer(t *testing.T) (*mockapitest.Server, *mockapi.Client) {
	t.Helper()
	srv := mockapitest.NewServer(token)
	t.Cleanup(srv.Close)

	srv.Seed("classes", yoga)
	srv.Seed("users", map[string]any{
		"id":       "1",
		"username": "emilys",
		"email":    "emily@example.com",
		"phone":    "+81 965-431-3024",
		"bookings": []bk.Booking{{ID: "b1", ClassID: "1", Status: bk.StatusUpcoming, BookedAt: "2025-03-01T10:00:00Z"}},
	})

	return srv, mockapi.NewClient(srv.URL)
}

func TestGetClasses(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		_, client := newServer(t)

		classes, err := client.GetClasses(context.Background())

		require.NoError(t, err)
		require.Equal(t, []bk.FitnessClass{yoga}, classes)
	})

	t.Run("empty", func(t *testing.T) {
		srv := mockapitest.NewServer("")
		defer srv.Close()
		srv.SeedEmpty("classes")

		classes, err := mockapi.NewClient(srv.URL).GetClasses(context.Background())

		require.NoError(t, err)
		require.NotNil(t, classes)
		require.Empty(t, classes)
	})

	t.Run("server error", func(t *testing.T) {
		srv, client := newServer(t)
		srv.Fail(http.MethodGet, "/classes", http.StatusInternalServerError)

		_, err := client.GetClasses(context.Background())

		var statusErr *mockapi.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})
}

func TestGetClass(t *testing.T) {
	_, client := newServer(t)

	t.Run("found", func(t *testing.T) {
		class, err := client.GetClass(context.Background(), "1")

		require.NoError(t, err)
		require.Equal(t, yoga, class)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetClass(context.Background(), "404")

		require.ErrorIs(t, err, mockapi.ErrNotFound)
	})
}

func TestPatchClassRemaining(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, client := newServer(t)

		class, err := client.PatchClassRemaining(context.Background(), token, "1", 2)

		require.NoError(t, err)
		require.Equal(t, 2, class.Remaining)

		var stored bk.FitnessClass
		require.NoError(t, srv.Decode("classes", "1", &stored))
		require.Equal(t, 2, stored.Remaining)
		require.Equal(t, 10, stored.Capacity)
	})

	t.Run("missing token", func(t *testing.T) {
		_, client := newServer(t)

		_, err := client.PatchClassRemaining(context.Background(), "", "1", 2)

		var statusErr *mockapi.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	})
}

func TestUserDocument(t *testing.T) {
	t.Run("put keeps unknown fields", func(t *testing.T) {
		srv, client := newServer(t)

		user, err := client.GetUser(context.Background(), "1")
		require.NoError(t, err)
		require.Len(t, user.Bookings, 1)

		user.Bookings = append(user.Bookings, bk.Booking{ID: "b2", ClassID: "2", Status: bk.StatusUpcoming})

		updated, err := client.PutUser(context.Background(), token, user)
		require.NoError(t, err)
		require.Len(t, updated.Bookings, 2)

		var stored map[string]any
		require.NoError(t, srv.Decode("users", "1", &stored))
		require.Equal(t, "+81 965-431-3024", stored["phone"])
	})

	t.Run("patch bookings", func(t *testing.T) {
		srv, client := newServer(t)

		bookings := []bk.Booking{{ID: "b1", ClassID: "1", Status: bk.StatusCancelled, BookedAt: "2025-03-01T10:00:00Z"}}

		updated, err := client.PatchUserBookings(context.Background(), token, "1", bookings)

		require.NoError(t, err)
		require.Equal(t, bookings, updated.Bookings)
		require.Equal(t, "emilys", updated.Username)
		require.Equal(t, []string{"PATCH /users/1"}, srv.Writes())
	})
}

func TestBearerHeader(t *testing.T) {
	var got string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(yoga)
	}))
	defer srv.Close()

	_, err := mockapi.NewClient(srv.URL).PatchClassRemaining(context.Background(), "abc", "1", 1)

	require.NoError(t, err)
	require.Equal(t, "Bearer abc", got)
}
