package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/fitclass-booking/api"
	mock_api "github.com/hanksha/fitclass-booking/api/mocks"
	"github.com/hanksha/fitclass-booking/session"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupSessionRouter(t *testing.T) (*gin.Engine, *gomock.Controller, *mock_api.MockSessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	mockStore := mock_api.NewMockSessionStore(ctrl)
	api.NewSessionHandler(mockStore).Register(router.Group("/api/v1/session"))

	protected := router.Group("/api/v1/bookings")
	protected.Use(api.SessionAuth(mockStore))
	protected.GET("", func(c *gin.Context) {
		user := c.MustGet("user").(session.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	return router, ctrl, mockStore
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, ctrl, mockStore := setupSessionRouter(t)
		defer ctrl.Finish()

		mockStore.EXPECT().Login(gomock.Any(), "emilys", "emilyspass").
			Return(session.State{User: &emily, Authenticated: true}).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/session/login", bytes.NewBufferString(`{"username":"emilys","password":"emilyspass"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{
			"user": {"id":"1","username":"emilys","email":"","firstName":"","lastName":"","token":"access-token","tokenExpiration":0},
			"isAuthenticated": true,
			"isLoading": false
		}`, w.Body.String())
	})

	t.Run("rejected", func(t *testing.T) {
		router, ctrl, mockStore := setupSessionRouter(t)
		defer ctrl.Finish()

		mockStore.EXPECT().Login(gomock.Any(), "emilys", "wrong").
			Return(session.State{Error: "Invalid credentials"}).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/session/login", bytes.NewBufferString(`{"username":"emilys","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 401, w.Code)
		assert.JSONEq(t, `{"user":null,"isAuthenticated":false,"isLoading":false,"error":"Invalid credentials"}`, w.Body.String())
	})

	t.Run("bad json", func(t *testing.T) {
		router, ctrl, _ := setupSessionRouter(t)
		defer ctrl.Finish()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/session/login", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code)
		assert.JSONEq(t, `{"error":"failed to parse JSON body"}`, w.Body.String())
	})
}

func TestLogout(t *testing.T) {
	router, ctrl, mockStore := setupSessionRouter(t)
	defer ctrl.Finish()

	mockStore.EXPECT().Logout().Times(1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/session/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"message":"logged out"}`, w.Body.String())
}

func TestGetSession(t *testing.T) {
	router, ctrl, mockStore := setupSessionRouter(t)
	defer ctrl.Finish()

	mockStore.EXPECT().State().Return(session.State{}).Times(1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/session", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"user":null,"isAuthenticated":false,"isLoading":false}`, w.Body.String())
}

func TestSessionAuth(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		router, ctrl, mockStore := setupSessionRouter(t)
		defer ctrl.Finish()

		mockStore.EXPECT().User().Return(emily, nil).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
	})

	t.Run("no session", func(t *testing.T) {
		router, ctrl, mockStore := setupSessionRouter(t)
		defer ctrl.Finish()

		mockStore.EXPECT().User().Return(session.User{}, session.ErrNotAuthenticated).Times(1)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, 401, w.Code)
		assert.JSONEq(t, `{"error":"missing authentication"}`, w.Body.String())
	})
}
