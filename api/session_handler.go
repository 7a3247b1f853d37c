package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/fitclass-booking/session"
)

//go:generate mockgen -source=session_handler.go -destination=mocks/session_handler.go -package=mocks

type SessionStore interface {
	Login(ctx context.Context, username, password string) session.State
	Logout()
	State() session.State
	User() (session.User, error)
}

type SessionHandler struct {
	store SessionStore
}

func NewSessionHandler(store SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}

func (h *SessionHandler) Get(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.store.State())
}

// Login always answers with the session state; a rejected login carries its
// message in "error" and a 401.
func (h *SessionHandler) Login(c *gin.Context) {
	var credentials session.Credentials

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to parse JSON body",
		})
		return
	}

	state := h.store.Login(c.Request.Context(), credentials.Username, credentials.Password)

	if !state.Authenticated {
		c.IndentedJSON(http.StatusUnauthorized, state)
		return
	}

	c.IndentedJSON(http.StatusOK, state)
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.store.Logout()

	c.IndentedJSON(http.StatusOK, gin.H{"message": "logged out"})
}
