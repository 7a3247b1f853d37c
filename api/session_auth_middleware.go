package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionAuth rejects requests while no user is logged in and stores the
// session.User under "user" otherwise.
func SessionAuth(store SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := store.User()

		if err != nil {
			c.Error(err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication"})
			c.Abort()
			return
		}

		c.Set("user", user)
	}
}
