package handler

import (
	"net/http"

	"github.com/mikehquan19/bettero-app/internal/models"
	"github.com/mikehquan19/bettero-app/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by the auth middleware.
// Writes the error response itself when the user is missing.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}
