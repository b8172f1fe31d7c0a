package handlers

import (
	"net/http"
	"strconv"

	"sop-manager/helper"
	"sop-manager/models"

	"github.com/gin-gonic/gin"
)

var httpHelper = &helper.HTTPHelper{}

// currentActor reconstructs the authenticated caller from the context values
// set by the auth middleware.
func currentActor(c *gin.Context) models.Actor {
	actor := models.Actor{}
	if v, ok := c.Get("user_id"); ok {
		actor.ID = v.(uint)
	}
	if v, ok := c.Get("name"); ok {
		actor.Name = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		actor.Role = models.UserRole(v.(string))
	}
	return actor
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	c.JSON(httpHelper.GetStatusCode(err), gin.H{"error": err.Error()})
}
