package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/server/http/dto"
	"github.com/polkiloo/streakmart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentUsername extracts authenticated username from context.
func CurrentUsername(c *gin.Context) string {
	val, ok := c.Get(middleware.UsernameContextKey)
	if !ok {
		return ""
	}
	name, _ := val.(string)
	return name
}

func toUserResponse(usr *model.User) dto.UserResponse {
	return dto.UserResponse{ID: usr.ID, Username: usr.Username, Streak: usr.Streak}
}
