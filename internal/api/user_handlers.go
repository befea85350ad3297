package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/response"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/service"
)

func PostUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateUserRequest
		if err := c.ShouldBind(&req); err != nil {
			HandleStoreError(c, app.Logger(), err, "Error saving user")
			return
		}
		if err := service.ValidateCreateUserRequest(&req); err != nil {
			HandleStoreError(c, app.Logger(), err, "Error saving user")
			return
		}

		user, err := service.CreateUser(c.Request.Context(), app.Users(), &req)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Error saving user")
			return
		}
		c.JSON(http.StatusOK, response.NewUser(user))
	}
}

func GetUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.Users().ListUsers(c.Request.Context())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Error finding users")
			return
		}
		if len(users) == 0 {
			response.PlainText(c, "No users found")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// DeleteUsers serves GET /api/users/:id and only acts on the literal
// "delete" segment (see the route-table note in Router).
func DeleteUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("id") != "delete" {
			c.Status(http.StatusNotFound)
			return
		}
		if err := app.Users().DeleteAllUsers(c.Request.Context()); err != nil {
			HandleStoreError(c, app.Logger(), err, "Error deleting users")
			return
		}
		response.PlainText(c, "All users deleted")
	}
}
