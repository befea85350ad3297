package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/response"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/service"
)

func PostExercise(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateExerciseRequest
		if err := c.ShouldBind(&req); err != nil {
			HandleStoreError(c, app.Logger(), err, "Error saving exercise")
			return
		}
		if err := service.ValidateCreateExerciseRequest(&req); err != nil {
			HandleStoreError(c, app.Logger(), err, "Error saving exercise")
			return
		}

		user, exercise, err := service.CreateExercise(c.Request.Context(), app.Users(), app.Exercises(), c.Param("id"), &req)
		if errors.Is(err, service.ErrUserNotFound) {
			// Same 200 path as success, message in the body.
			HandleStoreError(c, app.Logger(), err, "Error finding user")
			return
		}
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Error saving exercise")
			return
		}
		c.JSON(http.StatusOK, response.NewExercise(user, exercise))
	}
}

func GetExercises(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		exercises, err := app.Exercises().ListExercises(c.Request.Context())
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Error finding exercises")
			return
		}
		if len(exercises) == 0 {
			response.PlainText(c, "No exercises found")
			return
		}
		c.JSON(http.StatusOK, exercises)
	}
}

func DeleteExercises(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Exercises().DeleteAllExercises(c.Request.Context()); err != nil {
			HandleStoreError(c, app.Logger(), err, "Error deleting exercises")
			return
		}
		response.PlainText(c, "All exercises deleted")
	}
}

// GetLogs answers the shaped, count-limited log. Unlike exercise
// creation, a missing user here is a JSON error object.
func GetLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := service.ParseLogQuery(c.Query("from"), c.Query("to"), c.Query("limit"))
		app.Logger().Debugf("log query user=%s from=%s to=%s limit=%d",
			c.Param("id"), q.From.Format("2006-01-02"), q.To.Format("2006-01-02"), q.Limit)

		user, exercises, err := service.QueryLog(c.Request.Context(), app.Users(), app.Exercises(), c.Param("id"), q)
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Error finding exercises")
			return
		}
		c.JSON(http.StatusOK, response.NewLog(user, exercises))
	}
}
