// Package response holds the wire-contract shapes. Every endpoint
// answers HTTP 200; failures are in-body messages only, so the senders
// here never set an error status.
package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
)

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse echoes a created exercise. ID carries the owning
// user's id, not the exercise's. Duration is the coerced integer, or
// the original text when it does not parse as one.
type ExerciseResponse struct {
	ID          string      `json:"_id"`
	Username    string      `json:"username"`
	Date        string      `json:"date"`
	Duration    interface{} `json:"duration"`
	Description string      `json:"description"`
}

type LogEntry struct {
	Date        string      `json:"date"`
	Duration    interface{} `json:"duration"`
	Description string      `json:"description"`
}

type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

func NewUser(u *internal.User) UserResponse {
	return UserResponse{Username: u.Username, ID: u.ID}
}

func NewExercise(u *internal.User, e *internal.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          u.ID,
		Username:    u.Username,
		Date:        e.Date,
		Duration:    coerceDuration(e.Duration),
		Description: e.Description,
	}
}

func NewLog(u *internal.User, exercises []internal.Exercise) LogResponse {
	log := make([]LogEntry, 0, len(exercises))
	for _, e := range exercises {
		log = append(log, LogEntry{
			Date:        e.Date,
			Duration:    coerceDuration(e.Duration),
			Description: e.Description,
		})
	}
	return LogResponse{ID: u.ID, Username: u.Username, Count: len(log), Log: log}
}

// PlainText answers a human-readable confirmation or error message.
func PlainText(c *gin.Context, msg string) {
	c.String(http.StatusOK, msg)
}

// coerceDuration interprets the stored textual duration as an integer.
// Non-numeric values are echoed back unchanged, never rejected.
func coerceDuration(raw string) interface{} {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
