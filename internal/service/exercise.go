package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/storage"
)

// ErrUserNotFound is returned when the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// DateLayout is the normalized calendar-date form every stored and
// returned date uses: weekday, month, zero-padded day, year.
const DateLayout = "Mon Jan 02 2006"

type CreateExerciseRequest struct {
	Description string `json:"description" form:"description" validate:"required"`
	Duration    string `json:"duration" form:"duration" validate:"required"`
	Date        string `json:"date" form:"date"`
}

func ValidateCreateExerciseRequest(req *CreateExerciseRequest) error {
	return validate.Struct(req)
}

// dateInputLayouts are the accepted shapes for a caller-supplied date.
var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	DateLayout,
	"Jan 02 2006",
	"January 2, 2006",
}

// NormalizeDate turns a caller-supplied date into DateLayout form. An
// empty input means today. An unparseable input normalizes to the
// literal "Invalid Date"; the request still succeeds.
func NormalizeDate(raw string) string {
	if raw == "" {
		return time.Now().Format(DateLayout)
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout)
		}
	}
	return "Invalid Date"
}

// CreateExercise resolves the user, stamps and normalizes the date,
// and persists the exercise with the username denormalized from the
// resolved user. The existence check happens once, here; nothing
// re-validates it afterwards.
func CreateExercise(ctx context.Context, users storage.UserRepository, exercises storage.ExerciseRepository, userID string, req *CreateExerciseRequest) (*internal.User, *internal.Exercise, error) {
	user, err := users.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	exercise := &internal.Exercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: req.Description,
		Duration:    req.Duration,
		Date:        NormalizeDate(req.Date),
	}
	if err := exercises.CreateExercise(ctx, exercise); err != nil {
		return nil, nil, err
	}
	return user, exercise, nil
}

// LogQuery carries the parsed query parameters of a log request.
type LogQuery struct {
	From  time.Time
	To    time.Time
	Limit int64
}

// ParseLogQuery applies the defaults: From falls back to the epoch, To
// to now. A limit that is absent, zero, or unparseable means unlimited.
func ParseLogQuery(from, to, limit string) LogQuery {
	q := LogQuery{From: time.Unix(0, 0).UTC(), To: time.Now()}
	if from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q.From = t
		}
	}
	if to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q.To = t
		}
	}
	if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n > 0 {
		q.Limit = n
	}
	return q
}

// QueryLog resolves the user and fetches at most q.Limit of their
// exercises. q.From and q.To are defaulted and carried for callers but
// do not constrain the store query; only the limit does.
func QueryLog(ctx context.Context, users storage.UserRepository, exercises storage.ExerciseRepository, userID string, q LogQuery) (*internal.User, []internal.Exercise, error) {
	user, err := users.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	list, err := exercises.ListUserExercises(ctx, user.ID, q.Limit)
	if err != nil {
		return nil, nil, err
	}
	return user, list, nil
}
