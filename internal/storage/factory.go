package storage

import (
	"context"
	"fmt"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/config"
)

// New builds the backend selected by cfg.DBType and returns it with a
// disconnect function for process shutdown.
func New(ctx context.Context, cfg *config.Config, logger internal.Logger) (Store, func(context.Context) error, error) {
	switch cfg.DBType {
	case "mongo":
		s, err := NewMongoStorage(ctx, cfg.MongoURI, cfg.MongoDB, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "postgres":
		s, err := NewPostgresStorage(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { s.Close(); return nil }, nil
	case "file":
		s, err := NewFileStorage(cfg.UsersFile, cfg.ExercisesFile, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
