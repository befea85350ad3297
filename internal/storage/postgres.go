package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
)

// PostgresStorage is the relational backend. Schema:
//
//	users     (id TEXT PRIMARY KEY, username TEXT NOT NULL)
//	exercises (id TEXT PRIMARY KEY, user_id TEXT NOT NULL, username TEXT NOT NULL,
//	           description TEXT NOT NULL, duration TEXT NOT NULL, logged_date TEXT NOT NULL)
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, username) VALUES ($1, $2)`,
		user.ID, user.Username)
	if err != nil {
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, username FROM users WHERE id = $1`, id)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, username FROM users`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []internal.User
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *PostgresStorage) DeleteAllUsers(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM users`); err != nil {
		p.logger.Errorf("failed to delete users: %v", err)
		return err
	}
	return nil
}

// --- ExerciseRepository ---

func (p *PostgresStorage) CreateExercise(ctx context.Context, exercise *internal.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO exercises (id, user_id, username, description, duration, logged_date) VALUES ($1, $2, $3, $4, $5, $6)`,
		exercise.ID, exercise.UserID, exercise.Username, exercise.Description, exercise.Duration, exercise.Date)
	if err != nil {
		p.logger.Errorf("failed to insert exercise: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListExercises(ctx context.Context) ([]internal.Exercise, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, username, description, duration, logged_date FROM exercises`)
	if err != nil {
		p.logger.Errorf("failed to query exercises: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanExercises(rows)
}

func (p *PostgresStorage) ListUserExercises(ctx context.Context, userID string, limit int64) ([]internal.Exercise, error) {
	query := `SELECT id, user_id, username, description, duration, logged_date FROM exercises WHERE user_id = $1`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query exercises for user %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()
	return scanExercises(rows)
}

func (p *PostgresStorage) DeleteAllExercises(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM exercises`); err != nil {
		p.logger.Errorf("failed to delete exercises: %v", err)
		return err
	}
	return nil
}

func scanExercises(rows pgx.Rows) ([]internal.Exercise, error) {
	var exercises []internal.Exercise
	for rows.Next() {
		var e internal.Exercise
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ ExerciseRepository = (*PostgresStorage)(nil)
