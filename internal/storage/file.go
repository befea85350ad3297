package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
)

// FileStorage keeps both collections in memory, backed by JSON files.
// Mutations signal background workers that flush after a short debounce
// delay; Close flushes synchronously. Iteration order is insert order;
// userIndex maps id to user and userExerciseIndex maps userID to that
// user's exercises in insert order.
type FileStorage struct {
	users             []*internal.User
	userIndex         map[string]*internal.User
	exercises         []*internal.Exercise
	userExerciseIndex map[string][]*internal.Exercise
	mu                sync.RWMutex
	usersFile         string
	exercisesFile     string
	saveUsersChan     chan struct{}
	saveExercisesChan chan struct{}
	shutdownChan      chan struct{}
	saveDelay         time.Duration
	logger            internal.Logger
}

func NewFileStorage(usersFile, exercisesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		userIndex:         make(map[string]*internal.User),
		userExerciseIndex: make(map[string][]*internal.Exercise),
		usersFile:         usersFile,
		exercisesFile:     exercisesFile,
		saveUsersChan:     make(chan struct{}, 1),
		saveExercisesChan: make(chan struct{}, 1),
		shutdownChan:      make(chan struct{}),
		saveDelay:         500 * time.Millisecond,
		logger:            logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadExercises(); err != nil {
		logger.Errorf("storage: failed to load exercises: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers)
	go s.saveWorker(s.saveExercisesChan, s.saveExercises)

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users = append(s.users, u)
		s.userIndex[u.ID] = u
	}
	return nil
}

func (s *FileStorage) loadExercises() error {
	file, err := os.Open(s.exercisesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var exercises []*internal.Exercise
	if err := json.NewDecoder(file).Decode(&exercises); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range exercises {
		s.exercises = append(s.exercises, e)
		s.userExerciseIndex[e.UserID] = append(s.userExerciseIndex[e.UserID], e)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]*internal.User, len(s.users))
	copy(users, s.users)
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveExercises() error {
	s.mu.RLock()
	exercises := make([]*internal.Exercise, len(s.exercises))
	copy(exercises, s.exercises)
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.exercisesFile, exercises)
}

func (s *FileStorage) saveWorker(signal chan struct{}, save func() error) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the background workers and flushes pending data.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	if err := s.saveUsers(); err != nil {
		return err
	}
	return s.saveExercises()
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(_ context.Context, user *internal.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.users = append(s.users, user)
	s.userIndex[user.ID] = user
	s.mu.Unlock()

	signalSave(s.saveUsersChan)
	return nil
}

func (s *FileStorage) GetUser(_ context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.userIndex[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *FileStorage) ListUsers(_ context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]internal.User, len(s.users))
	for i, u := range s.users {
		users[i] = *u
	}
	return users, nil
}

func (s *FileStorage) DeleteAllUsers(_ context.Context) error {
	s.mu.Lock()
	s.users = nil
	s.userIndex = make(map[string]*internal.User)
	s.mu.Unlock()

	signalSave(s.saveUsersChan)
	return nil
}

// --- ExerciseRepository ---

func (s *FileStorage) CreateExercise(_ context.Context, exercise *internal.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.exercises = append(s.exercises, exercise)
	s.userExerciseIndex[exercise.UserID] = append(s.userExerciseIndex[exercise.UserID], exercise)
	s.mu.Unlock()

	signalSave(s.saveExercisesChan)
	return nil
}

func (s *FileStorage) ListExercises(_ context.Context) ([]internal.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exercises := make([]internal.Exercise, len(s.exercises))
	for i, e := range s.exercises {
		exercises[i] = *e
	}
	return exercises, nil
}

func (s *FileStorage) ListUserExercises(_ context.Context, userID string, limit int64) ([]internal.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.userExerciseIndex[userID]
	if limit > 0 && int64(len(all)) > limit {
		all = all[:limit]
	}
	exercises := make([]internal.Exercise, len(all))
	for i, e := range all {
		exercises[i] = *e
	}
	return exercises, nil
}

func (s *FileStorage) DeleteAllExercises(_ context.Context) error {
	s.mu.Lock()
	s.exercises = nil
	s.userExerciseIndex = make(map[string][]*internal.Exercise)
	s.mu.Unlock()

	signalSave(s.saveExercisesChan)
	return nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ ExerciseRepository = (*FileStorage)(nil)
