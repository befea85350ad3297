package api

import (
	"github.com/gin-gonic/gin"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/storage"
)

// App is what handlers need from the rest of the process.
type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
	Exercises() storage.ExerciseRepository
}

// Server wires the repositories and logger into the route table.
type Server struct {
	logger    internal.Logger
	users     storage.UserRepository
	exercises storage.ExerciseRepository
}

func NewServer(logger internal.Logger, users storage.UserRepository, exercises storage.ExerciseRepository) *Server {
	return &Server{logger: logger, users: users, exercises: exercises}
}

func (s *Server) Logger() internal.Logger { return s.logger }

func (s *Server) Users() storage.UserRepository { return s.users }

func (s *Server) Exercises() storage.ExerciseRepository { return s.exercises }

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), CORSMiddleware())

	r.StaticFile("/", "./views/index.html")
	r.Static("/public", "./public")

	r.POST("/api/users", PostUser(s))
	r.GET("/api/users", GetUsers(s))
	// gin's tree cannot hold a static /delete segment beside the :id
	// wildcard, so bulk delete dispatches from the param route.
	r.GET("/api/users/:id", DeleteUsers(s))
	r.POST("/api/users/:id/exercises", PostExercise(s))
	r.GET("/api/users/:id/logs", GetLogs(s))
	r.GET("/api/exercises", GetExercises(s))
	r.GET("/api/exercises/delete", DeleteExercises(s))

	return r
}

var _ App = (*Server)(nil)
