package app

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogapi/internal/config"
	"blogapi/internal/database"
	handlers "blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

// Application holds everything built once at startup.
type Application struct {
	Config   *config.Config
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Handlers *handlers.Handlers
	Router   http.Handler
}

// publicPaths are served without a bearer token. /auth/refresh checks its own
// refresh token.
var publicPaths = []string{
	"/auth/register",
	"/auth/login",
	"/auth/refresh",
	"/health",
}

func App(cfg *config.Config, log logrus.FieldLogger) (*Application, error) {
	// connection DB
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, log)
	handler := handlers.NewHandlers(services, db, log)

	return &Application{
		Config:   cfg,
		DB:       db,
		Repo:     repo,
		Services: services,
		Handlers: handler,
		Router:   NewRouter(handler, services.Auth, log),
	}, nil
}

func (a *Application) Close() error {
	return a.DB.CloseDB()
}

func NewRouter(handler *handlers.Handlers, authService service.AuthService, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", handler.Refresh).Methods(http.MethodPost)

	r.HandleFunc("/users", handler.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", handler.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}", handler.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", handler.UpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id:[0-9]+}", handler.DeleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)

	r.HandleFunc("/comments", handler.GetComments).Methods(http.MethodGet)
	r.HandleFunc("/comments", handler.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/comments/{id:[0-9]+}", handler.GetComment).Methods(http.MethodGet)
	r.HandleFunc("/comments/{id:[0-9]+}", handler.UpdateComment).Methods(http.MethodPut)
	r.HandleFunc("/comments/{id:[0-9]+}", handler.DeleteComment).Methods(http.MethodDelete)

	r.HandleFunc("/categories", handler.GetCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", handler.CreateCategory).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id:[0-9]+}", handler.GetCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}", handler.UpdateCategory).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id:[0-9]+}", handler.DeleteCategory).Methods(http.MethodDelete)

	return middleware.Chain(
		r,
		middleware.RecoverMiddleware(log),
		middleware.LoggingMiddleware(log),
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(authService, publicPaths...),
	)
}
