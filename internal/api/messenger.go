package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/mpetrenko/go-messenger/internal/config"
	"github.com/mpetrenko/go-messenger/internal/database"
	"github.com/mpetrenko/go-messenger/internal/session"
	"github.com/mpetrenko/go-messenger/internal/stats"
	"github.com/mpetrenko/go-messenger/internal/uploads"
)

type MessengerApp struct {
	log      *log.Logger
	db       database.MessengerRepository
	sessions session.SessionStore
	files    *uploads.FileStore
	stats    stats.StatsProvider
	mux      *http.Server
}

func NewMessengerApp(mux *http.ServeMux, logger *log.Logger, db database.MessengerRepository, sessions session.SessionStore, files *uploads.FileStore, st stats.StatsProvider, cfg *config.Config) *MessengerApp {
	s := &MessengerApp{
		log:      logger,
		db:       db,
		sessions: sessions,
		files:    files,
		stats:    st,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.HandleFunc("POST /api/register", s.register)
	mux.HandleFunc("POST /api/login", s.login)
	mux.HandleFunc("POST /api/logout", s.authMiddleware(s.logout))
	mux.HandleFunc("GET /api/users", s.authMiddleware(s.listUsers))
	mux.HandleFunc("GET /api/profile", s.authMiddleware(s.profile))
	mux.HandleFunc("GET /api/messages/{userId}", s.authMiddleware(s.getConversation))
	mux.HandleFunc("POST /api/messages", s.authMiddleware(s.sendMessage))
	mux.HandleFunc("GET /api/favorites", s.authMiddleware(s.listFavorites))
	mux.HandleFunc("POST /api/favorites", s.authMiddleware(s.addFavorite))
	mux.HandleFunc("POST /api/upload", s.upload)
	mux.HandleFunc("POST /api/update_profile", s.authMiddleware(s.updateProfile))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *MessengerApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *MessengerApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
