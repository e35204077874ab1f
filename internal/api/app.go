package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/semz-ui/mercial-backend/internal/config"
	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/server"
	"github.com/semz-ui/mercial-backend/internal/stats"
	"github.com/teris-io/shortid"
)

type MercialApp struct {
	log             *log.Logger
	db              database.MessengerRepository
	mux             *http.Server
	cs              *server.ChatServer
	stats           stats.StatsProvider
	signingKey      []byte
	allowedOrigins  []string
	generateShortId func() (string, error)
}

func NewMercialApp(mux *http.ServeMux, logger *log.Logger, cs *server.ChatServer,
	db database.MessengerRepository, su stats.StatsProvider, cfg *config.Config) *MercialApp {
	s := &MercialApp{
		log:             logger,
		db:              db,
		cs:              cs,
		stats:           su,
		signingKey:      cfg.SigningKey,
		allowedOrigins:  cfg.AllowedOrigins,
		generateShortId: shortid.Generate,
	}

	mux.HandleFunc("POST /api/auth/register", s.createAccount)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.session))
	mux.Handle("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.Handle("/api/account", s.authMiddleware(s.account))
	mux.Handle("GET /api/health", http.HandlerFunc(s.healthCheck))
	mux.Handle("POST /api/messages", s.authMiddleware(s.sendMessage))
	mux.Handle("GET /api/messages", s.authMiddleware(s.getMessages))
	mux.Handle("GET /api/messages/unread", s.authMiddleware(s.getUnreadMessages))
	mux.Handle("GET /api/conversations", s.authMiddleware(s.getConversations))
	mux.Handle("POST /api/conversations/group", s.authMiddleware(s.createGroup))
	mux.Handle("GET /ws", s.authMiddleware(s.serveWs))

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

func (s *MercialApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *MercialApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
