package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ecoscan/ecoscan/internal/backup"
	"github.com/ecoscan/ecoscan/internal/classify"
	"github.com/ecoscan/ecoscan/internal/email"
	"github.com/ecoscan/ecoscan/internal/handler"
	"github.com/ecoscan/ecoscan/internal/ledger"
	"github.com/ecoscan/ecoscan/internal/middleware"
	"github.com/ecoscan/ecoscan/internal/push"
	"github.com/ecoscan/ecoscan/internal/rewards"
	"github.com/ecoscan/ecoscan/internal/store"
	ws "github.com/ecoscan/ecoscan/internal/websocket"
)

// Config holds server-level configuration.
type Config struct {
	SecureCookie    bool
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Backup          backup.Config
}

type Server struct {
	db  *sql.DB
	hub *ws.Hub

	authH   *handler.AuthHandler
	scanH   *handler.ScanHandler
	rewardH *handler.RewardHandler
	centerH *handler.CenterHandler
	pushH   *handler.PushHandler
	backupH *handler.BackupHandler

	sessionStore  *store.SessionStore
	userStore     *store.UserStore
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, source *classify.Source, emailClient *email.Client, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	stateStore := store.NewUserStateStore(db)
	redemptionStore := store.NewRedemptionStore(db)
	scanStore := store.NewScanEventStore(db)
	centerStore := store.NewCenterStore(db)
	pushStore := store.NewPushStore(db)
	backupStore := store.NewBackupStore(db)

	ledgerSvc := ledger.NewService(stateStore, ledger.Badges, logger.With("component", "ledger"))
	engine := rewards.NewEngine(ledgerSvc, redemptionStore, logger.With("component", "rewards"))

	pushSvc := push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	notifier := push.NewNotifier(pushSvc, pushStore, logger.With("component", "push"))

	backupMgr := backup.NewManager(cfg.Backup, db, backupStore, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, sessionStore, ledgerSvc, emailClient, cfg.SecureCookie, logger.With("component", "auth")),
		scanH:         handler.NewScanHandler(source, scanStore, ledgerSvc, hub, notifier, logger.With("component", "scan")),
		rewardH:       handler.NewRewardHandler(engine, stateStore, emailClient, hub, notifier, logger.With("component", "reward")),
		centerH:       handler.NewCenterHandler(centerStore, logger.With("component", "center")),
		pushH:         handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler")),
		backupH:       handler.NewBackupHandler(backupMgr, backupStore, logger.With("component", "backup_handler")),
		sessionStore:  sessionStore,
		userStore:     userStore,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	// Scan routes
	mux.HandleFunc("POST /api/scans", s.scanH.Create)
	mux.HandleFunc("GET /api/scans", s.scanH.List)
	mux.HandleFunc("GET /api/stats/summary", s.scanH.Summary)

	// Reward routes
	mux.HandleFunc("GET /api/rewards", s.rewardH.Catalog)
	mux.HandleFunc("POST /api/rewards/redeem", s.rewardH.Redeem)
	mux.HandleFunc("GET /api/redemptions", s.rewardH.History)
	mux.HandleFunc("GET /api/leaderboard", s.rewardH.Leaderboard)
	mux.HandleFunc("GET /api/badges", s.rewardH.Badges)

	// Recycling center routes
	mux.HandleFunc("GET /api/centers", s.centerH.List)

	// Push notification routes
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
	mux.HandleFunc("POST /api/push/test", s.pushH.TestNotification)

	// Backup routes
	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("GET /api/backups/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backups/run", s.backupH.RunNow)
	mux.HandleFunc("POST /api/backups/{id}/restore", s.backupH.Restore)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
