package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ecoscan/ecoscan/internal/backup"
	"github.com/ecoscan/ecoscan/internal/classify"
	"github.com/ecoscan/ecoscan/internal/database"
	"github.com/ecoscan/ecoscan/internal/email"
	"github.com/ecoscan/ecoscan/internal/logging"
	"github.com/ecoscan/ecoscan/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("ECOSCAN_LOG_LEVEL"), os.Getenv("ECOSCAN_LOG_FORMAT"))

	port := os.Getenv("ECOSCAN_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("ECOSCAN_DB_PATH")
	if dbPath == "" {
		dbPath = "ecoscan.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional remote inference; without it scans fall back to the mock draw.
	var sourceOpts []classify.Option
	if endpoint := os.Getenv("ECOSCAN_INFERENCE_URL"); endpoint != "" {
		remote := classify.NewHTTPRemote(endpoint, os.Getenv("ECOSCAN_INFERENCE_API_KEY"))
		sourceOpts = append(sourceOpts, classify.WithRemote(remote))
	}
	source := classify.NewSource(logger.With("component", "classify"), sourceOpts...)

	emailClient := email.NewClient(
		os.Getenv("ECOSCAN_POSTMARK_TOKEN"),
		os.Getenv("ECOSCAN_FROM_EMAIL"),
	)

	cfg := server.Config{
		SecureCookie:    os.Getenv("ECOSCAN_SECURE_COOKIE") == "true",
		VAPIDPublicKey:  os.Getenv("ECOSCAN_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("ECOSCAN_VAPID_PRIVATE_KEY"),
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  os.Getenv("ECOSCAN_S3_ENDPOINT"),
				Bucket:    os.Getenv("ECOSCAN_S3_BUCKET"),
				Region:    os.Getenv("ECOSCAN_S3_REGION"),
				AccessKey: os.Getenv("ECOSCAN_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("ECOSCAN_S3_SECRET_KEY"),
			},
			DBPath:        dbPath,
			Passphrase:    os.Getenv("ECOSCAN_BACKUP_PASSPHRASE"),
			ScheduleHour:  envInt("ECOSCAN_BACKUP_HOUR", 3),
			RetentionDays: envInt("ECOSCAN_BACKUP_RETENTION_DAYS", 30),
		},
	}

	srv := server.New(db, source, emailClient, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.BackupManager().Start(ctx)
	defer srv.BackupManager().Stop()

	// Periodic cleanup of expired sessions and stale rate-limit entries
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Warn("session cleanup", "error", err)
				} else if n > 0 {
					logger.Debug("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("ecoscan listening", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
