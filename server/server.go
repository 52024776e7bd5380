package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AirFM/config"
	"AirFM/core/media"
	"AirFM/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestID returns the request ID stamped on ctx by the router
// middleware, or an empty string outside a request.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// NewRouter wires the AirFM HTTP surface onto a gorilla/mux router.
func NewRouter(lib *media.Library, cfg *config.Config) *mux.Router {
	catalogHandler := NewCatalogHandler(lib)
	streamHandler := NewStreamHandler(lib, cfg)

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, corsMiddleware)

	router.HandleFunc("/tracks", catalogHandler.ListTracksHandler).Methods(http.MethodGet)
	router.Handle("/stream/{filename:.+}", streamHandler).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/", catalogHandler.IndexHandler).Methods(http.MethodGet)

	return router
}

// Start initializes and starts the HTTP server, blocking until SIGINT or
// SIGTERM triggers a graceful shutdown.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	defer logger.Sync()

	lib, err := media.NewLibrary(cfg.MediaDir, cfg.ChunkSize)
	if err != nil {
		logger.Fatal("failed to open media library",
			logger.String("dir", cfg.MediaDir),
			logger.ErrorField(err))
	}

	if cfg.WatchLibrary {
		watcher, err := media.NewWatcher(lib)
		if err != nil {
			logger.Warn("library watcher disabled", logger.ErrorField(err))
		} else {
			defer watcher.Close()
		}
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     NewRouter(lib, cfg),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
		// No WriteTimeout: a range stream over a large file can
		// legitimately outlive any fixed deadline.
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			logger.String("addr", addr),
			logger.String("mediaDir", lib.Root()))
		logger.Info("list tracks via GET /tracks, stream via GET /stream/{filename}")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

// corsMiddleware allows browser audio players on other origins to issue
// range requests and read the range response headers.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Range")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range, Accept-Ranges")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware stamps each request with a correlation ID carried
// in the context and echoed in the X-Request-ID response header.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
