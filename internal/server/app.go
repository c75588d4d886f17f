// Package server initializes and runs the weather-monitor application
// server. It wires the JSON-file collections, the session registry, the
// backup trigger and the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/tikaboopeak/weather-monitor/internal/logging"
	"github.com/tikaboopeak/weather-monitor/internal/server/backup"
	"github.com/tikaboopeak/weather-monitor/internal/server/config"
	"github.com/tikaboopeak/weather-monitor/internal/server/httpapi"
	"github.com/tikaboopeak/weather-monitor/internal/server/locations"
	"github.com/tikaboopeak/weather-monitor/internal/server/sessions"
	"github.com/tikaboopeak/weather-monitor/internal/server/users"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	locationService *locations.Service
	userService     *users.Service
	sessionService  *sessions.Service
	api             *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	ls := locations.NewService(locations.NewJSONFileRepository(c.DatabaseFile))
	us := users.NewService(users.NewJSONFileRepository(c.UsersFile))

	var trigger backup.Trigger
	if c.S3Bucket != "" {
		trigger = backup.NewS3Trigger(c, logger)
	} else {
		trigger = backup.NewScriptTrigger(c.BackupScript, logger)
	}

	ss := sessions.NewService(us, sessions.NewRegistry(), trigger, c.BackupLoginInterval, logger)

	api := httpapi.NewServer(ls, us, ss, c.WebRoot, logger)

	return &App{
		config:          c,
		logger:          logger,
		locationService: ls,
		userService:     us,
		sessionService:  ss,
		api:             api,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// tlsPair returns the cert/key paths when both exist in the TLS directory.
func (app *App) tlsPair() (string, string, bool) {
	certFile := filepath.Join(app.config.TLSDir, "cert.pem")
	keyFile := filepath.Join(app.config.TLSDir, "key.pem")

	if _, err := os.Stat(certFile); err != nil {
		return "", "", false
	}
	if _, err := os.Stat(keyFile); err != nil {
		return "", "", false
	}
	return certFile, keyFile, true
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	certFile, keyFile, useTLS := app.tlsPair()

	addr := app.config.EndpointAddr
	if useTLS {
		addr = app.config.EndpointAddrTLS
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: app.api.Router(),
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, release := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer release()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	var err error
	if useTLS {
		app.logger.Info(ctx, "Starting HTTPS server", "address", addr)
		err = srv.ListenAndServeTLS(certFile, keyFile)
	} else {
		app.logger.Info(ctx, "Starting HTTP server", "address", addr)
		err = srv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	// ListenAndServe returns as soon as Shutdown begins. In-flight requests
	// keep draining until Shutdown itself returns, so wait for it.
	<-shutdownDone
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
