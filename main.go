package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gostock/adapters/excel"
	"gostock/app"
	"gostock/internal"
	"gostock/internal/config"
	"gostock/internal/session"
	"gostock/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	gin.SetMode(appConfig.Server.GinMode)

	storeConfig := excel.DefaultStoreConfig()
	storeConfig.SheetName = appConfig.Data.SheetName
	storeConfig.Logger = logger
	service := app.NewStockService(excel.NewStore(storeConfig), appConfig.Data.Dir, logger)

	sessions := session.NewStore(session.Defaults{
		FileName:    appConfig.Data.DefaultFile,
		ColumnCount: appConfig.Data.DefaultColumns,
	}, appConfig.Session.TTL)

	server, err := ui.NewServer(service, sessions, ui.Config{
		Title:         appConfig.UI.Title,
		IntroMarkdown: appConfig.UI.IntroMarkdown,
		CookieName:    appConfig.Session.CookieName,
		CookieMaxAge:  int(appConfig.Session.TTL / time.Second),
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create UI server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, server.Handler(), sessions, logger); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// run serves until ctx is done, then shuts down within the configured timeout
func run(ctx context.Context, appConfig *config.Config, handler http.Handler, sessions *session.Store, logger *internal.Logger) error {
	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", appConfig.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting stock UI on http://localhost:%s (data dir %s)", appConfig.Server.Port, appConfig.Data.Dir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := sessions.Purge(); n > 0 {
					logger.Debug("[Session] purged %d idle sessions", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
