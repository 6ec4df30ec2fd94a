package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/shenikar/citizen_report/docs"
	v1 "github.com/shenikar/citizen_report/internal/handler/http/v1"
	"github.com/spf13/cobra"
)

// @title Citizen Report Client Gateway API
// @version 1.0
// @description Local gateway over the Citizen Report WordPress client: session, incident cache and reporting.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func newServeCommand(st *state) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := st.app
			log := a.Logger
			if port == "" {
				port = a.Config.HTTPPort
			}

			// Контекст для graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Запуск воркера уведомлений
			a.StartWorkers(ctx)

			gin.SetMode(gin.ReleaseMode)
			handler := v1.NewHandler(a.Auth, a.Incidents, a.Preferences, a.Geocoder, log, a.Config)
			router := v1.NewRouter(handler)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%s", port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()
			log.Infof("HTTP server started on port %s", port)

			select {
			case err := <-serveErr:
				if err != nil {
					return fmt.Errorf("error starting HTTP server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}
			log.Info("Received shutdown signal, shutting down server...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			log.Info("Server gracefully stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to HTTP_PORT)")
	return cmd
}
