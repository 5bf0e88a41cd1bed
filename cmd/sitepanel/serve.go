package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/sitepanel"
	"github.com/eringen/sitepanel/siteconfig"
	"github.com/eringen/sitepanel/views"
)

var ephemeral bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page and the admin panel",
	Long: `The serve command starts the HTTP server. The site configuration is read
from the SQLite database, or kept in memory only with --ephemeral.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []sitepanel.Option
		opts = append(opts, sitepanel.WithStaticDir(appSettings.StaticDir))
		if ephemeral {
			opts = append(opts, sitepanel.WithSlot(siteconfig.NewMemorySlot()))
		}
		app := sitepanel.New(appSettings.appConfig(), views.Defaults(), opts...)
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := app.Setup(ctx); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- app.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		app.Echo.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	serveCmd.Flags().String("url", "", "canonical site URL")
	serveCmd.Flags().String("static-dir", "", "directory for static files and uploads (default public)")
	serveCmd.Flags().String("log-level", "", "debug, info, warn or error")
	serveCmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep the site configuration in memory only")
	rootCmd.AddCommand(serveCmd)
}
