package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/cli/config"
	controller "github.com/secmon-lab/kadr/pkg/controller/http"
	"github.com/secmon-lab/kadr/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		backendCfg   config.Backend
		firestoreCfg config.Firestore
	)

	flags := joinFlags(
		serverCfg.Flags(),
		backendCfg.Flags(),
		firestoreCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server exposing the create-test-admins function",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting kadr server",
				slog.Any("server", serverCfg),
				slog.Any("backend", backendCfg),
				slog.Any("firestore", firestoreCfg),
			)

			roles, err := firestoreCfg.ConfigureOptional(ctx)
			if err != nil {
				return err
			}
			if roles != nil {
				defer roles.Close()
			}

			connect, err := backendCfg.Connector(ctx, roles)
			if err != nil {
				return err
			}

			// Secrets are validated per invocation so a misconfigured deployment still
			// answers with a 500 describing the problem.
			if err := backendCfg.BackendConfig().Validate(); err != nil && backendCfg.Kind != config.BackendMemory {
				logger.Warn("Backend secrets are not usable, invocations will fail", "error", err)
			}

			provisioner := usecase.NewProvision(backendCfg.BackendConfig(), connect)

			server, err := controller.NewServer(ctx, serverCfg.Addr, provisioner)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
