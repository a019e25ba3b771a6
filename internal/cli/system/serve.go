package system

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asytuyf/genesis-vault/internal/cli"
	"github.com/asytuyf/genesis-vault/internal/keyring"
	"github.com/asytuyf/genesis-vault/internal/logger"
	"github.com/asytuyf/genesis-vault/internal/publisher"
	"github.com/asytuyf/genesis-vault/internal/server"
)

type ServeCmd struct {
	Address string `help:"Listen address." default:":8787"`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	pub := publisher.New(ctx.GitHub, keyring.GetAdminPassword)
	handler := server.NewHandler(ctx.Store, pub, logger.Get())

	srv := server.New(server.Config{Address: cmd.Address}, handler)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("panel listening", "address", cmd.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-shutdownCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("panel stopped")
	return nil
}
