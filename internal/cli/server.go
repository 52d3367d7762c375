package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Manifold-MEV/friendtech-presale/internal/config"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/market"
	grpcserver "github.com/Manifold-MEV/friendtech-presale/internal/grpc"
	"github.com/Manifold-MEV/friendtech-presale/internal/rpc"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the ledger daemon",
	Long: `Start the daemon: JSON-RPC over HTTP with a websocket event feed,
and optionally a gRPC query surface. Standalone mode runs against the
built-in market venue.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServer(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if !cfg.Ledger.Standalone {
		return errors.New("only standalone mode is supported; an external market adapter is not configured")
	}

	proxy, err := cfg.ProxyAddress()
	if err != nil {
		return err
	}
	feeTo, err := cfg.ProtocolFeeAddress()
	if err != nil {
		return err
	}
	venue := market.NewStandalone(feeTo)

	manager := storage.NewManager(cfg.Storage.Backend, cfg.Storage.Path)
	defer manager.Close()
	stateDB, err := manager.OpenDB("ledger")
	if err != nil {
		return fmt.Errorf("failed to open ledger state db: %w", err)
	}
	state := ledger.NewState(stateDB)

	var store history.Store
	if cfg.History.Driver != "" {
		store, err = history.Open(history.Config{
			Driver:    cfg.History.Driver,
			DSN:       cfg.HistoryDSN(),
			CacheSize: cfg.History.CacheSize,
		})
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()
	}

	ledgerService := service.New(state, venue, venue, service.Config{
		Standalone:                cfg.Ledger.Standalone,
		SkipSignatureVerification: cfg.Ledger.SkipSignatureVerification,
		ProxyAddress:              proxy,
		History:                   store,
		SnapshotPath:              cfg.Snapshot.Path,
	}, logger)

	if cfg.Snapshot.Path != "" {
		if err := ledgerService.LoadSnapshot(); err != nil && !errors.Is(err, service.ErrNoSnapshot) {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
	}

	return serve(cmd.Context(), cfg, ledgerService, logger)
}

// serve runs the configured listeners until a shutdown signal.
func serve(parent context.Context, cfg *config.Config, ledgerService *service.Service, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
	rpcServer := rpc.NewServer(&rpc.Services{Ledger: ledgerService}, timeout, logger)
	httpServer := &http.Server{
		Addr:    cfg.Server.RPCAddress,
		Handler: rpcServer,
	}

	var queryServer *grpcserver.Server
	if cfg.Server.GRPCAddress != "" {
		var err error
		queryServer, err = grpcserver.NewServer(&grpcserver.ServerConfig{
			Address:        cfg.Server.GRPCAddress,
			MaxRecvMsgSize: cfg.Server.MaxGRPCMsgSize,
			MaxSendMsgSize: cfg.Server.MaxGRPCMsgSize,
		}, ledgerService)
		if err != nil {
			return err
		}
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info().Str("address", cfg.Server.RPCAddress).Msg("rpc server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if queryServer != nil {
		group.Go(func() error {
			logger.Info().Str("address", cfg.Server.GRPCAddress).Msg("grpc server listening")
			return queryServer.Start()
		})
	}

	group.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("http shutdown failed")
		}
		if queryServer != nil {
			queryServer.Stop()
		}
		if cfg.Snapshot.Path != "" {
			if err := ledgerService.SaveSnapshot(); err != nil {
				logger.Warn().Err(err).Msg("snapshot save failed")
			}
		}
		return nil
	})

	return group.Wait()
}
