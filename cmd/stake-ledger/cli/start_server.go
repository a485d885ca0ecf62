package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stakeworks/stake-ledger/internal/api"
	"github.com/stakeworks/stake-ledger/internal/clients/bankclient"
	"github.com/stakeworks/stake-ledger/internal/config"
	"github.com/stakeworks/stake-ledger/internal/db"
	dbmodel "github.com/stakeworks/stake-ledger/internal/db/model"
	"github.com/stakeworks/stake-ledger/internal/ledger"
	"github.com/stakeworks/stake-ledger/internal/observability/metrics"
	"github.com/stakeworks/stake-ledger/internal/observability/tracing"
	"github.com/stakeworks/stake-ledger/internal/queue"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the stake ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up stake db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	var bankClient bankclient.BankInterface
	bankClient, err = bankclient.NewBankClient(&cfg.Bank)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating bank client")
	}
	bankClient = bankclient.NewBankClientWithMetrics(bankClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		//nolint:errcheck
		zapLogger.Sync()
	}()

	queueManager, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer queueManager.Shutdown()

	// initialize metrics with the metrics port from config; the ledger
	// sets the total-stake gauge during construction, so this comes first
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	ledgerService, err := ledger.New(ctx, &cfg.Ledger, dbClient, bankClient, ledger.SystemClock(), queueManager)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating ledger service")
	}

	server := api.New(&cfg.API, ledgerService)

	var wg conc.WaitGroup
	defer wg.Wait()

	wg.Go(func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("api server stopped with error")
		}
	})

	<-ctx.Done()
	log.Info().Msg("shutting down")
	server.Stop()
	return nil
}
