package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakeworks/stake-ledger/internal/config"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Ledger is the subset of ledger operations exposed over HTTP.
type Ledger interface {
	Stake(ctx context.Context, account string, amount sdkmath.Int) error
	Withdraw(ctx context.Context, account string, amount sdkmath.Int) error
	Slash(ctx context.Context, account string, rate sdkmath.Int) error
	StakeOf(ctx context.Context, account string) (sdkmath.Int, error)
	TotalStake(ctx context.Context) (sdkmath.Int, error)
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.APIConfig, ledger Ledger) *Server {
	router := chi.NewRouter()
	router.Use(tracingMiddleware)
	router.Use(requestMetricsMiddleware)

	router.Post("/v1/stake", handleStake(ledger))
	router.Post("/v1/withdraw", handleWithdraw(ledger))
	router.Post("/v1/slash", handleSlash(ledger))
	router.Get("/v1/stake/{account}", handleStakeOf(ledger))
	router.Get("/v1/total-stake", handleTotalStake(ledger))

	router.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("starting api server")
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down api server")
	}
}
