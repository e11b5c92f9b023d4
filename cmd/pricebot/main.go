package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kjannette/sidebar-pricebot/internal/api"
	"github.com/kjannette/sidebar-pricebot/internal/config"
	"github.com/kjannette/sidebar-pricebot/internal/discord"
	"github.com/kjannette/sidebar-pricebot/internal/display"
	"github.com/kjannette/sidebar-pricebot/internal/ethereum"
	"github.com/kjannette/sidebar-pricebot/internal/external"
	"github.com/kjannette/sidebar-pricebot/internal/gas"
	"github.com/kjannette/sidebar-pricebot/internal/logging"
	"github.com/kjannette/sidebar-pricebot/internal/metrics"
	"github.com/kjannette/sidebar-pricebot/internal/notifications"
	"github.com/kjannette/sidebar-pricebot/internal/scheduler"
)

const banner = `
╔══════════════════════════════════════╗
║        Sidebar Price Bot v1.0        ║
║                                      ║
╚══════════════════════════════════════╝
`

func main() {
	fmt.Print(banner)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	cfg.Print(log)
	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
	log.Info().Msg("goodbye")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	// Sinks
	hub := api.NewHub(logging.Component(log, "stream"))
	sinks := display.Multi{display.NewLog(logging.Component(log, "display")), hub}

	if token := cfg.DiscordToken(); token != "" {
		dc, err := discord.New(token, logging.Component(log, "discord"), m)
		if err != nil {
			return err
		}
		n, err := dc.Open(ctx)
		if err != nil {
			return fmt.Errorf("discord: %w", err)
		}
		defer func() {
			if err := dc.Close(); err != nil {
				log.Warn().Err(err).Msg("discord session close")
			}
		}()
		log.Info().Int("guilds", n).Msg("discord bot ready")
		sinks = append(sinks, dc)
	}

	webhook := notifications.NewSender(cfg.WebhookURL, cfg.BotName, cfg.HTTPTimeout(), logging.Component(log, "webhook"), m)
	if webhook.Enabled() {
		sinks = append(sinks, webhook)
	}

	schedCfg := scheduler.Config{
		Ticker:          cfg.Ticker,
		RefreshInterval: cfg.UpdateInterval(),
		RotateInterval:  cfg.RotateInterval(),
		Rotate:          cfg.Rotate(),
		Publisher:       sinks,
		Metrics:         m,
	}

	var gasAdapter *gas.Adapter
	if cfg.GasMode() {
		oracle, closeOracle, err := buildGasOracle(cfg, httpClient)
		if err != nil {
			return err
		}
		defer closeOracle()
		gasAdapter = gas.NewAdapter(cfg.Ticker, oracle, sinks, logging.Component(log, "gas"), m)
		schedCfg.Gas = gasAdapter
	} else {
		lookup := external.NewSymbolLookup()
		if cfg.SymbolsFile != "" {
			n, err := lookup.LoadFile(cfg.SymbolsFile)
			if err != nil {
				return fmt.Errorf("symbols file: %w", err)
			}
			log.Info().Int("symbols", n).Str("file", cfg.SymbolsFile).Msg("symbol lookup loaded")
		}

		cg := external.NewCoinGeckoClient(cfg.CoinGeckoAPIKey, lookup, logging.Component(log, "coingecko"),
			external.WithBaseURL(cfg.CoinGeckoAPIURL),
			external.WithHTTPClient(httpClient),
		)
		if cfg.LoadCoinList {
			added, err := cg.LoadCoinList(ctx)
			if err != nil {
				// The seeded and file entries still cover the usual tickers.
				log.Warn().Err(err).Msg("coin list unavailable, using local lookup only")
			} else {
				log.Info().Int("added", added).Int("total", lookup.Len()).Msg("coin list loaded")
			}
		}
		if _, ok := lookup.ID(cfg.Ticker); !ok {
			log.Warn().Str("ticker", cfg.Ticker).Msg("ticker has no price source id, display will stay idle")
		}
		schedCfg.Fetcher = cg
	}

	sched := scheduler.New(schedCfg, logging.Component(log, "scheduler"))

	opts := api.Options{
		Port:       cfg.APIPort,
		APIKey:     cfg.APIKey,
		CORSOrigin: cfg.CORSAllowOrigin,
		Ticker:     cfg.Ticker,
	}
	if gasAdapter != nil {
		opts.Gas = gasAdapter.Last
	}
	srv := api.NewServer(opts, sched, hub, m, logging.Component(log, "api"))

	g, gctx := errgroup.WithContext(ctx)

	sched.Start(gctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("api server shutdown")
		}
		return nil
	})

	return g.Wait()
}

// buildGasOracle prefers Etherscan and falls back to the RPC fee history
// when both are configured.
func buildGasOracle(cfg *config.Config, httpClient *http.Client) (gas.Oracle, func(), error) {
	var oracles gas.Fallback
	closeFn := func() {}

	if cfg.EtherscanAPIKey != "" {
		oracles = append(oracles, external.NewEtherscanClient(cfg.EtherscanAPIKey,
			external.WithBaseURL(cfg.EtherscanAPIURL),
			external.WithHTTPClient(httpClient),
		))
	}
	if cfg.EthereumAPIEndpoint != "" {
		rpc, err := ethereum.NewClient(cfg.EthereumAPIEndpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("ethereum rpc: %w", err)
		}
		oracles = append(oracles, rpc)
		closeFn = rpc.Close
	}

	if len(oracles) == 1 {
		return oracles[0], closeFn, nil
	}
	return oracles, closeFn, nil
}
