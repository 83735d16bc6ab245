// Command loupe analyzes logs: one-shot analysis of a pasted log or file,
// continuous streaming from a connector, or an HTTP server exposing the
// analyze API and a WebSocket tail.
//
// Usage:
//
//	loupe [flags]            analyze logs from the configured connector once
//	loupe stream [flags]     analyze logs continuously as they arrive
//	loupe serve [flags]      serve the HTTP analyze API
//
// Configuration comes from LOUPE_* environment variables; flags override
// per-run analysis options.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/silvermoss/loupe/internal/config"
	"github.com/silvermoss/loupe/internal/connector"
	"github.com/silvermoss/loupe/internal/engine"
	"github.com/silvermoss/loupe/internal/engine/tagger"
	"github.com/silvermoss/loupe/internal/enrich"
	"github.com/silvermoss/loupe/internal/logging"
	"github.com/silvermoss/loupe/internal/model"
	"github.com/silvermoss/loupe/internal/output"
	fileout "github.com/silvermoss/loupe/internal/output/file"
	"github.com/silvermoss/loupe/internal/output/multi"
	"github.com/silvermoss/loupe/internal/output/stdout"
	"github.com/silvermoss/loupe/internal/output/webhook"
	"github.com/silvermoss/loupe/internal/pipeline"
	"github.com/silvermoss/loupe/internal/server"

	// Register connector implementations.
	_ "github.com/silvermoss/loupe/internal/connector/file"
	_ "github.com/silvermoss/loupe/internal/connector/httpjson"
	_ "github.com/silvermoss/loupe/internal/connector/stdin"
)

func main() {
	mode := "analyze"
	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "analyze" || args[0] == "stream" || args[0] == "serve") {
		mode = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("loupe", flag.ExitOnError)
	lang := fs.String("lang", "", "language hint (python, java, go, ...); skips detection")
	highlight := fs.Bool("highlight", false, "colorize the cleaned log with ANSI styles")
	summary := fs.Bool("summary", true, "include a one-line summary")
	tags := fs.Bool("tags", true, "include classification tags")
	fs.Parse(args)

	cfg := config.Load()
	log := logging.New(logging.ParseLevel(os.Getenv("LOUPE_LOG_LEVEL")), cfg.Output.Pretty)

	engOpts := []engine.Option{
		engine.WithMaxLines(cfg.Engine.MaxLines),
		engine.WithThresholds(tagger.Thresholds{
			SeriousRatio: cfg.Engine.SeriousRatio,
			HealthyRatio: cfg.Engine.HealthyRatio,
		}),
		engine.WithLogger(log),
	}
	if cfg.Enrich.Enabled {
		engOpts = append(engOpts, engine.WithEnricher(
			enrich.NewCollector(cfg.Enrich.Root, enrich.WithLogger(log)),
		))
	}
	eng := engine.New(engOpts...)

	if mode == "serve" {
		runServe(cfg, eng, log)
		return
	}

	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve connector")
	}
	conn := ctor()

	out, err := buildOutput(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build output")
	}

	opts := model.Options{
		LanguageHint: model.ParseLanguage(*lang),
		MaxLines:     cfg.Engine.MaxLines,
		Highlight:    *highlight,
		Summary:      *summary,
		Tags:         *tags,
	}
	p := pipeline.New(conn, eng, out, pipeline.WithAnalysisOptions(opts))
	defer p.Close()

	ctx, cancel := signalContext(log)
	defer cancel()

	connCfg := connector.Config{
		Provider: cfg.Connector.Provider,
		Path:     cfg.Connector.Path,
		Endpoint: cfg.Connector.Endpoint,
		APIKey:   cfg.Connector.APIKey,
		Extra:    cfg.Connector.Extra,
	}

	switch mode {
	case "stream":
		log.Info().Str("connector", cfg.Connector.Provider).Msg("streaming")
		if err := p.Stream(ctx, connCfg); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("pipeline stream")
		}
	default:
		if err := p.Query(ctx, connCfg, connector.QueryParams{}); err != nil {
			log.Fatal().Err(err).Msg("pipeline query")
		}
	}
}

// runServe starts the HTTP server and blocks until interrupted.
func runServe(cfg config.Config, eng *engine.Engine, log zerolog.Logger) {
	srv := server.New(cfg.Server.Addr, eng, server.WithLogger(log))

	ctx, cancel := signalContext(log)
	defer cancel()
	go func() {
		<-ctx.Done()
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}

// buildOutput constructs the configured destination.
func buildOutput(cfg config.Config, log zerolog.Logger) (output.Output, error) {
	verbosity := output.Standard

	switch cfg.Output.Format {
	case "stdout", "":
		return stdout.New(verbosity, cfg.Output.Pretty), nil
	case "file":
		return fileout.New(cfg.Output.Path, verbosity)
	case "webhook":
		return webhook.New(cfg.Output.WebhookURL, webhook.WithLogger(log)), nil
	case "multi":
		f, err := fileout.New(cfg.Output.Path, verbosity)
		if err != nil {
			return nil, err
		}
		return multi.New(stdout.New(verbosity, cfg.Output.Pretty), f), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()
	return ctx, cancel
}
