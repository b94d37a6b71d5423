package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahul/coachd/internal/agent"
	"github.com/rahul/coachd/internal/api"
	"github.com/rahul/coachd/internal/governance"
	"github.com/rahul/coachd/internal/history"
	"github.com/rahul/coachd/internal/memory"
	"github.com/rahul/coachd/internal/observability"
	"github.com/rahul/coachd/internal/speech"
	"github.com/rahul/coachd/internal/tools"
	"github.com/rahul/coachd/internal/validation"
	"github.com/rahul/coachd/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	observability.PrintBanner(cfg.App.Name, version)

	zlog, err := observability.NewZapLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	audit := observability.NewAuditLogger(cfg.Audit.Path, zlog)
	metrics := validation.NewMetrics()
	dispatcher := validation.NewDispatcher(metrics, audit, zlog)

	store := history.NewStore(cfg.History.Path, cfg.History.MaxConsecutiveDays, cfg.History.WeeklyGoal, zlog)
	zlog.Infow("workout history loaded", "path", cfg.History.Path, "events", store.Len())

	mem, err := memory.NewStore(cfg.Memory.Path)
	if err != nil {
		zlog.Fatalw("failed to open conversation memory", "error", err)
	}
	defer mem.Close()

	registry := tools.NewRegistry()
	registry.Register(tools.NewValidatePlanTool(dispatcher))
	registry.Register(tools.NewCheckProgressTool(dispatcher))
	registry.Register(tools.NewCheckHistoryTool(store))
	registry.Register(tools.NewRecordWorkoutTool(store))

	prompts := agent.NewPromptManager(cfg.App.PromptDir)
	policy := governance.NewCoachPolicyEngine()

	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		zlog.Fatal("no enabled provider found in config")
	}

	var llm llms.Model
	switch pName {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(pCfg.APIKey),
			openai.WithModel(pCfg.Model),
		}
		if pCfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(pCfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	default:
		zlog.Fatalf("provider %s not yet implemented", pName)
	}
	if err != nil {
		zlog.Fatalw("failed to initialize llm", "provider", pName, "error", err)
	}

	planner := agent.NewPlannerBrain(llm, registry, mem, prompts, policy, dispatcher, metrics, audit, zlog)
	analyst := agent.NewAnalystBrain(llm, registry, mem, prompts, policy, dispatcher, metrics, audit, zlog)

	var synth speech.Synthesizer
	if cfg.Speech.Enabled {
		client, err := speech.NewElevenLabsClient(cfg.Speech.APIKey, cfg.Speech.VoiceID, zlog)
		if err != nil {
			zlog.Warnw("speech disabled", "error", err)
		} else {
			synth = client
		}
	}

	server := &api.Server{
		Planner:    planner,
		Analyst:    analyst,
		Dispatcher: dispatcher,
		Store:      store,
		Speech:     synth,
		Audit:      audit,
		Log:        zlog,
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(cfg.Server.AuthToken),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.Heartbeat()
				audit.Log(observability.Event{
					Type: observability.EventHeartbeat,
					Data: map[string]any{"uptime": observability.Uptime().String()},
				})
			}
		}
	}()

	go func() {
		zlog.Infow("http server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Errorw("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Warnw("graceful shutdown failed", "error", err)
	}
	zlog.Info("shutdown complete")
}
