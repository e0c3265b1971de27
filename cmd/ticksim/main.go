package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/l1jgo/ticksim/internal/config"
	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
	"github.com/l1jgo/ticksim/internal/data"
	"github.com/l1jgo/ticksim/internal/persist"
	"github.com/l1jgo/ticksim/internal/scripting"
	"github.com/l1jgo/ticksim/internal/system"
	"github.com/l1jgo/ticksim/internal/telemetry"
	"github.com/l1jgo/ticksim/internal/world"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/ticksim.toml"
	if p := os.Getenv("TICKSIM_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging, cfg.Server.Name)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	printBanner(cfg.Server.Name, cfg.Server.Seed)

	ctx := context.Background()

	// ── Telemetry ──
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	// ── Database (optional event log) ──
	var repo *persist.EventRepo
	if cfg.Database.Enabled {
		printSection("database")
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db.Pool, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		runID := fmt.Sprintf("%d-%d", cfg.Server.Seed, cfg.Server.StartTime)
		repo = persist.NewEventRepo(db, runID)
		printOK("event log ready (run " + runID + ")")
		fmt.Println()
	}

	// ── Data tables ──
	printSection("data")
	actors, err := data.LoadActorTable(cfg.Data.ActorList)
	if err != nil {
		return fmt.Errorf("load actor list: %w", err)
	}
	printStat("actor templates", actors.Count())

	spawns, err := data.LoadSpawnList(cfg.Data.SpawnList)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}
	printStat("actor spawns", len(spawns.Actors))
	printStat("resource spawns", len(spawns.Resources))
	fmt.Println()

	// ── Scripting ──
	printSection("scripting")
	engine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	printOK("lua formulas loaded")
	fmt.Println()

	// ── Simulation ──
	clock := tick.NewClock(cfg.Tick.Duration, cfg.Tick.MaxCatchUp, log)
	bus := event.NewBus()
	telemetry.TracePasses(clock, nil)

	// Registration order is execution order within a phase.
	clock.Register(system.NewEventDispatchSystem(bus))
	state := world.NewState(clock, bus, world.OptionsFrom(cfg), engine, log)
	if err := state.Populate(actors, spawns); err != nil {
		return fmt.Errorf("populate world: %w", err)
	}

	var eventLog *system.EventLogSystem
	if repo != nil {
		eventLog = system.NewEventLogSystem(bus, repo, log, int(cfg.Database.FlushEvery), cfg.Database.FlushTimeout)
		clock.Register(eventLog)
	}
	clock.Register(system.NewCleanupSystem(state.ECS()))

	printSection("world")
	printStat("actors", state.ActorCount())
	printStat("resources", state.NodeCount())
	fmt.Println()

	watchEvents(bus, log)
	startScenario(state, bus, log)

	// ── Loop ──
	printReady(fmt.Sprintf("tick %s, frame %s", cfg.Tick.Duration, cfg.Tick.FrameInterval))
	fmt.Println()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Tick.FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-sigCh:
			log.Info("shutting down")
			if eventLog != nil {
				eventLog.Flush()
			}
			return nil
		case now := <-ticker.C:
			clock.Advance(now.Sub(last))
			last = now
			if cfg.Tick.MaxTicks > 0 && uint64(clock.Current()) >= cfg.Tick.MaxTicks {
				log.Info("tick limit reached", zap.Uint64("tick", uint64(clock.Current())))
				if eventLog != nil {
					eventLog.Flush()
				}
				return nil
			}
		}
	}
}
