package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/codemaster/internal/account"
	"github.com/abhisek/codemaster/internal/bank"
	"github.com/abhisek/codemaster/internal/config"
	"github.com/abhisek/codemaster/internal/governor"
	"github.com/abhisek/codemaster/internal/grading"
	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/placement"
	"github.com/abhisek/codemaster/internal/problemgen"
	"github.com/abhisek/codemaster/internal/session"
	"github.com/abhisek/codemaster/internal/store"
)

// deps is everything a front-end needs, plus what must be closed on exit.
type deps struct {
	cfg      *config.Config
	events   store.EventRepo
	governor *governor.Governor
	engine   *session.Engine

	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
}

// loadConfig reads the full configuration, oracle credential included,
// and creates the data directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return cfg, nil
}

// loadLocalConfig is loadConfig for commands that never call the oracle.
func loadLocalConfig() (*config.Config, error) {
	cfg, err := config.LoadLocal()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return cfg, nil
}

// openUsageStore returns the configured usage backend and its closer.
func openUsageStore(ctx context.Context, cfg *config.Config) (store.UsageStore, func() error, error) {
	if cfg.Usage.Backend != "redis" {
		return store.NewFileUsageStore(cfg.UsagePath), func() error { return nil }, nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rdb, err := store.ConnectRedis(connectCtx, cfg.Usage.RedisAddr, cfg.Usage.RedisPassword, cfg.Usage.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return store.NewRedisUsageStore(rdb, cfg.Usage.RedisKey), rdb.Close, nil
}

// newGovernor opens the usage store and wraps it in a Governor.
func newGovernor(ctx context.Context, cfg *config.Config) (*governor.Governor, func() error, error) {
	us, closeFn, err := openUsageStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open usage store: %w", err)
	}
	limits := governor.Limits{
		DailyLimit:     cfg.Governor.DailyLimit,
		PerMinuteLimit: cfg.Governor.PerMinuteLimit,
		Window:         cfg.Governor.Window,
	}
	return governor.New(us, limits, time.Now), closeFn, nil
}

// buildDeps wires the stores, the oracle and the engine.
func buildDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	d := &deps{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			d.Close()
		}
	}()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, st.Close)
	d.events = st.EventRepo()

	gov, closeUsage, err := newGovernor(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, closeUsage)
	d.governor = gov

	provider, err := llm.NewProvider(ctx, cfg.LLM, d.events)
	if err != nil {
		return nil, fmt.Errorf("oracle provider: %w", err)
	}
	slog.Info("oracle configured", "llm", cfg.LLM.String())

	bk, err := bank.Load(cfg.BankPath)
	var readErr *store.ReadError
	if errors.As(err, &readErr) {
		slog.Warn("problem bank unreadable, continuing without it", "error", err)
	} else if err != nil {
		return nil, fmt.Errorf("load problem bank: %w", err)
	}

	mode, err := problemgen.ParseMode(cfg.ProblemMode)
	if err != nil {
		return nil, err
	}
	policy, err := placement.PolicyByName(cfg.PlacementPolicy)
	if err != nil {
		return nil, err
	}
	penalty, err := session.ParsePenaltyPolicy(cfg.PenaltyPolicy)
	if err != nil {
		return nil, err
	}

	d.engine = session.NewEngine(session.Deps{
		Accounts:  account.NewService(store.NewAccountStore(cfg.AccountsPath)),
		Bank:      bk,
		Generator: problemgen.New(provider, problemgen.DefaultConfig()),
		Grader:    grading.New(provider, grading.DefaultConfig()),
		Governor:  gov,
		Events:    d.events,
	}, session.Config{
		Mode:      mode,
		Placement: policy,
		Penalty:   penalty,
	})

	ok = true
	return d, nil
}
