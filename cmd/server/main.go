package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	staticcatalog "respawn/internal/adapter/catalog/static"
	httpadapter "respawn/internal/adapter/http"
	metricsinmem "respawn/internal/adapter/metrics/inmemory"
	gormrepo "respawn/internal/adapter/repo/gorm"
	memrepo "respawn/internal/adapter/repo/memory"
	jwttoken "respawn/internal/adapter/token/jwt"
	"respawn/internal/app/auth"
	"respawn/internal/app/calendar"
	"respawn/internal/app/catalog"
	"respawn/internal/app/day"
	"respawn/internal/app/encounter"
	"respawn/internal/app/history"
	"respawn/internal/app/ports"
	"respawn/internal/app/status"
	"respawn/internal/config"
	"respawn/internal/domain/player"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("respawn server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(os.Stdout, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx := context.Background()
	h, closeFn, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}

	s := server.Default(
		server.WithHostPorts(cfg.Addr),
		server.WithExitWaitTime(cfg.ShutdownTimeout),
	)
	s.OnShutdown = append(s.OnShutdown, func(context.Context) {
		closeFn()
		logger.Info("respawn server shut down")
	})
	h.RegisterRoutes(s)

	logger.Info("respawn server listening", "addr", cfg.Addr, "store", storeName(cfg))
	s.Spin()
	return nil
}

func newLogger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func storeName(cfg config.Config) string {
	if cfg.DBDSN == "" {
		return "memory"
	}
	return "postgres"
}

type repos struct {
	states      ports.PlayerStateRepository
	days        ports.DayRecordRepository
	credentials ports.CredentialRepository
	tx          ports.TxManager
	close       func()
}

func buildRepos(ctx context.Context, cfg config.Config, logger *slog.Logger) (repos, error) {
	if cfg.DBDSN == "" {
		logger.Warn("RESPAWN_DB_DSN is empty; state is kept in memory and lost on restart")
		store := memrepo.NewStore()
		return repos{
			states:      memrepo.NewPlayerStateRepo(store),
			days:        memrepo.NewDayRecordRepo(store),
			credentials: memrepo.NewCredentialRepo(store),
			tx:          memrepo.NewTxManager(store),
			close:       func() {},
		}, nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN, gormrepo.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return repos{}, err
	}
	if cfg.AutoMigrate {
		applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir, logger)
		if err != nil {
			return repos{}, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations up to date", "applied", len(applied), "dir", cfg.MigrationsDir)
	}
	return repos{
		states:      gormrepo.NewPlayerStateRepo(db),
		days:        gormrepo.NewDayRecordRepo(db),
		credentials: gormrepo.NewCredentialRepo(db),
		tx:          gormrepo.NewTxManager(db),
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

func buildRules(ctx context.Context, cfg config.Config, provider ports.CatalogProvider) (player.Rules, error) {
	c, err := provider.Load(ctx)
	if err != nil {
		return player.Rules{}, fmt.Errorf("load objective catalog: %w", err)
	}
	rules := player.DefaultRules().WithCatalog(c)
	rules.MultiCycleCooldown = cfg.MultiCycleCooldown
	if err := rules.Validate(); err != nil {
		return player.Rules{}, err
	}
	return rules, nil
}

func buildHandler(ctx context.Context, cfg config.Config, logger *slog.Logger) (httpadapter.Handler, func(), error) {
	catalogProvider := staticcatalog.Provider{Root: cfg.CatalogRoot, Name: cfg.CatalogFile}
	rules, err := buildRules(ctx, cfg, catalogProvider)
	if err != nil {
		return httpadapter.Handler{}, nil, err
	}
	service, err := player.NewDayService(rules)
	if err != nil {
		return httpadapter.Handler{}, nil, err
	}
	tokens, err := jwttoken.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return httpadapter.Handler{}, nil, err
	}
	r, err := buildRepos(ctx, cfg, logger)
	if err != nil {
		return httpadapter.Handler{}, nil, err
	}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: r.credentials,
			StateRepo:   r.states,
			TxManager:   r.tx,
			Tokens:      tokens,
			Cost:        cfg.BcryptCost,
			Now:         time.Now,
		},
		LoginUC: auth.LoginUseCase{Credentials: r.credentials, Tokens: tokens, Now: time.Now},
		AuthUC:  auth.VerifyUseCase{Tokens: tokens},
		DayUC: day.UseCase{
			TxManager: r.tx,
			StateRepo: r.states,
			DayRepo:   r.days,
			Metrics:   kpiRecorder,
			Service:   service,
			Now:       time.Now,
		},
		StatusUC:  status.UseCase{StateRepo: r.states, Rules: rules},
		HistoryUC: history.UseCase{Days: r.days},
		CalendarUC: calendar.UseCase{
			TxManager: r.tx,
			StateRepo: r.states,
			Now:       time.Now,
		},
		EncounterUC: encounter.UseCase{
			TxManager: r.tx,
			StateRepo: r.states,
			Rules:     rules.Encounter,
			Now:       time.Now,
		},
		CatalogUC:      catalog.UseCase{Provider: catalogProvider},
		KPI:            kpiRecorder,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}
	return h, r.close, nil
}
