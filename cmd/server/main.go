package main

import (
	"log"
	"time"

	httpadapter "pawledger/internal/adapter/http"
	metricsinmem "pawledger/internal/adapter/metrics/inmemory"
	gormrepo "pawledger/internal/adapter/repo/gorm"
	"pawledger/internal/app/action"
	"pawledger/internal/app/ports"
	"pawledger/internal/app/progress"
	"pawledger/internal/app/quest"
	"pawledger/internal/app/report"
	"pawledger/internal/app/slots"
	"pawledger/internal/app/status"
	"pawledger/internal/app/store"
	"pawledger/internal/app/tasks"
	"pawledger/internal/app/wallet"
	"pawledger/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}

	repo, txManager := mustBuildRepos(cfg)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		SlotsUC: slots.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		ActionUC: action.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Metrics:             kpiRecorder,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		StoreUC: store.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Metrics:             kpiRecorder,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		ProgressUC: progress.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		QuestUC: quest.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		WalletUC: wallet.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		TasksUC: tasks.UseCase{
			TxManager:           txManager,
			Repo:                repo,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		ReportUC: report.UseCase{Repo: repo, Now: time.Now},
		StatusUC: status.UseCase{
			Repo:                repo,
			Tuning:              tuning,
			DemoDecayMultiplier: cfg.DemoMultiplier,
			Now:                 time.Now,
		},
		KPI: kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.Printf("pawledger server listening on %s", cfg.Addr)
	s.Spin()
}

func mustBuildRepos(cfg config.Config) (ports.SlotRepository, ports.TxManager) {
	if cfg.DBDSN == "" {
		log.Fatal("PAWLEDGER_DB_DSN is required")
	}
	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return gormrepo.NewSlotRepo(db, cfg.MaxPayloadBytes), gormrepo.NewTxManager(db)
}
