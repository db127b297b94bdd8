package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"planly/internal/config"
	"planly/internal/repository"
	"planly/internal/service"
	"planly/internal/store"
)

// application is the composition root shared by the commands of one run.
type application struct {
	cfg     config.Config
	kv      store.KeyValue
	store   *store.Store
	tasks   *service.TaskService
	reports *service.ReportService
	closeFn func() error
}

func openStorage(cfg config.Config) (store.KeyValue, func() error, error) {
	switch cfg.Storage {
	case config.DriverSQLite:
		db, err := repository.NewDB(cfg.DatabaseURL, verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		return repository.NewSlotRepository(db), sqlDB.Close, nil
	case config.DriverFile:
		slots, err := repository.NewFileSlots(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return slots, func() error { return nil }, nil
	case config.DriverMemory:
		return repository.NewMemorySlots(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func openApp(ctx context.Context, cfg config.Config, now time.Time) (*application, error) {
	kv, closeFn, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	a := &application{cfg: cfg, kv: kv, closeFn: closeFn}
	a.load(ctx, now)
	return a, nil
}

// load (re)builds the store and the services on top of it.
func (a *application) load(ctx context.Context, now time.Time) {
	a.store = store.Open(ctx, a.kv, now)
	if verbose {
		st := a.store
		st.OnChange(func() {
			log.Printf("state saved: page=%s subjects=%v window_closed=%t", st.Page(), st.Subjects(), st.WindowClosed())
		})
	}
	a.tasks = service.NewTaskService(a.store)
	a.reports = service.NewReportService(a.store, a.tasks)
}

func (a *application) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}
