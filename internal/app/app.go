// Package app arma las dependencias: config, logger, store, services y servidor HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vetsoft/internal/adapters/storage/memory"
	"vetsoft/internal/adapters/storage/sqlstore"
	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/domain/products"
	"vetsoft/internal/platform/config"
	"vetsoft/internal/platform/idgen"
	"vetsoft/internal/platform/logger"
	"vetsoft/internal/platform/secret"
	"vetsoft/internal/platform/validation"
	"vetsoft/internal/router"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Source *config.Source
	Log    *logger.SlogLogger

	// DB es nil con el driver memory.
	DB *sqlstore.DB

	Services router.Services
}

// New carga la configuración (archivo opcional + env) y arma la App.
func New(ctx context.Context, configPath string) (*App, error) {
	src, err := config.NewSource(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := src.Config()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	a, err := NewWithConfig(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.Source = src
	return a, nil
}

// NewWithConfig arma la App con una config ya resuelta (tests, herramientas).
func NewWithConfig(ctx context.Context, cfg *config.Config, log *logger.SlogLogger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	v, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("app: validator: %w", err)
	}
	ids, err := idgen.NewSnowflake(cfg.IDGen.Node)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: log}

	var (
		clientRepo   clients.Repository
		petRepo      pets.Repository
		medicineRepo medicines.Repository
		productRepo  products.Repository
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		clientRepo = memory.NewClientRepo()
		petRepo = memory.NewPetRepo()
		medicineRepo = memory.NewMedicineRepo()
		productRepo = memory.NewProductRepo()

	default:
		db, err := a.openDB(ctx)
		if err != nil {
			return nil, err
		}
		a.DB = db
		clientRepo = sqlstore.NewClientsRepo(db)
		petRepo = sqlstore.NewPetsRepo(db)
		medicineRepo = sqlstore.NewMedicinesRepo(db)
		productRepo = sqlstore.NewProductsRepo(db)
	}

	a.Services = router.Services{
		Clients:   clients.NewService(clientRepo, ids, v),
		Pets:      pets.NewService(petRepo, ids, v),
		Medicines: medicines.NewService(medicineRepo, ids, v),
		Products:  products.NewService(productRepo, ids, v),
	}

	log.Info("app initialized", map[string]any{"driver": cfg.Database.Driver})
	return a, nil
}

func (a *App) openDB(ctx context.Context) (*sqlstore.DB, error) {
	dbCfg := a.Config.Database

	key := ""
	if dbCfg.Driver == config.DriverSQLite {
		k, err := secret.ResolveKey(dbCfg.Key, secret.NewKeyring(dbCfg.KeyringService))
		if err != nil {
			// Sin keyring disponible (CI, contenedores) se sigue sin cifrado.
			a.Log.Warn("keyring unavailable, opening sqlite without key", map[string]any{"error": err})
		}
		key = k
	}

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:         dbCfg.Driver,
		DSN:            dbCfg.DSN,
		Key:            key,
		ConnectRetries: dbCfg.ConnectRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("app: open database: %w", err)
	}
	return db, nil
}

// Migrate aplica el esquema. Con memory no hay nada que hacer.
func (a *App) Migrate(ctx context.Context) (int, error) {
	if a.DB == nil {
		return 0, nil
	}
	n, err := a.DB.Migrate(ctx)
	if err != nil {
		return 0, err
	}
	a.Log.Info("migrations applied", map[string]any{"count": n})
	return n, nil
}

func (a *App) Handler() (http.Handler, error) {
	return router.NewRouter(router.Options{
		Logger:      a.Log,
		Services:    a.Services,
		CORSOrigins: a.Config.HTTP.CORSOrigins,
	})
}

// Serve levanta el servidor y lo apaga ordenadamente cuando ctx se cancela.
func (a *App) Serve(ctx context.Context) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}

	// El nivel de log se puede cambiar editando el archivo de config en caliente.
	if a.Source != nil {
		a.Source.OnChange(func(cfg *config.Config) {
			a.Log.SetLevel(logger.ParseLevel(cfg.Log.Level))
		})
	}

	srv := &http.Server{
		Addr:         a.Config.HTTP.Addr(),
		Handler:      h,
		ReadTimeout:  a.Config.HTTP.ReadTimeout,
		WriteTimeout: a.Config.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("app: server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
