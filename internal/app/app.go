package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"genfs/internal/config"
	"genfs/internal/database"
	"genfs/internal/encryption"
	"genfs/internal/fs"
	"genfs/internal/genfs"
	"genfs/internal/lock"
	"genfs/internal/snapshot"
	"genfs/internal/vault"
)

// GenfsApp is the application layer between the CLI or HTTP server and the
// genfs Service. It builds every dependency from config and owns the
// database and log file until Close.
type GenfsApp struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	service   *genfs.Service
	logger    *slog.Logger
	logCloser io.Closer
}

// NewGenfsApp creates a fully wired GenfsApp. operation names the command
// being run and prefixes the log operation id. The caller must call Close.
func NewGenfsApp(cfg *config.Config, operation string) (*GenfsApp, error) {
	opID := operation + "-" + time.Now().UTC().Format("20060102T150405Z")
	logger, logCloser, err := newLogger(cfg.LogDir, opID, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("creating database: %w", err)
	}
	if err := db.CheckMigrations(); err != nil {
		db.Close()
		logCloser.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	svc := genfs.NewService(db, db, &slogAdapter{l: logger}, genfs.RealClock{}, genfs.UUIDGenerator{}, genfs.Options{
		LockTimeout:    cfg.Lock.Timeout(),
		ImpactMaxNodes: cfg.Impact.MaxNodes,
		Locks:          lock.New(),
	})

	return &GenfsApp{
		cfg:       cfg,
		db:        db,
		service:   svc,
		logger:    logger,
		logCloser: logCloser,
	}, nil
}

// Service returns the file store service.
func (a *GenfsApp) Service() *genfs.Service {
	return a.service
}

// Logger returns the application logger.
func (a *GenfsApp) Logger() *slog.Logger {
	return a.logger
}

// Config returns the configuration the app was built from.
func (a *GenfsApp) Config() *config.Config {
	return a.cfg
}

// Import batch-writes every file under dir into appID, in path order.
// Content that is valid UTF-8 is stored as text, everything else as bytes.
// On failure the files written so far are returned along with the error.
func (a *GenfsApp) Import(ctx context.Context, appID, dir, actor string) ([]*genfs.WriteResult, error) {
	files, err := fs.Collect(dir, fs.WalkOptions{Ignore: a.cfg.Filesystem.Ignore})
	if err != nil {
		return nil, fmt.Errorf("collecting files: %w", err)
	}

	entries := make([]genfs.BatchEntry, 0, len(files))
	for _, f := range files {
		content := genfs.TextContent(f.Text())
		if f.Binary {
			content = genfs.BinaryContent(f.Data)
		}
		entries = append(entries, genfs.BatchEntry{Path: f.Path, Content: content})
	}

	results, err := a.service.BatchWrite(ctx, appID, entries, actor)
	a.logger.Info("import finished", "app", appID, "dir", dir, "found", len(files), "written", len(results))
	return results, err
}

// Snapshots returns a snapshot manager for the first configured vault.
func (a *GenfsApp) Snapshots(ctx context.Context) (*snapshot.Manager, error) {
	if len(a.cfg.Vaults) == 0 {
		return nil, fmt.Errorf("no vaults configured")
	}
	v, err := vault.NewVaultFromConfig(ctx, a.cfg.Vaults[0])
	if err != nil {
		return nil, fmt.Errorf("creating vault: %w", err)
	}
	enc, err := encryption.NewEncryptorFromConfig(a.cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc != nil && !enc.IsConfigured() {
		return nil, fmt.Errorf("encryption keys missing: run 'genfs snapshot setup' first")
	}
	return snapshot.NewManager(a.cfg.StoreID, a.db, v, enc, genfs.RealClock{}, &slogAdapter{l: a.logger}), nil
}

// SetupSnapshots generates the encryption keys and checks that the vault
// is reachable.
func (a *GenfsApp) SetupSnapshots(ctx context.Context, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(a.cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc != nil {
		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("setting up encryption: %w", err)
		}
	}

	if len(a.cfg.Vaults) == 0 {
		return fmt.Errorf("no vaults configured")
	}
	v, err := vault.NewVaultFromConfig(ctx, a.cfg.Vaults[0])
	if err != nil {
		return fmt.Errorf("creating vault: %w", err)
	}
	if err := v.ValidateSetup(ctx); err != nil {
		return fmt.Errorf("validating vault: %w", err)
	}
	return nil
}

// Close closes the database and the log file.
func (a *GenfsApp) Close() error {
	var firstErr error
	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if err := a.logCloser.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing log file: %w", err)
	}
	return firstErr
}
