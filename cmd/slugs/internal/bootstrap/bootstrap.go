package bootstrap

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sluggable"
	"github.com/goliatone/go-sluggable/articles"
	"github.com/goliatone/go-sluggable/internal/commands"
	"github.com/goliatone/go-sluggable/internal/peers"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Options captures configuration for the slug CLI bootstraps. Empty values
// keep what the config file (or the defaults) say.
type Options struct {
	ConfigPath     string
	Driver         string
	DSN            string
	LogLevel       string
	CacheEnabled   *bool
	LoggerProvider interfaces.LoggerProvider
	IDGenerator    func() uuid.UUID
}

// Module wraps the sluggable module and the database it runs on.
type Module struct {
	Module *sluggable.Module
	Logger interfaces.Logger
	DB     *bun.DB

	pgConn *pgx.Conn
}

// Close releases the database handles.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	if m.pgConn != nil {
		_ = m.pgConn.Close(context.Background())
	}
	if m.DB == nil {
		return nil
	}
	return m.DB.Close()
}

// BuildModule loads the configuration, opens and migrates the database and
// constructs the sluggable module on top of it.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	db, err := OpenDB(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	if err := sluggable.ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	moduleOpts := []sluggable.Option{sluggable.WithBunDB(db)}

	// Postgres peer lookups go through a dedicated pgx connection.
	var pgConn *pgx.Conn
	if strings.EqualFold(strings.TrimSpace(cfg.Storage.Driver), "postgres") {
		pgConn, err = pgx.Connect(context.Background(), cfg.Storage.DSN)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		moduleOpts = append(moduleOpts, sluggable.WithPeerFinder(ArticlePeers(pgConn)))
	}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, sluggable.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.IDGenerator != nil {
		moduleOpts = append(moduleOpts, sluggable.WithIDGenerator(opts.IDGenerator))
	}
	module, err := sluggable.New(cfg, moduleOpts...)
	if err != nil {
		out := &Module{DB: db, pgConn: pgConn}
		_ = out.Close()
		return nil, fmt.Errorf("initialise sluggable module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: commands.CommandLogger(module.Container().LoggerProvider(), "cli"),
		DB:     db,
		pgConn: pgConn,
	}, nil
}

// ArticlePeers returns a pgx peer finder that knows the articles table.
func ArticlePeers(q peers.Querier) *peers.PgxFinder {
	return peers.NewPgxFinder(q).Register(articles.TypeName, peers.Table{
		Name:       "articles",
		SoftDelete: "deleted_at",
	})
}

func loadConfig(opts Options) (sluggable.Config, error) {
	cfg := sluggable.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := sluggable.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if driver := strings.TrimSpace(opts.Driver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if opts.CacheEnabled != nil {
		cfg.Cache.Enabled = *opts.CacheEnabled
	}
	return cfg, cfg.Validate()
}

// OpenDB opens a bun database for driver ("sqlite" or "postgres").
func OpenDB(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", sluggable.ErrStorageDriverUnknown, driver)
	}
}

// BindFlags registers the shared storage and logging flags on fs.
func BindFlags(fs *flag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.Driver, "driver", "", "Storage driver (sqlite or postgres)")
	fs.StringVar(&opts.DSN, "dsn", "", "Database connection string")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level override")
	return opts
}
