// Package csv implements the flat-file record store: per-entity path
// resolution, schema creation and soft migration, lockfile-guarded safe
// writes, and the repository implementations on top of them.
package csv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"courtledger/internal/shared/config"
	"courtledger/internal/shared/logger"
)

// Entity identifies one logical CSV file.
type Entity string

const (
	EntityBookings      Entity = "bookings"
	EntityMonthlyStats  Entity = "monthly_stats"
	EntitySubscriptions Entity = "subscriptions"
	EntityProfitShares  Entity = "profit_shares"
	EntityWaterItems    Entity = "water_items"
	EntityWaterSales    Entity = "water_sales"
)

// Entities lists every entity in export order.
var Entities = []Entity{
	EntityBookings,
	EntityMonthlyStats,
	EntitySubscriptions,
	EntityProfitShares,
	EntityWaterItems,
	EntityWaterSales,
}

func (e Entity) filename() string {
	return string(e) + ".csv"
}

// Store owns the data directory and the write primitives. All repositories
// share one Store so the advisory locking and the mutation generation
// counter cover every entity.
type Store struct {
	cfg config.StorageConfig
	log logger.Interface

	mu         sync.Mutex
	generation atomic.Int64
}

func NewStore(cfg config.StorageConfig, log logger.Interface) *Store {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Store{cfg: cfg, log: log.Named("csv.store")}
}

// Path resolves an entity's file under the data directory. When an older
// copy still sits at the legacy top-level location and none exists in the
// data directory yet, it is relocated on first access; if the move fails
// the legacy path is used transparently.
func (s *Store) Path(entity Entity) string {
	dataDir := s.ensureDataDir()
	dataPath := filepath.Join(dataDir, entity.filename())
	if _, err := os.Stat(dataPath); err == nil {
		return dataPath
	}
	legacyPath := filepath.Join(s.cfg.LegacyDir, entity.filename())
	if _, err := os.Stat(legacyPath); err == nil {
		if err := os.Rename(legacyPath, dataPath); err != nil {
			s.log.Warn("relocating legacy data file failed, keeping legacy path",
				"entity", entity, "error", err)
			return legacyPath
		}
		return dataPath
	}
	return dataPath
}

// ensureDataDir creates the data directory, falling back to the legacy
// directory when creation fails (fail-open).
func (s *Store) ensureDataDir() string {
	dir := s.cfg.DataDir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Warn("creating data dir failed, using legacy dir", "dir", dir, "error", err)
		return s.cfg.LegacyDir
	}
	return dir
}

// ModTime returns the entity file's modification time, zero when the file
// does not exist. Month-total memoization keys on these.
func (s *Store) ModTime(entity Entity) time.Time {
	info, err := os.Stat(s.Path(entity))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Generation is a process-wide counter bumped on every successful mutation;
// caches fold it into their validity signatures so invalidation does not
// depend on filesystem mtime resolution alone.
func (s *Store) Generation() int64 {
	return s.generation.Load()
}

func (s *Store) bumpGeneration() {
	s.generation.Add(1)
}

// AppendRawRow appends one row to an entity file as-is, bypassing the
// repositories and their parsing. Diagnostic tooling uses it.
func (s *Store) AppendRawRow(entity Entity, row []string) error {
	if err := s.EnsureSchema(entity); err != nil {
		return err
	}
	return s.appendRow(s.Path(entity), row)
}

// EnsureAll creates or migrates every entity file. Called once at startup
// and cheap enough for repositories to call before each operation.
func (s *Store) EnsureAll() error {
	for _, entity := range Entities {
		if err := s.EnsureSchema(entity); err != nil {
			return fmt.Errorf("ensure %s: %w", entity, err)
		}
	}
	return nil
}
