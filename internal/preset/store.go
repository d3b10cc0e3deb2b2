package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/stackgen-cli/stackgen/internal/domain"
)

var (
	// ErrReservedName is returned when a mutating operation targets a
	// built-in preset id.
	ErrReservedName = errors.New("preset name is reserved")

	// ErrNotFound is returned by SetDefault for an unknown preset.
	ErrNotFound = errors.New("preset not found")
)

// Store persists custom presets and the default-preset pointer in a
// single JSON file. Every mutating call is read-modify-write; there is
// no cross-process locking, so two concurrent CLI invocations race
// under last-writer-wins semantics.
type Store struct {
	path string
	fs   domain.FileSystemPort
	now  func() time.Time
	log  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for recoverable load failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string, fs domain.FileSystemPort, opts ...Option) *Store {
	s := &Store{
		path: path,
		fs:   fs,
		now:  time.Now,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the backing file. A missing, unreadable or corrupt file is
// treated as an empty store rather than an error.
func (s *Store) Load() domain.PresetsConfig {
	cfg := domain.PresetsConfig{Presets: map[string]domain.CustomPreset{}}
	b, err := s.fs.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("preset file unreadable, starting empty", "path", s.path, "error", err)
		}
		return cfg
	}
	var fileCfg domain.PresetsConfig
	if err := json.Unmarshal(b, &fileCfg); err != nil {
		s.log.Warn("preset file corrupt, starting empty", "path", s.path, "error", err)
		return cfg
	}
	if fileCfg.Presets == nil {
		fileCfg.Presets = map[string]domain.CustomPreset{}
	}
	return fileCfg
}

func (s *Store) persist(cfg domain.PresetsConfig) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := s.fs.WriteFile(s.path, b); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}

// Save upserts a custom preset. The first save sets createdAt; later
// saves of the same name keep createdAt and refresh updatedAt. An empty
// description preserves the previous one.
func (s *Store) Save(name string, config domain.ConfigPatch, description string) (domain.CustomPreset, error) {
	name = strings.TrimSpace(name)
	if IsReserved(name) {
		return domain.CustomPreset{}, fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	cfg := s.Load()
	key := strings.ToLower(name)
	now := s.now().UTC()

	p := domain.CustomPreset{
		Name:        name,
		Description: description,
		Config:      config,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if prev, ok := cfg.Presets[key]; ok {
		p.CreatedAt = prev.CreatedAt
		if description == "" {
			p.Description = prev.Description
		}
	}
	cfg.Presets[key] = p
	if err := s.persist(cfg); err != nil {
		return domain.CustomPreset{}, err
	}
	return p, nil
}

// Create saves a preset for the first time. It shares Save's contract;
// the split exists so the CLI verbs map one to one.
func (s *Store) Create(name string, config domain.ConfigPatch, description string) (domain.CustomPreset, error) {
	return s.Save(name, config, description)
}

// Delete removes a custom preset. It reports whether anything was
// removed; deleting an absent preset is not an error. Deleting the
// current default clears the default pointer.
func (s *Store) Delete(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if IsReserved(name) {
		return false, fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	cfg := s.Load()
	key := strings.ToLower(name)
	if _, ok := cfg.Presets[key]; !ok {
		return false, nil
	}
	delete(cfg.Presets, key)
	if strings.EqualFold(cfg.DefaultPreset, name) {
		cfg.DefaultPreset = ""
	}
	if err := s.persist(cfg); err != nil {
		return false, err
	}
	return true, nil
}

// SetDefault persists the default-preset pointer. The name must be a
// built-in id or an existing custom preset; an empty name clears the
// pointer.
func (s *Store) SetDefault(name string) error {
	name = strings.TrimSpace(name)
	cfg := s.Load()
	if name == "" {
		cfg.DefaultPreset = ""
		return s.persist(cfg)
	}
	key := strings.ToLower(name)
	if !IsReserved(name) {
		if _, ok := cfg.Presets[key]; !ok {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
	}
	cfg.DefaultPreset = key
	return s.persist(cfg)
}

// Default returns the persisted default-preset pointer, if any.
func (s *Store) Default() string {
	return s.Load().DefaultPreset
}

// Get returns a custom preset by name, case-insensitively.
func (s *Store) Get(name string) (domain.CustomPreset, bool) {
	p, ok := s.Load().Presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// List returns all custom presets sorted by name.
func (s *Store) List() []domain.CustomPreset {
	cfg := s.Load()
	out := make([]domain.CustomPreset, 0, len(cfg.Presets))
	for _, p := range cfg.Presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
