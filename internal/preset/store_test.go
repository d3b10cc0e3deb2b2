package preset_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stackgen-cli/stackgen/internal/domain"
	"github.com/stackgen-cli/stackgen/internal/infrastructure"
	"github.com/stackgen-cli/stackgen/internal/preset"
)

func newTestStore(t *testing.T, opts ...preset.Option) (*preset.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.json")
	return preset.NewStore(path, infrastructure.NewOSFileSystem(), opts...), path
}

func strp(s string) *string { return &s }

func TestStoreSave(t *testing.T) {
	t.Parallel()

	t.Run("rejects reserved names", func(t *testing.T) {
		t.Parallel()
		s, path := newTestStore(t)

		for _, name := range []string{"api", "API", "minimal", "full", "ai", "custom", "1"} {
			_, err := s.Create(name, domain.ConfigPatch{}, "")
			require.ErrorIs(t, err, preset.ErrReservedName, name)
		}

		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err), "rejected create must not touch the file")
	})

	t.Run("upsert preserves createdAt and refreshes updatedAt", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		s, _ := newTestStore(t, preset.WithClock(func() time.Time { return now }))

		first, err := s.Save("team", domain.ConfigPatch{Framework: strp("express")}, "team default")
		require.NoError(t, err)
		require.Equal(t, first.CreatedAt, first.UpdatedAt)

		now = now.Add(time.Hour)
		second, err := s.Save("team", domain.ConfigPatch{Framework: strp("hono")}, "")
		require.NoError(t, err)

		require.Equal(t, first.CreatedAt, second.CreatedAt)
		require.Equal(t, now, second.UpdatedAt)
		require.Equal(t, "hono", *second.Config.Framework)
		require.Equal(t, "team default", second.Description, "empty description keeps the old one")
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		_, err := s.Save("Team", domain.ConfigPatch{}, "")
		require.NoError(t, err)

		got, ok := s.Get("tEaM")
		require.True(t, ok)
		require.Equal(t, "Team", got.Name)
	})
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("returns false for absent preset", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		removed, err := s.Delete("doesNotExist")
		require.NoError(t, err)
		require.False(t, removed)
	})

	t.Run("rejects reserved names", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		_, err := s.Delete("full")
		require.ErrorIs(t, err, preset.ErrReservedName)
	})

	t.Run("clears default pointer when default is deleted", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		_, err := s.Save("team", domain.ConfigPatch{}, "")
		require.NoError(t, err)
		require.NoError(t, s.SetDefault("team"))
		require.Equal(t, "team", s.Default())

		removed, err := s.Delete("team")
		require.NoError(t, err)
		require.True(t, removed)
		require.Empty(t, s.Default())
	})
}

func TestStoreSetDefault(t *testing.T) {
	t.Parallel()

	t.Run("accepts built-in ids", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		require.NoError(t, s.SetDefault("api"))
		require.Equal(t, "api", s.Default())
	})

	t.Run("rejects unknown presets", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		err := s.SetDefault("ghost")
		require.ErrorIs(t, err, preset.ErrNotFound)
	})

	t.Run("empty name clears the pointer", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		require.NoError(t, s.SetDefault("api"))
		require.NoError(t, s.SetDefault(""))
		require.Empty(t, s.Default())
	})
}

func TestStoreLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file is an empty store", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		cfg := s.Load()
		require.Empty(t, cfg.Presets)
		require.Empty(t, cfg.DefaultPreset)
	})

	t.Run("corrupt file is an empty store", func(t *testing.T) {
		t.Parallel()
		s, path := newTestStore(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		cfg := s.Load()
		require.Empty(t, cfg.Presets)
	})

	t.Run("round-trips through the file", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestStore(t)

		_, err := s.Save("team", domain.ConfigPatch{Database: strp("postgres")}, "desc")
		require.NoError(t, err)

		list := s.List()
		require.Len(t, list, 1)
		require.Equal(t, "team", list[0].Name)
		require.Equal(t, "postgres", *list[0].Config.Database)
	})
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	require.True(t, preset.IsReserved("API"))
	require.False(t, preset.IsReserved("team"))

	legacy, ok := preset.Builtin("1")
	require.True(t, ok)
	minimal, ok := preset.Builtin("minimal")
	require.True(t, ok)
	require.Equal(t, minimal.Config, legacy.Config, "id 1 aliases minimal")
}
