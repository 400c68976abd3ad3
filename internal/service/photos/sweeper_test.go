package photos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/photostore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReferences struct {
	mock.Mock
}

func (m *MockReferences) PhotoKeys(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func writePhoto(t *testing.T, dir, key string, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, key)
	require.NoError(t, os.WriteFile(path, []byte(key), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestSweeper_RemovesOldOrphans(t *testing.T) {
	dir := t.TempDir()
	store, err := photostore.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	writePhoto(t, dir, "1-linked.png", now.Add(-2*time.Hour))
	writePhoto(t, dir, "2-orphan.png", now.Add(-2*time.Hour))
	writePhoto(t, dir, "3-fresh.png", now.Add(-time.Minute))

	refs := &MockReferences{}
	refs.On("PhotoKeys", mock.Anything).Return(map[string]struct{}{"1-linked.png": {}}, nil).Once()

	sweeper := NewSweeper(store, refs, time.Hour, logging.Nop())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"2-orphan.png"}, removed)

	objects, err := store.List(context.Background())
	require.NoError(t, err)
	var left []string
	for _, o := range objects {
		left = append(left, o.Key)
	}
	assert.ElementsMatch(t, []string{"1-linked.png", "3-fresh.png"}, left)
}

func TestSweeper_EmptyStoreSkipsDatabase(t *testing.T) {
	store, err := photostore.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	refs := &MockReferences{}

	removed, err := NewSweeper(store, refs, time.Hour, logging.Nop()).Sweep(context.Background())

	require.NoError(t, err)
	assert.Empty(t, removed)
	refs.AssertNotCalled(t, "PhotoKeys", mock.Anything)
}

func TestSweeper_ReferenceError(t *testing.T) {
	dir := t.TempDir()
	store, err := photostore.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	writePhoto(t, dir, "1-a.png", time.Now().Add(-24*time.Hour))

	refs := &MockReferences{}
	refs.On("PhotoKeys", mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err = NewSweeper(store, refs, time.Hour, logging.Nop()).Sweep(context.Background())

	assert.ErrorContains(t, err, "db down")
	_, statErr := os.Stat(filepath.Join(dir, "1-a.png"))
	assert.NoError(t, statErr)
}
