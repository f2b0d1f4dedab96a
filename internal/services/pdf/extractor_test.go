package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestSweepTemp(t *testing.T) {
	e := NewExtractor(arbor.NewLogger())

	stale := filepath.Join(e.tempDir, "extract_sweep_test_stale.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(e.tempDir, "extract_sweep_test_fresh.pdf")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0644))
	defer os.Remove(fresh)

	removed, err := e.SweepTemp(time.Hour)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, removed, 1)
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
