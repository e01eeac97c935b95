package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlLayout), 0644))

	w, err := WatchLayout(path)
	require.NoError(t, err)
	defer w.Close()

	changed := yamlLayout + `  - name: extra
    mesh: prism
    texture: Textures/moss.png
`
	require.NoError(t, os.WriteFile(path, []byte(changed), 0644))

	var got *Layout
	require.Eventually(t, func() bool {
		select {
		case l := <-w.Layouts():
			got = l
		default:
		}
		return got != nil && len(got.Placements) == 3
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "extra", got.Placements[2].Name)
}

func TestLayoutWatcherSkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlLayout), 0644))

	w, err := WatchLayout(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("placements: []\n"), 0644))
	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(yamlLayout), 0644))

	assert.Never(t, func() bool {
		select {
		case <-w.Layouts():
			return true
		default:
			return false
		}
	}, 300*time.Millisecond, 20*time.Millisecond)
}

func TestWatchLayoutMissingDir(t *testing.T) {
	_, err := WatchLayout(filepath.Join(t.TempDir(), "nope", "layout.yaml"))
	assert.Error(t, err)
}

func TestLayoutWatcherCloseStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlLayout), 0644))

	w, err := WatchLayout(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
