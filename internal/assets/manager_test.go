package assets_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kyz7/portfolio/internal/assets"
	"github.com/stretchr/testify/assert"
)

func newTestManager(t *testing.T) *assets.Manager {
	t.Helper()
	m := assets.NewManager(filepath.Join(t.TempDir(), "images"))
	assert.NoError(t, m.InitRoot())
	return m
}

func seed(t *testing.T, m *assets.Manager, relPath string) {
	t.Helper()
	full := filepath.Join(m.Root(), relPath)
	assert.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	assert.NoError(t, os.WriteFile(full, []byte("content"), 0644))
}

func TestCheckExists(t *testing.T) {
	m := newTestManager(t)
	seed(t, m, "photo-1699999999.jpg")
	seed(t, m, "exact.png")

	t.Run("Exact filename match", func(t *testing.T) {
		exists, path := m.CheckExists("exact.png")
		assert.True(t, exists)
		assert.Equal(t, "/assets/images/exact.png", path)
	})

	t.Run("Stem variant with uniquification suffix matches", func(t *testing.T) {
		exists, path := m.CheckExists("photo.jpg")
		assert.True(t, exists)
		assert.Equal(t, "/assets/images/photo-1699999999.jpg", path)
	})

	t.Run("Same stem but different extension does not match", func(t *testing.T) {
		exists, _ := m.CheckExists("photo.png")
		assert.False(t, exists)
	})

	t.Run("Unknown filename", func(t *testing.T) {
		exists, path := m.CheckExists("missing.jpg")
		assert.False(t, exists)
		assert.Empty(t, path)
	})
}

func TestStoreLocal(t *testing.T) {
	m := newTestManager(t)

	path, err := m.StoreLocal(strings.NewReader("fake image"), "shot 1.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "/assets/images/shot 1.jpg", path, "filename must be stored verbatim, no uniquification")

	data, err := os.ReadFile(filepath.Join(m.Root(), "shot 1.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, "fake image", string(data))
}

func TestList(t *testing.T) {
	m := newTestManager(t)
	seed(t, m, "a.jpg")
	seed(t, m, "clip.mp4")
	seed(t, m, "notes.txt")
	seed(t, m, "folder/inside.jpg")

	listed, err := m.List()
	assert.NoError(t, err)
	assert.Len(t, listed, 2, "non-media files and subdirectories are skipped")

	byName := map[string]assets.Asset{}
	for _, a := range listed {
		byName[a.Filename] = a
	}
	assert.False(t, byName["a.jpg"].IsVideo)
	assert.True(t, byName["clip.mp4"].IsVideo)
	assert.Equal(t, "/assets/images/clip.mp4", byName["clip.mp4"].Path)
}

func TestListFolder(t *testing.T) {
	m := newTestManager(t)
	seed(t, m, "project/10.jpg")
	seed(t, m, "project/2.jpg")
	seed(t, m, "project/1.jpg")
	seed(t, m, "project/demo.mov")
	seed(t, m, "project/readme.md")

	t.Run("Natural sort orders digit runs numerically", func(t *testing.T) {
		listed, err := m.ListFolder("project")
		assert.NoError(t, err)

		names := []string{}
		for _, a := range listed {
			names = append(names, a.Filename)
		}
		assert.Equal(t, []string{"1.jpg", "2.jpg", "10.jpg", "demo.mov"}, names)
	})

	t.Run("Video classification matches top-level assets", func(t *testing.T) {
		listed, err := m.ListFolder("project")
		assert.NoError(t, err)
		assert.True(t, listed[3].IsVideo)
		assert.Equal(t, "/assets/images/project/demo.mov", listed[3].Path)
	})

	t.Run("Missing folder is an empty sequence, not an error", func(t *testing.T) {
		listed, err := m.ListFolder("nope")
		assert.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("Traversal outside the root is rejected", func(t *testing.T) {
		_, err := m.ListFolder("../../etc")
		assert.ErrorIs(t, err, assets.ErrOutsideRoot)

		_, err = m.ListFolder("..")
		assert.ErrorIs(t, err, assets.ErrOutsideRoot)
	})
}

func TestFolders(t *testing.T) {
	m := newTestManager(t)
	seed(t, m, "robot/1.jpg")
	seed(t, m, "robot/2.jpg")
	seed(t, m, "empty-folder/notes.txt")
	seed(t, m, "loose.jpg")

	folders, err := m.Folders()
	assert.NoError(t, err)
	assert.Len(t, folders, 1, "folders without media are filtered out")

	assert.Equal(t, "robot", folders[0].Name)
	assert.Equal(t, 2, folders[0].FileCount)
	assert.Contains(t, folders[0].Preview, "/assets/images/robot/")
}
