package assets

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"
)

const PublicPrefix = "/assets/images"

var mediaExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".mp4":  {},
	".webm": {},
	".mov":  {},
}

var videoExts = map[string]struct{}{
	".mp4":  {},
	".webm": {},
	".mov":  {},
}

// ErrOutsideRoot is returned when a folder-scoped read resolves outside the
// asset root.
var ErrOutsideRoot = errors.New("folder path outside asset root")

// Asset is one stored media file addressable by a public path.
type Asset struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	IsVideo  bool   `json:"isVideo"`
}

// Folder describes an asset subdirectory holding project media.
type Folder struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	FileCount int    `json:"fileCount"`
	Preview   string `json:"preview"`
}

// Manager reads and writes media files under a single asset root, which is
// served directly at /assets/images. File identity is the filename itself;
// no other per-asset metadata is persisted.
type Manager struct {
	root string
}

func NewManager(root string) *Manager {
	return &Manager{root: root}
}

func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) InitRoot() error {
	return os.MkdirAll(m.root, 0755)
}

// CheckExists reports whether the filename, or a stored variant of it, is
// already present. After an exact match it falls back to any file sharing the
// requested stem as a prefix plus the same extension, which treats
// timestamp-uniquified copies from other tooling as the same logical asset.
// With several variants the first in directory listing order wins; listing
// order is not guaranteed stable.
func (m *Manager) CheckExists(filename string) (bool, string) {
	if _, err := os.Stat(filepath.Join(m.root, filename)); err == nil {
		return true, PublicPrefix + "/" + filename
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return false, ""
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, base) && strings.HasSuffix(name, ext) {
			return true, PublicPrefix + "/" + name
		}
	}
	return false, ""
}

// StoreLocal writes the file under its original filename, verbatim. Collision
// avoidance is the caller's job via CheckExists first.
func (m *Manager) StoreLocal(src io.Reader, filename string) (string, error) {
	dst, err := os.Create(filepath.Join(m.root, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + filename, nil
}

// List returns the media files directly in the asset root.
func (m *Manager) List() ([]Asset, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, err
	}
	listed := []Asset{}
	for _, entry := range entries {
		if entry.IsDir() || !isMedia(entry.Name()) {
			continue
		}
		listed = append(listed, Asset{
			Filename: entry.Name(),
			Path:     PublicPrefix + "/" + entry.Name(),
			IsVideo:  isVideo(entry.Name()),
		})
	}
	return listed, nil
}

// ListFolder returns the media files inside a named subdirectory, naturally
// sorted so 2.jpg comes before 10.jpg. A missing folder yields an empty
// sequence, indistinguishable from a folder with no assets yet.
func (m *Manager) ListFolder(name string) ([]Asset, error) {
	dir, err := m.containedPath(name)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Asset{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && isMedia(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	natsort.Sort(names)

	listed := make([]Asset, 0, len(names))
	for _, filename := range names {
		listed = append(listed, Asset{
			Filename: filename,
			Path:     PublicPrefix + "/" + name + "/" + filename,
			IsVideo:  isVideo(filename),
		})
	}
	return listed, nil
}

// Folders returns the asset subdirectories that contain at least one media
// file, each with its file count and a first-file preview.
func (m *Manager) Folders() ([]Folder, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, err
	}

	folders := []Folder{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		children, err := os.ReadDir(filepath.Join(m.root, entry.Name()))
		if err != nil {
			continue
		}
		media := []string{}
		for _, child := range children {
			if !child.IsDir() && isMedia(child.Name()) {
				media = append(media, child.Name())
			}
		}
		if len(media) == 0 {
			continue
		}
		folders = append(folders, Folder{
			Name:      entry.Name(),
			Path:      entry.Name(),
			FileCount: len(media),
			Preview:   PublicPrefix + "/" + entry.Name() + "/" + media[0],
		})
	}
	return folders, nil
}

// containedPath resolves a folder name inside the root and rejects anything
// that escapes it, preventing traversal via folder-name injection.
func (m *Manager) containedPath(name string) (string, error) {
	resolved := filepath.Join(m.root, name)
	rel, err := filepath.Rel(m.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return resolved, nil
}

func isMedia(filename string) bool {
	_, ok := mediaExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

func isVideo(filename string) bool {
	_, ok := videoExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}
