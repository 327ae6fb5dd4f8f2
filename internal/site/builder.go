// Package site emits the deployable static version of the portfolio: the
// saved card sequence rendered straight into the page, with every editing
// affordance stripped. It reads the card store and asset tree directly, in
// process, never over HTTP.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Kyz7/portfolio/internal/cards"
	"github.com/Kyz7/portfolio/internal/render"
)

const editorScript = "card-editor.js"

var (
	gridRe     = regexp.MustCompile(`(?s)<div class="card-grid">.*?</div>`)
	sortableRe = regexp.MustCompile(`(?i)<script src="[^"]*sortable[^"]*"></script>`)
)

type Builder struct {
	Store     *cards.Store
	IndexFile string
	DistDir   string
	// StaticDirs are copied into the dist dir under their base names.
	StaticDirs []string
}

// Build produces a fresh dist tree and returns the number of cards rendered.
func (b *Builder) Build() (int, error) {
	if err := os.RemoveAll(b.DistDir); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(b.DistDir, 0755); err != nil {
		return 0, err
	}

	sequence, err := b.Store.Load()
	if err != nil {
		return 0, fmt.Errorf("reading cards data: %w", err)
	}

	page, err := os.ReadFile(b.IndexFile)
	if err != nil {
		return 0, fmt.Errorf("reading index page: %w", err)
	}

	html := b.injectGrid(string(page), sequence)

	if err := os.WriteFile(filepath.Join(b.DistDir, "index.html"), []byte(html), 0644); err != nil {
		return 0, err
	}

	for _, dir := range b.StaticDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		dest := filepath.Join(b.DistDir, filepath.Base(dir))
		if err := copyDir(dir, dest); err != nil {
			return 0, fmt.Errorf("copying %s: %w", dir, err)
		}
	}

	return len(sequence), nil
}

// injectGrid replaces the card grid contents with the rendered sequence and
// swaps the editor script for the read-only viewer.
func (b *Builder) injectGrid(page string, sequence []cards.Card) string {
	grid := `<div class="card-grid">` + "\n" + render.Grid(sequence) + "\n</div>"
	page = gridRe.ReplaceAllStringFunc(page, func(string) string { return grid })

	page = sortableRe.ReplaceAllString(page, "")
	page = strings.Replace(page,
		`<script src="js/card-editor.js"></script>`,
		`<script src="js/card-viewer.js"></script>`, 1)

	return page
}

// copyDir copies a static tree, leaving out the editor script so the built
// site has no way to mutate anything.
func copyDir(src, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}
		if entry.Name() == editorScript {
			continue
		}
		data, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(destPath, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
