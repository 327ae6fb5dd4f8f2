package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kyz7/portfolio/internal/assets"
	"github.com/Kyz7/portfolio/internal/cards"
	"github.com/Kyz7/portfolio/internal/config"
	"github.com/Kyz7/portfolio/internal/server"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// SetupTestApp wires the app against a temp card store and asset root.
func SetupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dir := t.TempDir()
	assetRoot := filepath.Join(dir, "assets", "images")

	err := assets.Init(assetRoot)
	assert.NoError(t, err, "Failed to initialize asset root")
	assets.SetStorageMode(true)

	cards.Init(filepath.Join(dir, "data", "cards.json"))

	cfg := &config.Config{
		AssetsDir: assetRoot,
		WebDir:    filepath.Join(dir, "web"),
	}
	return server.New(cfg)
}

// SeedAsset drops a file into the active asset root, optionally inside a
// subfolder (empty folder means the root itself).
func SeedAsset(t *testing.T, folder, name string, content []byte) {
	t.Helper()

	dir := assets.DefaultManager().Root()
	if folder != "" {
		dir = filepath.Join(dir, folder)
		assert.NoError(t, os.MkdirAll(dir, 0755))
	}
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
}

func MakeRequest(app *fiber.App, method, url string, body interface{}) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		return nil, err
	}

	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	err := json.Unmarshal(rec.Body.Bytes(), out)
	assert.NoError(t, err, "Failed to parse response body")
}
