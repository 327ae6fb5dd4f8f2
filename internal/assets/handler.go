package assets

import (
	"errors"
	"log"
	"strings"

	"github.com/Kyz7/portfolio/internal/response"
	"github.com/gofiber/fiber/v2"
)

var manager *Manager

func Init(root string) error {
	manager = NewManager(root)
	return manager.InitRoot()
}

// DefaultManager returns the manager the handlers read from.
func DefaultManager() *Manager {
	return manager
}

func ListAssetsHandler(c *fiber.Ctx) error {
	listed, err := manager.List()
	if err != nil {
		return c.JSON([]Asset{})
	}
	return c.JSON(listed)
}

func ListFoldersHandler(c *fiber.Ctx) error {
	folders, err := manager.Folders()
	if err != nil {
		log.Println("Error listing folders:", err)
		return c.JSON([]Folder{})
	}
	return c.JSON(folders)
}

func FolderAssetsHandler(c *fiber.Ctx) error {
	folder := c.Query("folder")
	if folder == "" {
		return response.BadRequest(c, "Folder name required")
	}

	listed, err := manager.ListFolder(folder)
	if errors.Is(err, ErrOutsideRoot) {
		return response.Forbidden(c, "Invalid folder path")
	}
	if err != nil {
		log.Println("Error reading folder assets:", err)
		return response.InternalError(c, "Failed to read folder assets")
	}
	return c.JSON(listed)
}

func CheckFileHandler(c *fiber.Ctx) error {
	var body struct {
		Filename string `json:"filename"`
	}
	if err := c.BodyParser(&body); err != nil || body.Filename == "" {
		return response.BadRequest(c, "Filename required")
	}

	exists, path := manager.CheckExists(body.Filename)
	if exists {
		return c.JSON(fiber.Map{"exists": true, "path": path})
	}
	return c.JSON(fiber.Map{"exists": false})
}

func UploadHandler(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file uploaded")
	}

	contentType := file.Header.Get("Content-Type")
	if !isMedia(file.Filename) || !allowedMIME(contentType) {
		return response.BadRequest(c, "Only images and videos are allowed")
	}

	maxSize := int64(10 * 1024 * 1024) // 10MB
	if strings.HasPrefix(contentType, "video/") {
		maxSize = int64(100 * 1024 * 1024) // 100MB for videos
	}
	if file.Size > maxSize {
		return response.BadRequest(c, "File too large")
	}

	src, err := file.Open()
	if err != nil {
		return response.InternalError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	path, err := manager.Store(src, file.Filename, contentType)
	if err != nil {
		log.Println("Error storing upload:", err)
		return response.InternalError(c, "Failed to store file")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"path":     path,
		"filename": file.Filename,
	})
}

// allowedMIME mirrors the extension allow-list against the declared MIME
// type, e.g. image/jpeg matches the jpeg token.
func allowedMIME(contentType string) bool {
	contentType = strings.ToLower(contentType)
	for ext := range mediaExts {
		if strings.Contains(contentType, strings.TrimPrefix(ext, ".")) {
			return true
		}
	}
	return false
}
