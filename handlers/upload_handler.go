package handlers

import (
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Adnan2208/CampusCommerce/config"
	"github.com/Adnan2208/CampusCommerce/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const (
	maxUploadSize  = 5 * 1024 * 1024 // 5MB
	thumbnailWidth = 320
)

// UploadHandler handles listing image uploads
type UploadHandler struct {
	Cfg *config.Config
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{Cfg: cfg}
}

// UploadImage - POST /api/upload
// Stores the image under a unique name and writes a 320px thumbnail
// alongside it for listing cards.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Image file is required"))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Only image files are allowed!"))
	}
	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Image must be smaller than 5MB"))
	}

	filename := uuid.NewString() + ext
	destination := filepath.Join(h.Cfg.UploadDir, "products", filename)

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save file"))
	}
	if err := c.SaveFile(file, destination); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save file"))
	}

	// Thumbnail is best-effort; the original is what listings link to.
	if thumbErr := writeThumbnail(destination, ext); thumbErr != nil {
		log.Printf("thumbnail for %s skipped: %v", filename, thumbErr)
	}

	return c.JSON(models.SuccessResponse("", fiber.Map{
		"url": "/uploads/products/" + filename,
	}))
}

func writeThumbnail(path, ext string) error {
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil // only raster formats the stdlib decodes
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	var img image.Image
	if ext == ".png" {
		img, err = png.Decode(src)
	} else {
		img, err = jpeg.Decode(src)
	}
	if err != nil {
		return err
	}

	thumb := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)

	out, err := os.Create(thumbPath(path, ext))
	if err != nil {
		return err
	}
	defer out.Close()

	if ext == ".png" {
		return png.Encode(out, thumb)
	}
	return jpeg.Encode(out, thumb, &jpeg.Options{Quality: 80})
}

func thumbPath(path, ext string) string {
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}
