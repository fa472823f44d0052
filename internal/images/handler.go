package images

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"cardvault/pkg/store"
)

// thumbWidth is the pixel width of generated thumbnails; height keeps the
// source aspect ratio.
const thumbWidth = 320

type Handler struct {
	Store     store.CardStore
	Dir       string // filesystem root for stored images
	PublicURL string // external base URL, used for QR payloads
}

func NewHandler(st store.CardStore, dir, publicURL string) *Handler {
	return &Handler{Store: st, Dir: dir, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/images", h.upload)
	rg.GET("/:id/qr", h.qr)
}

// upload stores front and/or back card photos, generates thumbnails, and
// writes the resulting URLs onto the card.
func (h *Handler) upload(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	card, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}

	front, _ := c.FormFile("front")
	back, _ := c.FormFile("back")
	if front == nil && back == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "front or back image file required"})
		return
	}

	cand := card.CandidateCard
	if front != nil {
		url, err := h.saveImage(front)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cand.FrontImageURL = url
	}
	if back != nil {
		url, err := h.saveImage(back)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cand.BackImageURL = url
	}

	updated, err := h.Store.Update(c.Request.Context(), id, cand)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// qr renders a PNG QR code pointing at the card resource, for printed
// binder labels.
func (h *Handler) qr(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	if _, err := h.Store.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}

	size := 256
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 64 && v <= 1024 {
			size = v
		}
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/cards/%d", h.PublicURL, id), qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) saveImage(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(h.Dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(h.Dir, "thumb_"+name)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return "/uploads/" + name, nil
}
