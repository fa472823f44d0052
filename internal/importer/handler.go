package importer

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardvault/pkg/logger"
	"cardvault/pkg/models"
)

type Handler struct {
	Creator CardCreator
}

func NewHandler(creator CardCreator) *Handler {
	return &Handler{Creator: creator}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/file", h.importFile)
	rg.POST("/cards", h.importCards)
	rg.POST("/text", h.importText)
	rg.POST("/ebay", h.importEBay)
}

// importFile accepts a CSV or Excel upload plus an optional JSON-encoded
// column mapping in the "mapping" form field.
func (h *Handler) importFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	var mapping models.ColumnMapping
	if raw := c.PostForm("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid column mapping JSON"})
			return
		}
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()

	var rows []models.RawRow
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		rows, err = ParseCSVRows(f)
	case ".xlsx", ".xls":
		rows, err = ParseXLSXRows(f)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected .csv or .xlsx"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parse failed: " + err.Error()})
		return
	}

	report := ImportRows(c.Request.Context(), h.Creator, rows, mapping)
	logger.Log.Info("file import finished",
		zap.String("file", fileHeader.Filename),
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed),
	)
	c.JSON(http.StatusOK, report)
}

type importCardsReq struct {
	Cards []models.CandidateCard `json:"cards" binding:"required"`
}

// importCards accepts pre-shaped candidates, bypassing column mapping.
func (h *Handler) importCards(c *gin.Context) {
	var req importCardsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json, expected {\"cards\": [...]}"})
		return
	}

	candidates := make([]models.CandidateCard, len(req.Cards))
	for i, cand := range req.Cards {
		candidates[i] = NormalizeCandidate(cand)
	}

	c.JSON(http.StatusOK, PersistCandidates(c.Request.Context(), h.Creator, candidates))
}

type importTextReq struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) importText(c *gin.Context) {
	var req importTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json, expected {\"text\": \"...\"}"})
		return
	}

	c.JSON(http.StatusOK, ImportText(c.Request.Context(), h.Creator, req.Text))
}

// importEBay accepts an Excel export in eBay's fixed column vocabulary.
func (h *Handler) importEBay(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()

	rows, err := ParseXLSXRows(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parse failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportEBayRows(c.Request.Context(), h.Creator, rows))
}
