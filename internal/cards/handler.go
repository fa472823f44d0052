package cards

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardvault/internal/events"
	"cardvault/internal/importer"
	"cardvault/internal/pricing"
	"cardvault/pkg/logger"
	"cardvault/pkg/models"
	"cardvault/pkg/store"
)

type Handler struct {
	Store  store.CardStore
	Hub    *events.Hub
	Pricer *pricing.Service
}

func NewHandler(st store.CardStore, hub *events.Hub, pricer *pricing.Service) *Handler {
	return &Handler{Store: st, Hub: hub, Pricer: pricer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/stats", h.stats)
	rg.GET("/:id", h.getByID)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.remove)
	rg.POST("/:id/price", h.refreshPrice)
}

func (h *Handler) list(c *gin.Context) {
	q := store.Query{
		Q:         c.Query("q"),
		Sport:     models.Sport(strings.ToLower(strings.TrimSpace(c.Query("sport")))),
		Condition: models.Condition(strings.TrimSpace(c.Query("condition"))),
		Limit:     parseInt(c.Query("limit"), 20),
		Offset:    parseInt(c.Query("offset"), 0),
	}

	items, total, err := h.Store.List(c.Request.Context(), q)
	if err != nil {
		logger.Log.Error("list cards failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
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
	c.JSON(http.StatusOK, card)
}

func (h *Handler) create(c *gin.Context) {
	var cand models.CandidateCard
	if err := c.ShouldBindJSON(&cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cand = importer.NormalizeCandidate(cand)
	if err := importer.ValidateCandidate(cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.Store.Create(c.Request.Context(), cand)
	if err != nil {
		logger.Log.Error("create card failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcast("card.created", card)
	c.JSON(http.StatusCreated, card)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var cand models.CandidateCard
	if err := c.ShouldBindJSON(&cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	cand = importer.NormalizeCandidate(cand)
	if err := importer.ValidateCandidate(cand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.Store.Update(c.Request.Context(), id, cand)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcast("card.updated", card)
	c.JSON(http.StatusOK, card)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	card, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	h.broadcast("card.deleted", card)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// refreshPrice runs the simulated market lookup and appends the result to
// the card's price history.
func (h *Handler) refreshPrice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
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

	point := h.Pricer.Estimate(card)
	updated, err := h.Store.AppendPrice(c.Request.Context(), id, point)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcast("card.updated", updated)
	c.JSON(http.StatusOK, updated)
}

type statsResponse struct {
	TotalCards  int                      `json:"total_cards"`
	TotalValue  float64                  `json:"total_value"`
	TotalCost   float64                  `json:"total_cost"`
	BySport     map[models.Sport]int     `json:"by_sport"`
	ByCondition map[models.Condition]int `json:"by_condition"`
}

func (h *Handler) stats(c *gin.Context) {
	all, err := h.Store.All(c.Request.Context())
	if err != nil {
		logger.Log.Error("stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}

	resp := statsResponse{
		BySport:     make(map[models.Sport]int),
		ByCondition: make(map[models.Condition]int),
	}
	for _, card := range all {
		resp.TotalCards++
		resp.TotalValue += card.CurrentValue
		resp.TotalCost += card.PurchasePrice
		resp.BySport[card.Sport]++
		resp.ByCondition[card.Condition]++
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) broadcast(typ string, card models.Card) {
	if h.Hub == nil {
		return
	}
	go h.Hub.Broadcast(events.NewEvent(typ, card))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return 0, false
	}
	return id, true
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
