package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/georgeji/change-bridge/internal/logger"
	"github.com/georgeji/change-bridge/internal/models"
)

// ResetMessage reply of a successful DELETE /changes
const ResetMessage = "Queue truncated successfully (all entries deleted, IDs reset to 1)"

// Ledger queue operations exposed over HTTP
type Ledger interface {
	ReadFrom(ctx context.Context, minSequence uint64, pageSize int) []models.ChangeRecord
	MaxSequence(ctx context.Context) uint64
	Reset(ctx context.Context) error
}

// SubscriberCounter reports connected feed subscribers
type SubscriberCounter interface {
	GetSubscriberCount() int
}

// ChangeHandler pull API over the change ledger
type ChangeHandler struct {
	ledger Ledger
	feed   SubscriberCounter
	logger *zap.Logger
}

// NewChangeHandler feed may be nil when the change feed is disabled
func NewChangeHandler(ledger Ledger, feed SubscriberCounter, logger *zap.Logger) *ChangeHandler {
	return &ChangeHandler{
		ledger: ledger,
		feed:   feed,
		logger: logger,
	}
}

func (h *ChangeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/changes", h.ListChanges)
	r.GET("/changes/max", h.MaxSequence)
	r.DELETE("/changes", h.ResetChanges)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

type changeView struct {
	QueueID    uint64  `json:"queue_id"`
	EntityType string  `json:"entity_type"`
	EntityIDs  string  `json:"entity_ids"`
	Operation  string  `json:"operation"`
	UserName   *string `json:"user_name"`
	Context    string  `json:"context"`
	CreatedAt  string  `json:"created_at"`
}

func toView(rec models.ChangeRecord) changeView {
	return changeView{
		QueueID:    rec.Sequence,
		EntityType: rec.EntityType,
		EntityIDs:  rec.EntityID,
		Operation:  string(rec.Operation),
		UserName:   rec.UserName,
		Context:    rec.Context,
		CreatedAt:  rec.CreatedAt.UTC().Format(models.CreatedAtLayout),
	}
}

// ListChanges GET /changes?minSequence=&pageSize=
func (h *ChangeHandler) ListChanges(c *gin.Context) {
	minSequence, err := queryUint(c, 0, "minSequence", "minQueueId")
	if err != nil {
		badRequest(c, err)
		return
	}

	pageSize, err := queryPageSize(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	records := h.ledger.ReadFrom(c.Request.Context(), minSequence, pageSize)
	data := make([]changeView, 0, len(records))
	for _, rec := range records {
		data = append(data, toView(rec))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// MaxSequence GET /changes/max
func (h *ChangeHandler) MaxSequence(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"maxSequence": h.ledger.MaxSequence(c.Request.Context()),
	})
}

// ResetChanges DELETE /changes
func (h *ChangeHandler) ResetChanges(c *gin.Context) {
	if err := h.ledger.Reset(c.Request.Context()); err != nil {
		logger.FromContext(c).Error("Reset change ledger failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to truncate queue: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": ResetMessage,
	})
}

// Health GET /health
func (h *ChangeHandler) Health(c *gin.Context) {
	subscribers := 0
	if h.feed != nil {
		subscribers = h.feed.GetSubscriberCount()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"subscribers": subscribers,
		"maxSequence": h.ledger.MaxSequence(c.Request.Context()),
	})
}
