package handlers

import (
	"net/http"

	"cleanitalia/database/repository"
	"cleanitalia/models"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkerHandler covers admin CRUD for staffing records and blocked slots.
type WorkerHandler struct {
	Workers repository.WorkerRepository
	Blocked repository.BlockedSlotRepository
	Logger  *zap.Logger
}

func NewWorkerHandler(workers repository.WorkerRepository, blocked repository.BlockedSlotRepository, logger *zap.Logger) *WorkerHandler {
	return &WorkerHandler{Workers: workers, Blocked: blocked, Logger: logger}
}

func (h *WorkerHandler) ListWorkersHandler(c *gin.Context) {
	workers, err := h.Workers.GetAll(c.Request.Context())
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

// CreateWorkerHandler accepts records synced from the admin client's offline
// queue; the server assigns the authoritative id while the clientRef carried
// in the payload lets the client reconcile its local draft.
func (h *WorkerHandler) CreateWorkerHandler(c *gin.Context) {
	var w models.Worker
	if err := c.ShouldBindJSON(&w); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if w.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "worker name is required")
		return
	}
	w.ID = 0
	if err := h.Workers.Create(c.Request.Context(), &w); err != nil {
		respondRepoError(c, err)
		return
	}
	h.Logger.Info("Worker created", zap.Int64("id", w.ID), zap.String("clientRef", w.ClientRef))
	c.JSON(http.StatusCreated, w)
}

func (h *WorkerHandler) UpdateWorkerHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var w models.Worker
	if err := c.ShouldBindJSON(&w); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	w.ID = id
	if err := h.Workers.Update(c.Request.Context(), &w); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WorkerHandler) DeleteWorkerHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Workers.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "worker deleted"})
}

// --- Blocked slots ---

func (h *WorkerHandler) ListBlockedSlotsHandler(c *gin.Context) {
	slots, err := h.Blocked.GetAll(c.Request.Context())
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *WorkerHandler) CreateBlockedSlotHandler(c *gin.Context) {
	var slot models.BlockedSlot
	if err := c.ShouldBindJSON(&slot); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if slot.CityID == 0 || slot.Date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "cityId and date are required")
		return
	}
	if err := h.Blocked.Create(c.Request.Context(), &slot); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *WorkerHandler) DeleteBlockedSlotHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Blocked.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blocked slot deleted"})
}
