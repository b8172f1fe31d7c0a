package handlers

import (
	"net/http"

	"sop-manager/models"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	approvalService services.ApprovalService
}

func NewApprovalHandler(approvalService services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// Submit sends an SOP into the approval queue, snapshotting its current state.
func (h *ApprovalHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	approval, err := h.approvalService.Submit(id, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, approval)
}

func (h *ApprovalHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ResolveApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.approvalService.Approve(id, req.Comments, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SOP approved"})
}

func (h *ApprovalHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ResolveApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.approvalService.Reject(id, req.Comments, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SOP rejected"})
}

func (h *ApprovalHandler) GetPending(c *gin.Context) {
	summaries, err := h.approvalService.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ApprovalHandler) GetPendingDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.approvalService.PendingDetail(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ApprovalHandler) CountPending(c *gin.Context) {
	count, err := h.approvalService.CountPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *ApprovalHandler) GetChanges(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	changes, err := h.approvalService.Changes(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, changes)
}

func (h *ApprovalHandler) GetHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.approvalService.HistoryBySOP(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
