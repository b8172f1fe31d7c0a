package handlers

import (
	"net/http"

	"sop-manager/models"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
)

type SOPHandler struct {
	sopService services.SOPService
}

func NewSOPHandler(sopService services.SOPService) *SOPHandler {
	return &SOPHandler{sopService: sopService}
}

func (h *SOPHandler) GetSOPs(c *gin.Context) {
	sops, err := h.sopService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sops)
}

func (h *SOPHandler) GetSOP(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sop, err := h.sopService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sop)
}

func (h *SOPHandler) CreateSOP(c *gin.Context) {
	sop, err := h.sopService.Create(currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sop)
}

func (h *SOPHandler) UpdateSOP(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSOPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sop, err := h.sopService.Update(id, req, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sop)
}

func (h *SOPHandler) DeleteSOP(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sopService.Delete(id, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SOP deleted"})
}

// PatchStatus moves an SOP between board columns.
func (h *SOPHandler) PatchStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.PatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sop, err := h.sopService.PatchStatus(id, req.Status, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sop)
}

func (h *SOPHandler) AssignSOP(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AssignSOPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sop, err := h.sopService.Assign(id, req.UserID, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sop)
}

func (h *SOPHandler) AddStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	step, err := h.sopService.AddStep(id, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

func (h *SOPHandler) UpdateStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId")
	if !ok {
		return
	}

	var req models.UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := h.sopService.UpdateStep(id, stepID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

func (h *SOPHandler) DeleteStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stepID, ok := parseIDParam(c, "stepId")
	if !ok {
		return
	}

	if err := h.sopService.DeleteStep(id, stepID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step deleted"})
}

func (h *SOPHandler) AddResponsibility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateResponsibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.sopService.AddResponsibility(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SOPHandler) UpdateResponsibility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respID, ok := parseIDParam(c, "respId")
	if !ok {
		return
	}

	var req models.UpdateResponsibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.sopService.UpdateResponsibility(id, respID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SOPHandler) DeleteResponsibility(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	respID, ok := parseIDParam(c, "respId")
	if !ok {
		return
	}

	if err := h.sopService.DeleteResponsibility(id, respID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Responsibility deleted"})
}

func (h *SOPHandler) AddTroubleshootingItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateTroubleshootingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.sopService.AddTroubleshootingItem(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *SOPHandler) DeleteTroubleshootingItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.sopService.DeleteTroubleshootingItem(id, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Troubleshooting item deleted"})
}

func (h *SOPHandler) AddRevision(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rev, err := h.sopService.AddRevision(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}
