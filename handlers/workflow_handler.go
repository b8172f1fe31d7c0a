package handlers

import (
	"net/http"

	"sop-manager/models"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	workflowService services.WorkflowService
}

func NewWorkflowHandler(workflowService services.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

func (h *WorkflowHandler) GetSteps(c *gin.Context) {
	steps, err := h.workflowService.ListSteps()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, steps)
}

func (h *WorkflowHandler) CreateStep(c *gin.Context) {
	var req models.CreateWorkflowStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := h.workflowService.CreateStep(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

func (h *WorkflowHandler) UpdateStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateWorkflowStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := h.workflowService.UpdateStep(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

func (h *WorkflowHandler) DeleteStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workflowService.DeleteStep(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workflow step deleted"})
}

func (h *WorkflowHandler) ReorderSteps(c *gin.Context) {
	var req models.ReorderWorkflowStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workflowService.ReorderSteps(req.Order); err != nil {
		respondError(c, err)
		return
	}

	steps, err := h.workflowService.ListSteps()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, steps)
}

// CanTransition answers whether the caller could move an SOP between the two
// statuses given in the query string.
func (h *WorkflowHandler) CanTransition(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	allowed := h.workflowService.CanTransition(models.SOPStatus(from), models.SOPStatus(to), currentActor(c))
	c.JSON(http.StatusOK, gin.H{"allowed": allowed})
}

func (h *WorkflowHandler) GetTransitions(c *gin.Context) {
	transitions, err := h.workflowService.ListTransitions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transitions)
}

func (h *WorkflowHandler) ReplaceTransitions(c *gin.Context) {
	var req models.ReplaceTransitionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workflowService.ReplaceTransitions(req.Transitions); err != nil {
		respondError(c, err)
		return
	}

	transitions, err := h.workflowService.ListTransitions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transitions)
}
