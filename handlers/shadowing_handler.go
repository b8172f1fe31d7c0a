package handlers

import (
	"net/http"

	"sop-manager/models"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
)

type ShadowingHandler struct {
	shadowingService services.ShadowingService
}

func NewShadowingHandler(shadowingService services.ShadowingService) *ShadowingHandler {
	return &ShadowingHandler{shadowingService: shadowingService}
}

func (h *ShadowingHandler) GetObservations(c *gin.Context) {
	observations, err := h.shadowingService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, observations)
}

func (h *ShadowingHandler) GetObservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	observation, err := h.shadowingService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, observation)
}

func (h *ShadowingHandler) CreateObservation(c *gin.Context) {
	var observation models.ShadowingObservation
	if err := c.ShouldBindJSON(&observation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.shadowingService.Create(&observation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ShadowingHandler) UpdateObservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var observation models.ShadowingObservation
	if err := c.ShouldBindJSON(&observation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.shadowingService.Update(id, &observation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ShadowingHandler) DeleteObservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.shadowingService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shadowing observation deleted"})
}
