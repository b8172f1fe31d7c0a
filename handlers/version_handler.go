package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"sop-manager/models"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
)

type VersionHandler struct {
	versionService services.VersionService
}

func NewVersionHandler(versionService services.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

func (h *VersionHandler) GetVersions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	versions, err := h.versionService.List(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (h *VersionHandler) GetVersion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	versionNumber, ok := parseVersionParam(c)
	if !ok {
		return
	}

	version, err := h.versionService.Get(id, versionNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

func (h *VersionHandler) CreateVersion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// change_summary is optional, so a body-less POST is fine
	var req models.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version, err := h.versionService.Create(id, req.ChangeSummary, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, version)
}

func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	versionNumber, ok := parseVersionParam(c)
	if !ok {
		return
	}

	version, err := h.versionService.Restore(id, versionNumber, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

// GetVersionChanges returns the structural diff of a version against its
// predecessor.
func (h *VersionHandler) GetVersionChanges(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	versionNumber, ok := parseVersionParam(c)
	if !ok {
		return
	}

	changes, err := h.versionService.Changes(id, versionNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": changes})
}

func parseVersionParam(c *gin.Context) (int, bool) {
	versionNumber, err := strconv.Atoi(c.Param("versionNumber"))
	if err != nil || versionNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid version number"})
		return 0, false
	}
	return versionNumber, true
}
