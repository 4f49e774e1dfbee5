package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sparklean/services/catalog"
)

// CatalogHandler serves the public service/extras/cleaner catalog.
type CatalogHandler struct {
	Service catalog.CatalogService
}

// ListServicesHandler handles GET /api/catalog/services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Service.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetServiceHandler handles GET /api/catalog/services/:slug.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Service.GetServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ListExtrasHandler handles GET /api/catalog/extras.
func (h *CatalogHandler) ListExtrasHandler(c *gin.Context) {
	extras, err := h.Service.ListExtras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extras": extras})
}

// ListCleanersHandler handles GET /api/catalog/cleaners.
func (h *CatalogHandler) ListCleanersHandler(c *gin.Context) {
	cleaners, err := h.Service.ListCleaners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleaners": cleaners})
}
