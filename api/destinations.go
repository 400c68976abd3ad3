package api

import (
	"net/http"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/service/destinations"
	"github.com/gin-gonic/gin"
)

type DestinationHandler struct {
	service destinations.DestinationUseCase
}

func NewDestinationHandler(service destinations.DestinationUseCase) *DestinationHandler {
	return &DestinationHandler{service: service}
}

func (h *DestinationHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *DestinationHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]*descriptionResponse, 0, len(list))
	for i := range list {
		out = append(out, toDestinationResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *DestinationHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	destination, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDestinationResponse(destination))
}

func (h *DestinationHandler) create(c *gin.Context) {
	var req createDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	destination, err := h.service.Create(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDestinationResponse(destination))
}

func (h *DestinationHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	destination, err := h.service.Update(c.Request.Context(), id, domain.DestinationPatch{Description: req.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDestinationResponse(destination))
}

func (h *DestinationHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Destino eliminado correctamente"})
}
