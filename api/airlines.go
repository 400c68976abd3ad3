package api

import (
	"net/http"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/service/airlines"
	"github.com/gin-gonic/gin"
)

type AirlineHandler struct {
	service airlines.AirlineUseCase
}

type createDescriptionRequest struct {
	Description string `json:"descripcion" binding:"required"`
}

// descriptionRequest is the update body; a missing field leaves the
// description unchanged.
type descriptionRequest struct {
	Description *string `json:"descripcion"`
}

func NewAirlineHandler(service airlines.AirlineUseCase) *AirlineHandler {
	return &AirlineHandler{service: service}
}

func (h *AirlineHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirlineHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]*descriptionResponse, 0, len(list))
	for i := range list {
		out = append(out, toAirlineResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AirlineHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	airline, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirlineResponse(airline))
}

func (h *AirlineHandler) create(c *gin.Context) {
	var req createDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	airline, err := h.service.Create(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirlineResponse(airline))
}

func (h *AirlineHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	airline, err := h.service.Update(c.Request.Context(), id, domain.AirlinePatch{Description: req.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirlineResponse(airline))
}

func (h *AirlineHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Aerolinea eliminada correctamente"})
}
