package api

import (
	"net/http"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	Code          *string    `json:"codvuelo"`
	BoardingRoom  *string    `json:"salabordaje"`
	Origin        *string    `json:"origen"`
	DepartureTime *timestamp `json:"horasalida"`
	ArrivalTime   *timestamp `json:"horallegada"`
	Price         *float64   `json:"precio"`
	DestinationID *int64     `json:"destinoId"`
	AirlineID     *int64     `json:"aerolineaId"`
}

func (r flightRequest) flight() *domain.Flight {
	f := &domain.Flight{}
	if r.Code != nil {
		f.Code = *r.Code
	}
	if r.BoardingRoom != nil {
		f.BoardingRoom = *r.BoardingRoom
	}
	if r.Origin != nil {
		f.Origin = *r.Origin
	}
	if r.DepartureTime != nil {
		f.DepartureTime = r.DepartureTime.Time
	}
	if r.ArrivalTime != nil {
		f.ArrivalTime = r.ArrivalTime.Time
	}
	if r.Price != nil {
		f.Price = *r.Price
	}
	if r.DestinationID != nil {
		f.DestinationID = *r.DestinationID
	}
	if r.AirlineID != nil {
		f.AirlineID = *r.AirlineID
	}
	return f
}

func (r flightRequest) patch() domain.FlightPatch {
	p := domain.FlightPatch{
		Code:          r.Code,
		BoardingRoom:  r.BoardingRoom,
		Origin:        r.Origin,
		Price:         r.Price,
		DestinationID: r.DestinationID,
		AirlineID:     r.AirlineID,
	}
	if r.DepartureTime != nil {
		p.DepartureTime = &r.DepartureTime.Time
	}
	if r.ArrivalTime != nil {
		p.ArrivalTime = &r.ArrivalTime.Time
	}
	return p
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.GET("/:id/pasajeros", h.passengers)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(flights))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight, true))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	flight, err := h.service.Create(c.Request.Context(), req.flight())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight, true))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight, true))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Vuelo eliminado correctamente"})
}

func (h *FlightHandler) passengers(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	passengers, err := h.service.Passengers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponses(passengers))
}
