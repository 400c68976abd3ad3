package api

import (
	"github.com/Domenick1991/dorado/internal/security"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth         *AuthHandler
	Airlines     *AirlineHandler
	Destinations *DestinationHandler
	Flights      *FlightHandler
	Passengers   *PassengerHandler
	Users        *UserHandler
}

// Mount registers every resource under base. Only register and login are
// reachable without a bearer token.
func (h Handlers) Mount(base *gin.RouterGroup, tokens security.TokenService) {
	h.Auth.Register(base.Group("/auth"))

	protected := base.Group("", AuthMiddleware(tokens))
	h.Auth.RegisterProtected(protected.Group("/auth"))
	h.Airlines.Register(protected.Group("/aerolineas"))
	h.Destinations.Register(protected.Group("/destinos"))
	h.Flights.Register(protected.Group("/vuelos"))
	h.Passengers.Register(protected.Group("/pasajeros"))
	h.Users.Register(protected.Group("/usuario"))
}
