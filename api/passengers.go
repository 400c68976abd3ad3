package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Domenick1991/dorado/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

// multipartOverhead covers the text fields and part headers sent next to
// the photo.
const multipartOverhead = 64 << 10

type PassengerHandler struct {
	service       passengers.PassengerUseCase
	maxPhotoBytes int64
}

// NewPassengerHandler rejects photos larger than maxPhotoBytes; zero means
// no limit.
func NewPassengerHandler(service passengers.PassengerUseCase, maxPhotoBytes int64) *PassengerHandler {
	return &PassengerHandler{service: service, maxPhotoBytes: maxPhotoBytes}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *PassengerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponses(list))
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	passenger, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}

func (h *PassengerHandler) create(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	var input passengers.CreatePassengerInput
	var missing []string
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"nombre", &input.FirstName},
		{"apellidos", &input.LastName},
		{"email", &input.Email},
		{"telefono", &input.Phone},
	} {
		v, ok := c.GetPostForm(f.name)
		if !ok || v == "" {
			missing = append(missing, f.name)
			continue
		}
		*f.dst = v
	}
	if len(missing) > 0 {
		badRequest(c, fmt.Sprintf("missing fields: %v", missing))
		return
	}

	flightID, err := formID(c, "vueloId")
	if err != nil || flightID == nil {
		badRequest(c, "vueloId is required")
		return
	}
	input.FlightID = *flightID

	header, err := c.FormFile("foto")
	if err != nil {
		badRequest(c, "foto must be a file")
		return
	}
	photo, closeFn, err := h.openPhoto(header)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer closeFn()
	input.Photo = photo

	passenger, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPassengerResponse(passenger))
}

func (h *PassengerHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.parseForm(c) {
		return
	}

	input := passengers.UpdatePassengerInput{
		FirstName: formString(c, "nombre"),
		LastName:  formString(c, "apellidos"),
		Email:     formString(c, "email"),
		Phone:     formString(c, "telefono"),
	}

	flightID, err := formID(c, "vueloId")
	if err != nil {
		badRequest(c, "invalid vueloId")
		return
	}
	input.FlightID = flightID

	header, err := c.FormFile("foto")
	switch {
	case err == nil:
		photo, closeFn, err := h.openPhoto(header)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		defer closeFn()
		input.Photo = photo
	case errors.Is(err, http.ErrMissingFile):
		if _, sent := c.GetPostForm("foto"); sent {
			badRequest(c, "foto must be a file")
			return
		}
	default:
		badRequest(c, "foto must be a file")
		return
	}

	passenger, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}

func (h *PassengerHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Pasajero eliminado correctamente"})
}

// parseForm caps the body before parsing so an oversized upload is cut off
// instead of being spooled to disk.
func (h *PassengerHandler) parseForm(c *gin.Context) bool {
	if h.maxPhotoBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPhotoBytes+multipartOverhead)
	}
	if _, err := c.MultipartForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(c, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		badRequest(c, "multipart form expected")
		return false
	}
	return true
}

func (h *PassengerHandler) openPhoto(header *multipart.FileHeader) (*passengers.Photo, func(), error) {
	if h.maxPhotoBytes > 0 && header.Size > h.maxPhotoBytes {
		return nil, nil, fmt.Errorf("foto exceeds %d bytes", h.maxPhotoBytes)
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("foto cannot be read")
	}
	return &passengers.Photo{Filename: header.Filename, Content: f}, func() { f.Close() }, nil
}

// formString returns nil when the field was not sent.
func formString(c *gin.Context, name string) *string {
	v, ok := c.GetPostForm(name)
	if !ok {
		return nil
	}
	return &v
}

func formID(c *gin.Context, name string) (*int64, error) {
	v, ok := c.GetPostForm(name)
	if !ok || v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &id, nil
}
