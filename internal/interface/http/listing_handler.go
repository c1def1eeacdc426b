package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listora/listings-api/internal/application"
	"github.com/listora/listings-api/internal/domain/repository"
	"github.com/listora/listings-api/internal/interface/middleware"
	input "github.com/listora/listings-api/internal/validation"
	"github.com/listora/listings-api/pkg/response"
	"github.com/listora/listings-api/pkg/validation"
)

type ListingHandler struct {
	Service *application.ListingService
	Logger  *logrus.Logger
}

func NewListingHandler(service *application.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Service: service, Logger: logger}
}

type createListingRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// List GET /api/listings?limit=&offset=
func (h *ListingHandler) List(c *gin.Context) {
	limit, offset := input.ClampPagination(c.Query("limit"), c.Query("offset"))

	items, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.internal(c, err, "list listings failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
	})
}

// Get GET /api/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	l, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get listing failed")
		return
	}
	c.JSON(http.StatusOK, l)
}

// Create POST /api/listings (authenticated)
func (h *ListingHandler) Create(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Err(c, http.StatusUnauthorized, "authentication required")
		return
	}
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrs(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	title, description, verrs := input.CreateListing(req.Title, req.Description)
	if verrs != nil {
		response.FieldErrs(c, http.StatusBadRequest, verrs)
		return
	}

	l, err := h.Service.Create(c.Request.Context(), uid, title, description)
	if err != nil {
		h.internal(c, err, "create listing failed")
		return
	}
	c.JSON(http.StatusCreated, l)
}

// Update PUT/PATCH /api/listings/:id (authenticated, partial)
func (h *ListingHandler) Update(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Err(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, idOK := listingID(c)
	if !idOK {
		return
	}
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.FieldErrs(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	fields, verrs := input.UpdateListing(payload)
	if verrs != nil {
		response.FieldErrs(c, http.StatusBadRequest, verrs)
		return
	}

	l, err := h.Service.Update(c.Request.Context(), uid, id, fields)
	if err != nil {
		h.fail(c, err, "update listing failed")
		return
	}
	c.JSON(http.StatusOK, l)
}

// Delete DELETE /api/listings/:id (authenticated)
func (h *ListingHandler) Delete(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Err(c, http.StatusUnauthorized, "authentication required")
		return
	}
	id, idOK := listingID(c)
	if !idOK {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), uid, id); err != nil {
		h.fail(c, err, "delete listing failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// listingID parses the :id path segment. A non-numeric id can never name a
// row, so it is reported as 404 rather than 400.
func listingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Err(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// fail maps gate/storage errors onto the status taxonomy. Unexpected errors
// get logged with detail and surfaced opaque.
func (h *ListingHandler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Err(c, http.StatusNotFound, "not found")
	case errors.Is(err, application.ErrForbidden):
		response.Err(c, http.StatusForbidden, "forbidden")
	default:
		h.internal(c, err, msg)
	}
}

func (h *ListingHandler) internal(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.Err(c, http.StatusInternalServerError, "internal server error")
}
