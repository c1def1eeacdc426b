package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/listora/listings-api/internal/interface/http"
	"github.com/listora/listings-api/internal/interface/middleware"
)

// ListingModule wires listing routes.
// Public: GET /api/listings, GET /api/listings/:id
// Protected: POST, PUT/PATCH /:id, DELETE /:id
type ListingModule struct {
	Handler *handlers.ListingHandler
}

func NewListingModule(h *handlers.ListingHandler) *ListingModule {
	return &ListingModule{Handler: h}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	rg.GET("/listings", m.Handler.List)
	rg.GET("/listings/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.RequireUser())
	{
		auth.POST("/listings", m.Handler.Create)
		auth.PUT("/listings/:id", m.Handler.Update)
		auth.PATCH("/listings/:id", m.Handler.Update)
		auth.DELETE("/listings/:id", m.Handler.Delete)
	}
}
