package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listora/listings-api/internal/application"
	"github.com/listora/listings-api/internal/domain/repository"
	input "github.com/listora/listings-api/internal/validation"
	"github.com/listora/listings-api/pkg/response"
	"github.com/listora/listings-api/pkg/validation"
)

type AuthHandler struct {
	Service *application.AuthService
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

// Only presence is checked at binding time. Shape rules run after trim and
// normalization in the validation package, so a padded-but-valid value is
// never rejected by a tag that sees the raw bytes.
type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrs(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	email, password, verrs := input.Credentials(req.Email, req.Password)
	if verrs != nil {
		response.FieldErrs(c, http.StatusBadRequest, verrs)
		return
	}

	u, err := h.Service.Register(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			response.Err(c, http.StatusConflict, "email already registered")
			return
		}
		h.internal(c, err, "register failed")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldErrs(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	email, password, verrs := input.Credentials(req.Email, req.Password)
	if verrs != nil {
		response.FieldErrs(c, http.StatusBadRequest, verrs)
		return
	}

	token, err := h.Service.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Err(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.internal(c, err, "login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) internal(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	}
	response.Err(c, http.StatusInternalServerError, "internal server error")
}
