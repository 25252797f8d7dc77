package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/benj-n/miguafi/pkg/storage"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	authService *service.AuthService
	storage     storage.Storage
}

func NewAuthHandler(authService *service.AuthService, store storage.Storage) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		storage:     store,
	}
}

// Register godoc
// @Summary Register a new user, optionally with a first dog
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.RegisterRequest true "Register request"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

type registerMultipartForm struct {
	Email       string   `form:"email" binding:"required,email"`
	Password    string   `form:"password" binding:"required,min=8"`
	DogName     *string  `form:"dog_name"`
	LocationLat *float64 `form:"location_lat" binding:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `form:"location_lng" binding:"omitempty,gte=-180,lte=180"`
}

// RegisterMultipart godoc
// @Summary Register via multipart form, with an optional dog photo file
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param dog_name formData string false "Dog name"
// @Param dog_photo formData file false "Dog photo (image, max 10MB)"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /auth/register-multipart [post]
func (h *AuthHandler) RegisterMultipart(c *gin.Context) {
	var form registerMultipartForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	req := model.RegisterRequest{
		Email:       form.Email,
		Password:    form.Password,
		DogName:     form.DogName,
		LocationLat: form.LocationLat,
		LocationLng: form.LocationLng,
	}

	// The photo only has a place to live when a dog is being created.
	if file, err := c.FormFile("dog_photo"); err == nil && form.DogName != nil {
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: service.ErrNotAnImage.Error()})
			return
		}
		if file.Size > service.MaxPhotoSize {
			c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: service.ErrImageTooLarge.Error()})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Unreadable upload", Message: err.Error()})
			return
		}
		defer src.Close()

		url, err := h.storage.Store(c.Request.Context(), src, file.Size, file.Filename, contentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to store photo", Message: err.Error()})
			return
		}
		req.DogPhotoURL = &url
	}

	user, err := h.authService.Register(req)
	if err != nil {
		// The photo was stored before registration; don't leave it orphaned.
		if req.DogPhotoURL != nil {
			if derr := h.storage.Delete(c.Request.Context(), *req.DogPhotoURL); derr != nil {
				log.Printf("⚠️  Orphaned upload %s not removed: %v", *req.DogPhotoURL, derr)
			}
		}
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// Login godoc
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.LoginRequest true "Login request"
// @Success 200 {object} model.TokenResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Login failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
