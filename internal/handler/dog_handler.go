package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/benj-n/miguafi/internal/middleware"
	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/gin-gonic/gin"
)

// DogHandler handles dog records, ownership links and photo uploads
type DogHandler struct {
	dogService *service.DogService
}

func NewDogHandler(dogService *service.DogService) *DogHandler {
	return &DogHandler{dogService: dogService}
}

// dogError maps service errors onto the dog-side status contract: absent
// dogs are 404, existing dogs the caller does not own are 403.
func dogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDogNotFound), errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidDogName), errors.Is(err, service.ErrNameImmutable), errors.Is(err, service.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Dog operation failed"})
	}
}

func dogID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: service.ErrDogNotFound.Error()})
		return 0, false
	}
	return id, true
}

// MyDogs godoc
// @Summary List dogs linked to the caller
// @Tags Dogs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Dog
// @Router /dogs/me [get]
func (h *DogHandler) MyDogs(c *gin.Context) {
	user := middleware.CurrentUser(c)
	dogs, err := h.dogService.ListMine(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to list dogs"})
		return
	}
	c.JSON(http.StatusOK, dogs)
}

// Create godoc
// @Summary Create a dog owned by the caller
// @Tags Dogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateDogRequest true "Dog"
// @Success 201 {object} model.Dog
// @Failure 400 {object} model.ErrorResponse
// @Router /dogs/ [post]
func (h *DogHandler) Create(c *gin.Context) {
	var req model.CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	dog, err := h.dogService.Create(user.ID, req)
	if err != nil {
		dogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dog)
}

// Update godoc
// @Summary Update a dog's photo URL (names are immutable)
// @Tags Dogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dog ID"
// @Param body body model.UpdateDogRequest true "Update"
// @Success 200 {object} model.Dog
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /dogs/{id} [put]
func (h *DogHandler) Update(c *gin.Context) {
	id, ok := dogID(c)
	if !ok {
		return
	}

	var req model.UpdateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	dog, err := h.dogService.Update(user.ID, id, req)
	if err != nil {
		dogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dog)
}

// Delete godoc
// @Summary Delete a dog and its ownership links
// @Tags Dogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dog ID"
// @Success 204
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /dogs/{id} [delete]
func (h *DogHandler) Delete(c *gin.Context) {
	id, ok := dogID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.dogService.Delete(user.ID, id); err != nil {
		dogError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto godoc
// @Summary Upload a dog photo (image only, max 10MB)
// @Tags Dogs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dog ID"
// @Param file formData file true "Image file"
// @Success 200 {object} model.Dog
// @Failure 400 {object} model.ErrorResponse
// @Failure 413 {object} model.ErrorResponse
// @Router /dogs/{id}/photo [post]
func (h *DogHandler) UploadPhoto(c *gin.Context) {
	id, ok := dogID(c)
	if !ok {
		return
	}

	// Reject oversized bodies before buffering the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxPhotoSize+1)

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, model.ErrorResponse{Error: service.ErrImageTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "File is required", Message: err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Unreadable upload", Message: err.Error()})
		return
	}
	defer src.Close()

	user := middleware.CurrentUser(c)
	dog, err := h.dogService.UploadPhoto(
		c.Request.Context(), user.ID, id,
		src, file.Size, file.Filename, file.Header.Get("Content-Type"),
	)
	if err != nil {
		dogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dog)
}

// AddCoOwner godoc
// @Summary Grant another user ownership of a dog
// @Tags Dogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dog ID"
// @Param user_id path string true "Target user ID"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /dogs/{id}/coowners/{user_id} [post]
func (h *DogHandler) AddCoOwner(c *gin.Context) {
	id, ok := dogID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.dogService.AddCoOwner(user.ID, id, c.Param("user_id")); err != nil {
		dogError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "ok"})
}

// RemoveCoOwner godoc
// @Summary Revoke a user's ownership of a dog
// @Tags Dogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dog ID"
// @Param user_id path string true "Target user ID"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /dogs/{id}/coowners/{user_id} [delete]
func (h *DogHandler) RemoveCoOwner(c *gin.Context) {
	id, ok := dogID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.dogService.RemoveCoOwner(user.ID, id, c.Param("user_id")); err != nil {
		dogError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "ok"})
}
