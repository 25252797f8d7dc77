package model

import "time"

// ========== Auth DTOs ==========

type RegisterRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	DogName     *string  `json:"dog_name"`
	DogPhotoURL *string  `json:"dog_photo_url"`
	LocationLat *float64 `json:"location_lat" binding:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng" binding:"omitempty,gte=-180,lte=180"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UpdateProfileRequest struct {
	LocationLat *float64 `json:"location_lat" binding:"omitempty,gte=-90,lte=90"`
	LocationLng *float64 `json:"location_lng" binding:"omitempty,gte=-180,lte=180"`
}

// ========== Dog DTOs ==========

type CreateDogRequest struct {
	Name     string  `json:"name" binding:"required"`
	PhotoURL *string `json:"photo_url"`
}

// UpdateDogRequest carries the mutable dog fields. A name is accepted by the
// binding but always rejected by the service: names are immutable.
type UpdateDogRequest struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photo_url"`
}

// ========== Availability DTOs ==========

type SlotRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

type SlotItem struct {
	ID      int       `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type SlotListRequest struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Sort     string `form:"sort,default=-start_at"`
}

type SlotListResponse struct {
	Items    []SlotItem `json:"items"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

type CreatedResponse struct {
	ID int `json:"id"`
}

// ========== Common ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
