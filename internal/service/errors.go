package service

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP statuses.
var (
	// auth
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("could not validate credentials")

	// dogs
	ErrInvalidDogName = errors.New("invalid dog name")
	ErrNameImmutable  = errors.New("dog name is immutable")
	ErrDogNotFound    = errors.New("dog not found")
	ErrNotOwner       = errors.New("not an owner")
	ErrUserNotFound   = errors.New("user not found")
	ErrLinkNotFound   = errors.New("link not found")
	ErrNotAnImage     = errors.New("only image uploads are allowed")
	ErrImageTooLarge  = errors.New("image too large (max 10MB)")

	// availability
	ErrInvalidRange       = errors.New("invalid time range")
	ErrNotInFuture        = errors.New("time range must be in the future")
	ErrOverlappingOffer   = errors.New("overlapping offer exists")
	ErrOverlappingRequest = errors.New("overlapping request exists")
	ErrSlotNotFound       = errors.New("slot not found")
)
