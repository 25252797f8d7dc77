package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/repository"
	"github.com/benj-n/miguafi/pkg/storage"
	"gorm.io/gorm"
)

// MaxPhotoSize is the upload ceiling for dog photos.
const MaxPhotoSize = 10 << 20 // 10 MiB

// DogService handles dog records and the ownership graph
type DogService struct {
	db       *gorm.DB
	dogRepo  *repository.DogRepository
	userRepo *repository.UserRepository
	storage  storage.Storage
}

func NewDogService(
	db *gorm.DB,
	dogRepo *repository.DogRepository,
	userRepo *repository.UserRepository,
	store storage.Storage,
) *DogService {
	return &DogService{
		db:       db,
		dogRepo:  dogRepo,
		userRepo: userRepo,
		storage:  store,
	}
}

// ensureOwner loads the dog and checks the caller holds an ownership link.
// A missing dog and a missing link are reported as distinct errors.
func (s *DogService) ensureOwner(userID string, dogID int) (*model.Dog, error) {
	dog, err := s.dogRepo.FindByID(dogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDogNotFound
		}
		return nil, err
	}

	if _, err := s.dogRepo.FindOwnerLink(userID, dogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwner
		}
		return nil, err
	}
	return dog, nil
}

// ListMine returns the dogs linked to the caller, newest first
func (s *DogService) ListMine(userID string) ([]model.Dog, error) {
	return s.dogRepo.ListByUser(userID)
}

// Create validates the name and creates the dog with its owner link
func (s *DogService) Create(userID string, req model.CreateDogRequest) (*model.Dog, error) {
	if !model.ValidDogName(req.Name) {
		return nil, ErrInvalidDogName
	}

	dog := &model.Dog{Name: req.Name, PhotoURL: req.PhotoURL}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		dogs := s.dogRepo.WithTx(tx)
		if err := dogs.Create(dog); err != nil {
			return err
		}
		return dogs.UpsertLink(userID, dog.ID)
	})
	if err != nil {
		return nil, err
	}
	return dog, nil
}

// Update changes a dog's photo URL. Renames are always rejected.
func (s *DogService) Update(userID string, dogID int, req model.UpdateDogRequest) (*model.Dog, error) {
	dog, err := s.ensureOwner(userID, dogID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		return nil, ErrNameImmutable
	}

	if req.PhotoURL != nil {
		if err := s.dogRepo.UpdatePhotoURL(dogID, *req.PhotoURL); err != nil {
			return nil, err
		}
		dog.PhotoURL = req.PhotoURL
	}
	return dog, nil
}

// Delete removes a dog and its ownership links
func (s *DogService) Delete(userID string, dogID int) error {
	if _, err := s.ensureOwner(userID, dogID); err != nil {
		return err
	}
	return s.dogRepo.Delete(dogID)
}

// AddCoOwner grants the target user an ownership link on the dog
func (s *DogService) AddCoOwner(actorID string, dogID int, targetUserID string) error {
	if _, err := s.ensureOwner(actorID, dogID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.dogRepo.UpsertLink(targetUserID, dogID)
}

// RemoveCoOwner revokes an ownership link. Any owner may remove any other,
// including themselves; a dog may end up without owners.
func (s *DogService) RemoveCoOwner(actorID string, dogID int, targetUserID string) error {
	if _, err := s.ensureOwner(actorID, dogID); err != nil {
		return err
	}

	affected, err := s.dogRepo.DeleteLink(targetUserID, dogID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// UploadPhoto stores an image through the storage capability and points the
// dog record at the returned URL.
func (s *DogService) UploadPhoto(ctx context.Context, userID string, dogID int, r io.Reader, size int64, filename, contentType string) (*model.Dog, error) {
	dog, err := s.ensureOwner(userID, dogID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if size > MaxPhotoSize {
		return nil, ErrImageTooLarge
	}

	url, err := s.storage.Store(ctx, r, size, filename, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.dogRepo.UpdatePhotoURL(dogID, url); err != nil {
		return nil, err
	}
	dog.PhotoURL = &url
	return dog, nil
}
