package service

import (
	"errors"
	"log"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/repository"
	"github.com/benj-n/miguafi/pkg/auth"
	"github.com/benj-n/miguafi/pkg/mailer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 8-digit IDs collide eventually; a fresh ID is drawn a bounded number of
// times before registration fails.
const userIDAttempts = 3

// AuthService handles registration, login and session resolution
type AuthService struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	dogRepo    *repository.DogRepository
	jwtManager *auth.JWTManager
	mailer     *mailer.Mailer
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	dogRepo *repository.DogRepository,
	jwtManager *auth.JWTManager,
	mailClient *mailer.Mailer,
) *AuthService {
	return &AuthService{
		db:         db,
		userRepo:   userRepo,
		dogRepo:    dogRepo,
		jwtManager: jwtManager,
		mailer:     mailClient,
	}
}

// Register creates a user, and when a dog name is supplied, the dog and its
// ownership link in the same transaction. The welcome email is best-effort.
func (s *AuthService) Register(req model.RegisterRequest) (*model.User, error) {
	taken, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	if req.DogName != nil && !model.ValidDogName(*req.DogName) {
		return nil, ErrInvalidDogName
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hashed),
		LocationLat:  req.LocationLat,
		LocationLng:  req.LocationLng,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)

		var created bool
		for i := 0; i < userIDAttempts; i++ {
			user.ID = model.NewUserID()
			if _, err := users.FindByID(user.ID); err == nil {
				continue // ID already taken, draw again
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := users.Create(user); err != nil {
				return err
			}
			created = true
			break
		}
		if !created {
			return errors.New("could not allocate a user ID")
		}

		if req.DogName != nil {
			dogs := s.dogRepo.WithTx(tx)
			dog := &model.Dog{Name: *req.DogName, PhotoURL: req.DogPhotoURL}
			if err := dogs.Create(dog); err != nil {
				return err
			}
			if err := dogs.UpsertLink(user.ID, dog.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(user.Email); err != nil {
			log.Printf("⚠️  Welcome email to %s not delivered: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token
func (s *AuthService) Login(req model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// ResolveSession maps a bearer token to a user. Every failure mode (bad or
// expired token, user no longer existing) collapses to ErrUnauthorized.
func (s *AuthService) ResolveSession(token string) (*model.User, error) {
	userID, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// UpdateProfile updates the caller's location fields and returns the profile
func (s *AuthService) UpdateProfile(userID string, req model.UpdateProfileRequest) (*model.User, error) {
	if err := s.userRepo.UpdateLocation(userID, req.LocationLat, req.LocationLng); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(userID)
}
