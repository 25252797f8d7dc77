package repository

import (
	"github.com/benj-n/miguafi/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DogRepository handles database operations for Dog and UserDog links
type DogRepository struct {
	db *gorm.DB
}

func NewDogRepository(db *gorm.DB) *DogRepository {
	return &DogRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *DogRepository) WithTx(tx *gorm.DB) *DogRepository {
	return &DogRepository{db: tx}
}

// Create inserts a new dog
func (r *DogRepository) Create(dog *model.Dog) error {
	return r.db.Create(dog).Error
}

// FindByID finds a dog by ID
func (r *DogRepository) FindByID(id int) (*model.Dog, error) {
	var dog model.Dog
	err := r.db.Where("id = ?", id).First(&dog).Error
	if err != nil {
		return nil, err
	}
	return &dog, nil
}

// ListByUser returns all dogs linked to a user, newest first
func (r *DogRepository) ListByUser(userID string) ([]model.Dog, error) {
	var dogs []model.Dog
	err := r.db.
		Joins("JOIN user_dogs ON user_dogs.dog_id = dogs.id").
		Where("user_dogs.user_id = ?", userID).
		Order("dogs.created_at DESC").
		Find(&dogs).Error
	return dogs, err
}

// UpdatePhotoURL sets a dog's photo URL
func (r *DogRepository) UpdatePhotoURL(dogID int, photoURL string) error {
	return r.db.Model(&model.Dog{}).
		Where("id = ?", dogID).
		Update("photo_url", photoURL).Error
}

// Delete removes a dog and all ownership links pointing at it
func (r *DogRepository) Delete(dogID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dog_id = ?", dogID).Delete(&model.UserDog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", dogID).Delete(&model.Dog{}).Error
	})
}

// FindOwnerLink returns the ownership link for (user, dog), if any
func (r *DogRepository) FindOwnerLink(userID string, dogID int) (*model.UserDog, error) {
	var link model.UserDog
	err := r.db.
		Where("user_id = ? AND dog_id = ? AND is_owner = ?", userID, dogID, true).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// UpsertLink creates the (user, dog) ownership link or refreshes its flag
func (r *DogRepository) UpsertLink(userID string, dogID int) error {
	link := model.UserDog{
		UserID:  userID,
		DogID:   dogID,
		IsOwner: true,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "dog_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_owner": true,
		}),
	}).Create(&link).Error
}

// DeleteLink removes the (user, dog) link. Returns rows affected.
func (r *DogRepository) DeleteLink(userID string, dogID int) (int64, error) {
	res := r.db.Where("user_id = ? AND dog_id = ?", userID, dogID).Delete(&model.UserDog{})
	return res.RowsAffected, res.Error
}
