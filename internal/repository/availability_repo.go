package repository

import (
	"time"

	"github.com/benj-n/miguafi/internal/model"
	"gorm.io/gorm"
)

// AvailabilityRepository handles database operations for offers and requests
type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *AvailabilityRepository) WithTx(tx *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: tx}
}

// CreateOffer inserts a new offer window
func (r *AvailabilityRepository) CreateOffer(offer *model.AvailabilityOffer) error {
	return r.db.Create(offer).Error
}

// CreateRequest inserts a new request window
func (r *AvailabilityRepository) CreateRequest(req *model.AvailabilityRequest) error {
	return r.db.Create(req).Error
}

// OfferOverlaps reports whether the user already has an offer overlapping
// [start, end) under the open-interval test. Touching endpoints do not count.
func (r *AvailabilityRepository) OfferOverlaps(userID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.AvailabilityOffer{}).
		Where("user_id = ? AND start_at < ? AND end_at > ?", userID, end, start).
		Count(&count).Error
	return count > 0, err
}

// RequestOverlaps is the request-side counterpart of OfferOverlaps
func (r *AvailabilityRepository) RequestOverlaps(userID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.AvailabilityRequest{}).
		Where("user_id = ? AND start_at < ? AND end_at > ?", userID, end, start).
		Count(&count).Error
	return count > 0, err
}

// DeleteOfferOwned removes an offer if it belongs to the user.
// Returns rows affected so the caller can report not-found uniformly.
func (r *AvailabilityRepository) DeleteOfferOwned(userID string, id int) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.AvailabilityOffer{})
	return res.RowsAffected, res.Error
}

// DeleteRequestOwned removes a request if it belongs to the user
func (r *AvailabilityRepository) DeleteRequestOwned(userID string, id int) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.AvailabilityRequest{})
	return res.RowsAffected, res.Error
}

// ListOffers returns one page of the user's offers plus the total count
func (r *AvailabilityRepository) ListOffers(userID string, page, pageSize int, desc bool) ([]model.AvailabilityOffer, int64, error) {
	var offers []model.AvailabilityOffer
	var total int64

	q := r.db.Model(&model.AvailabilityOffer{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order(orderByStart(desc)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&offers).Error
	return offers, total, err
}

// ListRequests returns one page of the user's requests plus the total count
func (r *AvailabilityRepository) ListRequests(userID string, page, pageSize int, desc bool) ([]model.AvailabilityRequest, int64, error) {
	var requests []model.AvailabilityRequest
	var total int64

	q := r.db.Model(&model.AvailabilityRequest{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order(orderByStart(desc)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return requests, total, err
}

// RequestsWithin returns requests of other users fully contained in the
// offer window: offer.start <= req.start AND offer.end >= req.end.
func (r *AvailabilityRepository) RequestsWithin(offer *model.AvailabilityOffer) ([]model.AvailabilityRequest, error) {
	var requests []model.AvailabilityRequest
	err := r.db.
		Where("start_at >= ? AND end_at <= ? AND user_id != ?", offer.StartAt, offer.EndAt, offer.UserID).
		Find(&requests).Error
	return requests, err
}

// OffersContaining returns offers of other users that fully contain the
// request window.
func (r *AvailabilityRepository) OffersContaining(req *model.AvailabilityRequest) ([]model.AvailabilityOffer, error) {
	var offers []model.AvailabilityOffer
	err := r.db.
		Where("start_at <= ? AND end_at >= ? AND user_id != ?", req.StartAt, req.EndAt, req.UserID).
		Find(&offers).Error
	return offers, err
}

func orderByStart(desc bool) string {
	if desc {
		return "start_at DESC"
	}
	return "start_at ASC"
}
