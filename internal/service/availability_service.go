package service

import (
	"fmt"
	"log"
	"time"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/repository"
	"github.com/benj-n/miguafi/pkg/mailer"
	"gorm.io/gorm"
)

const slotTimeLayout = "2006-01-02 15:04"

// AvailabilityService owns the offer/request ledger and the matcher.
// Validation, persistence and matching for one slot run in one transaction.
type AvailabilityService struct {
	db        *gorm.DB
	availRepo *repository.AvailabilityRepository
	notifRepo *repository.NotificationRepository
	userRepo  *repository.UserRepository
	mailer    *mailer.Mailer
}

func NewAvailabilityService(
	db *gorm.DB,
	availRepo *repository.AvailabilityRepository,
	notifRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
	mailClient *mailer.Mailer,
) *AvailabilityService {
	return &AvailabilityService{
		db:        db,
		availRepo: availRepo,
		notifRepo: notifRepo,
		userRepo:  userRepo,
		mailer:    mailClient,
	}
}

// validateSlot enforces the creation contract shared by offers and requests:
// end after start, both endpoints strictly in the future.
func validateSlot(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	now := time.Now()
	if !start.After(now) || !end.After(now) {
		return ErrNotInFuture
	}
	return nil
}

// CreateOffer validates and persists an offer, then matches it against
// existing requests of other users before returning.
func (s *AvailabilityService) CreateOffer(userID string, req model.SlotRequest) (int, error) {
	if err := validateSlot(req.StartAt, req.EndAt); err != nil {
		return 0, err
	}

	offer := &model.AvailabilityOffer{
		UserID:  userID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		avail := s.availRepo.WithTx(tx)

		overlaps, err := avail.OfferOverlaps(userID, req.StartAt, req.EndAt)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrOverlappingOffer
		}

		if err := avail.CreateOffer(offer); err != nil {
			return err
		}
		return s.matchOffer(tx, offer)
	})
	if err != nil {
		return 0, err
	}
	return offer.ID, nil
}

// CreateRequest validates and persists a request, then matches it against
// existing offers of other users before returning.
func (s *AvailabilityService) CreateRequest(userID string, req model.SlotRequest) (int, error) {
	if err := validateSlot(req.StartAt, req.EndAt); err != nil {
		return 0, err
	}

	request := &model.AvailabilityRequest{
		UserID:  userID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		avail := s.availRepo.WithTx(tx)

		overlaps, err := avail.RequestOverlaps(userID, req.StartAt, req.EndAt)
		if err != nil {
			return err
		}
		if overlaps {
			return ErrOverlappingRequest
		}

		if err := avail.CreateRequest(request); err != nil {
			return err
		}
		return s.matchRequest(tx, request)
	})
	if err != nil {
		return 0, err
	}
	return request.ID, nil
}

// matchOffer notifies owners of requests fully contained in the new offer
func (s *AvailabilityService) matchOffer(tx *gorm.DB, offer *model.AvailabilityOffer) error {
	requests, err := s.availRepo.WithTx(tx).RequestsWithin(offer)
	if err != nil {
		return err
	}
	for _, req := range requests {
		message := fmt.Sprintf("Une offre correspond à votre demande du %s au %s.",
			req.StartAt.Format(slotTimeLayout), req.EndAt.Format(slotTimeLayout))
		if err := s.notify(tx, req.UserID, message); err != nil {
			return err
		}
	}
	return nil
}

// matchRequest notifies owners of offers fully containing the new request
func (s *AvailabilityService) matchRequest(tx *gorm.DB, request *model.AvailabilityRequest) error {
	offers, err := s.availRepo.WithTx(tx).OffersContaining(request)
	if err != nil {
		return err
	}
	for _, offer := range offers {
		message := fmt.Sprintf("Une demande correspond à votre offre du %s au %s.",
			offer.StartAt.Format(slotTimeLayout), offer.EndAt.Format(slotTimeLayout))
		if err := s.notify(tx, offer.UserID, message); err != nil {
			return err
		}
	}
	return nil
}

// notify appends an inbox entry and sends a best-effort match email
func (s *AvailabilityService) notify(tx *gorm.DB, userID, message string) error {
	n := &model.Notification{UserID: userID, Message: message}
	if err := s.notifRepo.WithTx(tx).Create(n); err != nil {
		return err
	}

	if s.mailer != nil {
		user, err := s.userRepo.WithTx(tx).FindByID(userID)
		if err != nil {
			return err
		}
		if err := s.mailer.SendMatchAlert(user.Email, message); err != nil {
			log.Printf("⚠️  Match email to %s not delivered: %v", user.Email, err)
		}
	}
	return nil
}

// DeleteOffer removes the user's own offer. A foreign offer and a missing
// one are both reported as not found.
func (s *AvailabilityService) DeleteOffer(userID string, id int) error {
	affected, err := s.availRepo.DeleteOfferOwned(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// DeleteRequest removes the user's own request
func (s *AvailabilityService) DeleteRequest(userID string, id int) error {
	affected, err := s.availRepo.DeleteRequestOwned(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// ListOffers returns one page of the user's offers sorted by start time
func (s *AvailabilityService) ListOffers(userID string, q model.SlotListRequest) (*model.SlotListResponse, error) {
	page, pageSize, desc := normalizeListQuery(q)

	offers, total, err := s.availRepo.ListOffers(userID, page, pageSize, desc)
	if err != nil {
		return nil, err
	}

	items := make([]model.SlotItem, 0, len(offers))
	for _, o := range offers {
		items = append(items, model.SlotItem{ID: o.ID, StartAt: o.StartAt, EndAt: o.EndAt})
	}
	return &model.SlotListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListRequests returns one page of the user's requests sorted by start time
func (s *AvailabilityService) ListRequests(userID string, q model.SlotListRequest) (*model.SlotListResponse, error) {
	page, pageSize, desc := normalizeListQuery(q)

	requests, total, err := s.availRepo.ListRequests(userID, page, pageSize, desc)
	if err != nil {
		return nil, err
	}

	items := make([]model.SlotItem, 0, len(requests))
	for _, r := range requests {
		items = append(items, model.SlotItem{ID: r.ID, StartAt: r.StartAt, EndAt: r.EndAt})
	}
	return &model.SlotListResponse{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// normalizeListQuery applies defaults; a leading '-' on the sort key selects
// descending order, which is also the default.
func normalizeListQuery(q model.SlotListRequest) (page, pageSize int, desc bool) {
	page = q.Page
	if page < 1 {
		page = 1
	}
	pageSize = q.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	sort := q.Sort
	if sort == "" {
		sort = "-start_at"
	}
	desc = sort[0] == '-'
	return page, pageSize, desc
}
