package application

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/listora/listings-api/internal/domain/entity"
	"github.com/listora/listings-api/internal/domain/repository"
	"github.com/listora/listings-api/pkg/events"
	"github.com/listora/listings-api/pkg/helpers"
)

// ListingService holds the ownership gate and the partial-update path.
// Redis and the event publisher are optional; when nil the service works
// straight against the repository.
type ListingService struct {
	Repo     repository.ListingRepository
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
	Pub      *helpers.RabbitPublisher
}

func NewListingService(repo repository.ListingRepository, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger, pub *helpers.RabbitPublisher) *ListingService {
	return &ListingService{Repo: repo, Redis: rdb, CacheTTL: cacheTTL, Logger: logger, Pub: pub}
}

func cacheKey(id int64) string {
	return "listing:" + strconv.FormatInt(id, 10)
}

func (s *ListingService) List(ctx context.Context, limit, offset int) ([]entity.Listing, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Get serves reads through the redis cache when available. Cache failures
// are logged and fall through to postgres.
func (s *ListingService) Get(ctx context.Context, id int64) (*entity.Listing, error) {
	if s.Redis != nil {
		var cached entity.Listing
		hit, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKey(id), &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("listing_id", id).Warn("cache read failed")
		}
		if hit {
			return &cached, nil
		}
	}
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, l)
	return l, nil
}

// Create persists a listing owned by the resolved caller identity. The owner
// is never taken from the payload.
func (s *ListingService) Create(ctx context.Context, ownerID int64, title, description string) (*entity.Listing, error) {
	l := &entity.Listing{Title: title, Description: description, OwnerID: ownerID}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.ListingCreated, ownerID, l.ID))
	return l, nil
}

// Update applies a validated partial update after the ownership gate.
// Existence is checked before ownership, so a missing listing is always
// NotFound regardless of caller. The gate and the mutation are separate
// statements with no wrapping transaction; a concurrent owner delete in
// between surfaces as NotFound from the update itself.
func (s *ListingService) Update(ctx context.Context, callerID, id int64, fields map[string]string) (*entity.Listing, error) {
	owner, err := s.Repo.OwnerOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner != callerID {
		return nil, ErrForbidden
	}
	l, err := s.Repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.cacheDel(ctx, id)
	s.publish(ctx, events.New(events.ListingUpdated, callerID, id))
	return l, nil
}

// Delete removes an owned listing. Same gate ordering as Update.
func (s *ListingService) Delete(ctx context.Context, callerID, id int64) error {
	owner, err := s.Repo.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != callerID {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheDel(ctx, id)
	s.publish(ctx, events.New(events.ListingDeleted, callerID, id))
	return nil
}

func (s *ListingService) cacheSet(ctx context.Context, l *entity.Listing) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, cacheKey(l.ID), l, s.CacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("listing_id", l.ID).Warn("cache write failed")
	}
}

func (s *ListingService) cacheDel(ctx context.Context, id int64) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, cacheKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("listing_id", id).Warn("cache invalidation failed")
	}
}

func (s *ListingService) publish(ctx context.Context, ev events.Event) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", ev.Type).Warn("event publish failed")
	}
}
