// File: internal/prayer/service.go
package prayer

import (
	"context"
	"errors"
	"time"

	"iqamah_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the prayer record operations. All of them are scoped
// to the calling user's ID.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Prayer, error)
	List(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Prayer, *common.Pagination, error)
	GetForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]DayEntry, error)
	GetToday(ctx context.Context, userID uuid.UUID) ([]DayEntry, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Prayer, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*Prayer, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GetStats(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Stats, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new prayer service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("PrayerService"),
		now:    time.Now,
	}
}

// Create logs a prayer status for a calendar day. The pre-check makes the
// common duplicate a clean Conflict; the unique index catches the rest.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Prayer, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Invalid date format. Use YYYY-MM-DD.")
	}

	existing, err := s.repo.FindByUserPrayerDate(ctx, userID, req.PrayerName, date)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrConflict.WithDetails("Prayer already exists for this date and prayer name.")
	}

	p := &Prayer{
		UserID:     userID,
		PrayerName: req.PrayerName,
		PrayerType: req.PrayerType,
		Date:       date,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug("Prayer created",
		zap.String("userID", userID.String()),
		zap.String("prayerName", string(p.PrayerName)),
		zap.Time("date", p.Date),
	)
	return p, nil
}

// List returns a page of the user's records with pagination metadata.
func (s *service) List(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Prayer, *common.Pagination, error) {
	if query.Date != nil {
		normalized := NormalizeDate(*query.Date)
		query.Date = &normalized
	}

	prayers, totalCount, err := s.repo.List(ctx, userID, query)
	if err != nil {
		return nil, nil, err
	}

	pq := common.PaginationQuery{Page: query.Page, Limit: query.Limit}
	pagination := common.NewPagination(totalCount, pq.Page, pq.PageLimit())
	return prayers, pagination, nil
}

// GetForDate synthesizes the five-entry day view: one entry per canonical
// prayer in fixed order, nil ID and type where nothing was recorded.
func (s *service) GetForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]DayEntry, error) {
	day := NormalizeDate(date)
	recorded, err := s.repo.FindForDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	byName := make(map[Name]*Prayer, len(recorded))
	for i := range recorded {
		byName[recorded[i].PrayerName] = &recorded[i]
	}

	entries := make([]DayEntry, 0, len(CanonicalNames))
	for _, name := range CanonicalNames {
		entry := DayEntry{PrayerName: name, Date: day}
		if p, ok := byName[name]; ok {
			id := p.ID
			prayerType := p.PrayerType
			entry.ID = &id
			entry.PrayerType = &prayerType
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetToday returns the synthesized view for the current UTC day.
func (s *service) GetToday(ctx context.Context, userID uuid.UUID) ([]DayEntry, error) {
	return s.GetForDate(ctx, userID, s.now())
}

// GetByID retrieves a single owned record.
func (s *service) GetByID(ctx context.Context, userID, id uuid.UUID) (*Prayer, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// Update changes the prayer type only; name and date are immutable.
func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*Prayer, error) {
	return s.repo.UpdateType(ctx, userID, id, req.PrayerType)
}

// Delete removes an owned record.
func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// GetStats counts the user's records per prayer type within an optional
// inclusive date range. MISSED is its own bucket and is never folded into
// the others; types without records are omitted.
func (s *service) GetStats(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Stats, error) {
	if start != nil {
		normalized := NormalizeDate(*start)
		start = &normalized
	}
	if end != nil {
		normalized := NormalizeDate(*end)
		end = &normalized
	}
	return s.repo.CountByType(ctx, userID, start, end)
}

func isNotFound(err error) bool {
	var apiErr *common.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == common.ErrNotFound.StatusCode
}
