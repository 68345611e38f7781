package service

import (
	"context"
	"strings"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository"
)

// ScheduleService is the schedule ledger.
type ScheduleService interface {
	ScheduleWorkout(ctx context.Context, userID, title, date string) (*domain.ScheduleEntry, error)
	ListUpcoming(ctx context.Context, userID string) ([]domain.ScheduleEntry, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	now          func() time.Time
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		now:          time.Now,
	}
}

func (s *scheduleService) ScheduleWorkout(ctx context.Context, userID, title, date string) (*domain.ScheduleEntry, error) {
	oid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationError("title cannot be empty")
	}
	when, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	entry := &domain.ScheduleEntry{
		UserID: oid,
		Title:  title,
		Date:   when,
	}
	entryID, err := s.scheduleRepo.Create(ctx, entry)
	if err != nil {
		return nil, storageError("create schedule entry", err)
	}

	stored, err := s.scheduleRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, storageError("get created schedule entry", err)
	}
	return stored, nil
}

// ListUpcoming returns entries dated now or later, soonest first.
func (s *scheduleService) ListUpcoming(ctx context.Context, userID string) ([]domain.ScheduleEntry, error) {
	oid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.scheduleRepo.GetUpcomingByUserID(ctx, oid, s.now().UTC())
	if err != nil {
		return nil, storageError("list upcoming schedule", err)
	}
	if entries == nil {
		entries = []domain.ScheduleEntry{}
	}
	return entries, nil
}
