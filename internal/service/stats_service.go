package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository"
	"github.com/GowthamiKadiyala/workout-tracker/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultStatsWindow = 7
	statsDateLabel     = "Jan 2"
	statsCSVType       = "text/csv"
)

// StatsOptions tunes the volume series. Zero values select the defaults.
type StatsOptions struct {
	// Window caps the series to the N oldest workouts.
	Window int
	// Location is used for the display label of each point.
	Location *time.Location
	// PresignExpiry is how long an export download link stays valid.
	PresignExpiry time.Duration
}

// StatsExportResult is a finished export and a temporary link to download it.
type StatsExportResult struct {
	Export    *domain.StatsExport
	URL       string
	ExpiresAt time.Time
}

// StatsService derives the training-volume series from the workout ledger.
// Nothing is cached: every call reads the ledger.
type StatsService interface {
	ComputeStats(ctx context.Context, userID string) ([]domain.VolumePoint, error)
	Export(ctx context.Context, userID string) (*StatsExportResult, error)
	ListExports(ctx context.Context, userID string) ([]domain.StatsExport, error)
}

type statsService struct {
	workoutRepo repository.WorkoutRepository
	exportRepo  repository.StatsExportRepository
	fileStorage storage.FileStorage // nil when exports are disabled
	opts        StatsOptions
	now         func() time.Time
}

// NewStatsService creates the volume aggregator. fileStorage may be nil, in
// which case Export returns ErrExportUnavailable.
func NewStatsService(
	workoutRepo repository.WorkoutRepository,
	exportRepo repository.StatsExportRepository,
	fileStorage storage.FileStorage,
	opts StatsOptions,
) StatsService {
	if opts.Window <= 0 {
		opts.Window = DefaultStatsWindow
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = storage.DefaultPresignedURLExpiry
	}
	return &statsService{
		workoutRepo: workoutRepo,
		exportRepo:  exportRepo,
		fileStorage: fileStorage,
		opts:        opts,
		now:         time.Now,
	}
}

// ComputeStats returns one point per workout for the user's oldest workouts,
// in ascending date order. No workouts yields an empty series.
func (s *statsService) ComputeStats(ctx context.Context, userID string) ([]domain.VolumePoint, error) {
	oid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.GetOldestByUserID(ctx, oid, int64(s.opts.Window))
	if err != nil {
		return nil, storageError("list workouts for stats", err)
	}
	// The store applies the limit too.
	if len(workouts) > s.opts.Window {
		workouts = workouts[:s.opts.Window]
	}

	return VolumeSeries(workouts, s.opts.Location), nil
}

// VolumeSeries converts workouts into chart points, keeping their order.
func VolumeSeries(workouts []domain.Workout, loc *time.Location) []domain.VolumePoint {
	if loc == nil {
		loc = time.UTC
	}
	points := make([]domain.VolumePoint, 0, len(workouts))
	for i := range workouts {
		w := &workouts[i]
		points = append(points, domain.VolumePoint{
			Date:      w.Date.In(loc).Format(statsDateLabel),
			Volume:    w.Volume(),
			Timestamp: w.Date,
		})
	}
	return points
}

// Export writes the current series as CSV to object storage, records its
// metadata and returns a presigned download link.
func (s *statsService) Export(ctx context.Context, userID string) (*StatsExportResult, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}

	points, err := s.ComputeStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	oid, _ := ParseUserID(userID) // already validated by ComputeStats

	body, err := encodeVolumeCSV(points)
	if err != nil {
		return nil, fmt.Errorf("encode stats csv: %w", err)
	}

	objectKey := fmt.Sprintf("stats/%s/%s.csv", oid.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, statsCSVType, body); err != nil {
		return nil, storageError("upload stats export", err)
	}

	// Metadata is written last, so a failure before it only has the object to undo.
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.opts.PresignExpiry)
	if err != nil {
		s.deleteExportObject(ctx, objectKey)
		return nil, storageError("presign stats export", err)
	}

	export := &domain.StatsExport{
		UserID:      oid,
		S3ObjectKey: objectKey,
		ContentType: statsCSVType,
		Points:      len(points),
		Size:        int64(len(body)),
	}
	exportID, err := s.exportRepo.Create(ctx, export)
	if err != nil {
		s.deleteExportObject(ctx, objectKey)
		return nil, storageError("create stats export", err)
	}
	export.ID = exportID

	return &StatsExportResult{
		Export:    export,
		URL:       url,
		ExpiresAt: s.now().Add(s.opts.PresignExpiry).UTC(),
	}, nil
}

func (s *statsService) deleteExportObject(ctx context.Context, objectKey string) {
	if err := s.fileStorage.DeleteObject(ctx, objectKey); err != nil {
		log.WithError(err).WithField("key", objectKey).Warn("cleanup of stats export object failed")
	}
}

// ListExports lists previous exports of the user, most recent first.
func (s *statsService) ListExports(ctx context.Context, userID string) ([]domain.StatsExport, error) {
	oid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	exports, err := s.exportRepo.GetByUserID(ctx, oid)
	if err != nil {
		return nil, storageError("list stats exports", err)
	}
	if exports == nil {
		exports = []domain.StatsExport{}
	}
	return exports, nil
}

func encodeVolumeCSV(points []domain.VolumePoint) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"timestamp", "date", "volume"}); err != nil {
		return nil, err
	}
	for _, p := range points {
		record := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			p.Date,
			strconv.FormatFloat(p.Volume, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
