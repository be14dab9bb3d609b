package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mindkeeper/internal/common"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/dmitrijs2005/mindkeeper/internal/server/models"
)

type preferencesReader interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
}

// DashboardService composes everything the home screen shows. It never
// fails on store errors: the aggregator replaces each failed read with its
// "no data" default and the result is flagged Degraded.
type DashboardService struct {
	prefs        preferencesReader
	aggregator   *WellnessAggregator
	lookbackDays int
	logger       logging.Logger
}

func NewDashboardService(prefs preferencesReader, aggregator *WellnessAggregator, lookbackDays int, logger logging.Logger) *DashboardService {
	return &DashboardService{
		prefs:        prefs,
		aggregator:   aggregator,
		lookbackDays: lookbackDays,
		logger:       logger.With("module", "dashboard"),
	}
}

// Build returns the dashboard for userID. The only error it returns is the
// context's, so a cancelled caller never receives a result.
func (s *DashboardService) Build(ctx context.Context, userID string) (*models.Dashboard, error) {
	d := &models.Dashboard{}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		s.degrade(ctx, d, "preferences", userID, err)
		prefs = models.DefaultPreferences(userID)
	}
	d.Preferences = *prefs
	d.PhoneEnabled = prefs.Trackers.PhoneDependence

	d.Snapshot, err = s.aggregator.BuildSnapshot(ctx, userID, s.lookbackDays)
	if err != nil {
		s.degrade(ctx, d, "snapshot", userID, err)
	}

	d.Missing, err = s.aggregator.FindMissingDimensions(ctx, userID, prefs.Trackers, s.lookbackDays)
	if err != nil {
		s.degrade(ctx, d, "missing dimensions", userID, err)
	}

	if d.PhoneEnabled {
		d.Phone, err = s.aggregator.BuildPhoneDependenceState(ctx, userID, s.lookbackDays)
		if err != nil {
			s.degrade(ctx, d, "phone dependence", userID, err)
			d.Phone = models.PhoneDependenceState{}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DashboardService) degrade(ctx context.Context, d *models.Dashboard, part, userID string, err error) {
	d.Degraded = true
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return
	}
	if !errors.Is(err, common.ErrFetchFailed) {
		s.logger.Error(ctx, "unexpected dashboard error", "part", part, "user_id", userID, "error", err)
		return
	}
	s.logger.Warn(ctx, "dashboard read failed, using defaults", "part", part, "user_id", userID, "error", err)
}
