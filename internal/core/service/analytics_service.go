package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// ReportCache abstracts the short-TTL cache in front of the system rollup
// (Redis). A cache failure is never fatal: misses fall through to the store.
type ReportCache interface {
	GetSystem(ctx context.Context) (*ports.SystemReport, error)
	SetSystem(ctx context.Context, report *ports.SystemReport) error
}

// AnalyticsService serves read-only rollups with the same access rules as
// the entities they aggregate.
type AnalyticsService struct {
	analytics ports.AnalyticsRepository
	projects  ports.ProjectRepository
	cache     ReportCache
	logger    zerolog.Logger
}

func NewAnalyticsService(
	analytics ports.AnalyticsRepository,
	projects ports.ProjectRepository,
	cache ReportCache,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, projects: projects, cache: cache, logger: logger}
}

func (s *AnalyticsService) System(ctx context.Context, p domain.Principal) (*ports.SystemReport, error) {
	if !domain.CanViewSystemAnalytics(p) {
		return nil, domain.ErrAccessDenied
	}

	if s.cache != nil {
		if report, err := s.cache.GetSystem(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("system report cache read failed")
		} else if report != nil {
			return report, nil
		}
	}

	report, err := s.analytics.SystemReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("system report: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetSystem(ctx, report); err != nil {
			s.logger.Warn().Err(err).Msg("system report cache write failed")
		}
	}
	return report, nil
}

func (s *AnalyticsService) Project(ctx context.Context, p domain.Principal, projectID string) (*ports.ProjectReport, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewProjectAnalytics(p, project) {
		return nil, domain.ErrAccessDenied
	}

	report, err := s.analytics.ProjectReport(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project report: %w", err)
	}
	return report, nil
}

func (s *AnalyticsService) Moderator(ctx context.Context, p domain.Principal) (*ports.ModeratorReport, error) {
	if !domain.CanViewModeratorAnalytics(p) {
		return nil, domain.ErrAccessDenied
	}

	moderatorID := p.ID
	if p.IsAdmin() {
		moderatorID = "" // admins see every moderator's portfolio
	}

	report, err := s.analytics.ModeratorReport(ctx, moderatorID)
	if err != nil {
		return nil, fmt.Errorf("moderator report: %w", err)
	}
	return report, nil
}

func (s *AnalyticsService) User(ctx context.Context, p domain.Principal) (*ports.UserReport, error) {
	report, err := s.analytics.UserReport(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("user report: %w", err)
	}
	return report, nil
}
