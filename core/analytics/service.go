package analytics

import (
	"context"

	"github.com/campushq/placetrack/core/application"
	"github.com/campushq/placetrack/core/user"
)

const topCompaniesLimit = 5

type (
	// Repository serves pure read-only aggregates. An empty ownerID means
	// "across all owners".
	Repository interface {
		CountApplicationsByStatus(ctx context.Context, ownerID string) (map[string]int, error)
		// CompanyBreakdown is sorted by total descending, company ascending on ties.
		CompanyBreakdown(ctx context.Context, ownerID string) ([]CompanyStat, error)
		// RoundDropOff groups Rejected applications by current round, count
		// descending, round ascending on ties.
		RoundDropOff(ctx context.Context, ownerID string) ([]RoundStat, error)
		// TopCompanies is sorted by count descending, company ascending on ties.
		TopCompanies(ctx context.Context, limit int) ([]CompanyCount, error)
	}

	// Cache is an optional read-through cache for the global aggregate. A nil
	// result with a nil error means a miss.
	Cache interface {
		GetGlobalStats(ctx context.Context) (*GlobalStats, error)
		SetGlobalStats(ctx context.Context, stats GlobalStats) error
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
		appRepo application.Repository
		cache   Cache
	}
)

func NewService(repo Repository, usrRepo user.Repository, appRepo application.Repository, cache Cache) *Service {
	return &Service{repo: repo, usrRepo: usrRepo, appRepo: appRepo, cache: cache}
}

func (svc *Service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	counts, err := svc.repo.CountApplicationsByStatus(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		InProgress: counts[application.StatusInProgress],
		Offer:      counts[application.StatusOffer],
		Rejected:   counts[application.StatusRejected],
	}
	s.Total = s.InProgress + s.Offer + s.Rejected
	return s, nil
}

func (svc *Service) CompanyBreakdown(ctx context.Context, ownerID string) ([]CompanyStat, error) {
	return svc.repo.CompanyBreakdown(ctx, ownerID)
}

func (svc *Service) RoundDropOff(ctx context.Context, ownerID string) ([]RoundStat, error) {
	return svc.repo.RoundDropOff(ctx, ownerID)
}

// GlobalStats aggregates across all users. The result is served from cache
// when one is configured; cache failures fall back to direct reads.
func (svc *Service) GlobalStats(ctx context.Context) (GlobalStats, error) {
	if svc.cache != nil {
		if cached, err := svc.cache.GetGlobalStats(ctx); err == nil && cached != nil {
			return *cached, nil
		}
	}

	totalUsers, err := svc.usrRepo.CountUsers(ctx)
	if err != nil {
		return GlobalStats{}, err
	}
	totalApps, err := svc.appRepo.CountApplications(ctx)
	if err != nil {
		return GlobalStats{}, err
	}
	counts, err := svc.repo.CountApplicationsByStatus(ctx, "")
	if err != nil {
		return GlobalStats{}, err
	}
	top, err := svc.repo.TopCompanies(ctx, topCompaniesLimit)
	if err != nil {
		return GlobalStats{}, err
	}

	stats := GlobalStats{
		TotalUsers:        totalUsers,
		TotalApplications: totalApps,
		ApplicationsByStatus: StatusCounts{
			InProgress: counts[application.StatusInProgress],
			Offer:      counts[application.StatusOffer],
			Rejected:   counts[application.StatusRejected],
		},
		TopCompanies: top,
	}
	if svc.cache != nil {
		_ = svc.cache.SetGlobalStats(ctx, stats)
	}
	return stats, nil
}
