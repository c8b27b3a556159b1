package dummydb

import (
	"context"
	"sort"

	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
)

type analyticsRepository struct {
	db *applicationTable
}

var _ analytics.Repository = (*analyticsRepository)(nil) // interface compliance check

func NewAnalyticsRepository(db *DB) *analyticsRepository {
	return &analyticsRepository{db: db.application}
}

func (repo *analyticsRepository) owned(ownerID string) []application.Application {
	res := make([]application.Application, 0, len(repo.db.t))
	for _, app := range repo.db.t {
		if ownerID == "" || app.OwnerID == ownerID {
			res = append(res, *app)
		}
	}
	return res
}

func (repo *analyticsRepository) CountApplicationsByStatus(_ context.Context, ownerID string) (map[string]int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	counts := make(map[string]int)
	for _, app := range repo.owned(ownerID) {
		counts[app.Status]++
	}
	return counts, nil
}

func (repo *analyticsRepository) CompanyBreakdown(_ context.Context, ownerID string) ([]analytics.CompanyStat, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	byCompany := make(map[string]*analytics.CompanyStat)
	for _, app := range repo.owned(ownerID) {
		stat, ok := byCompany[app.Company]
		if !ok {
			stat = &analytics.CompanyStat{Company: app.Company}
			byCompany[app.Company] = stat
		}
		stat.Total++
		switch app.Status {
		case application.StatusOffer:
			stat.Offers++
		case application.StatusRejected:
			stat.Rejected++
		case application.StatusInProgress:
			stat.InProgress++
		}
	}

	stats := make([]analytics.CompanyStat, 0, len(byCompany))
	for _, stat := range byCompany {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Company < stats[j].Company
	})
	return stats, nil
}

func (repo *analyticsRepository) RoundDropOff(_ context.Context, ownerID string) ([]analytics.RoundStat, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	byRound := make(map[string]int)
	for _, app := range repo.owned(ownerID) {
		if app.Status == application.StatusRejected {
			byRound[app.CurrentRound]++
		}
	}

	stats := make([]analytics.RoundStat, 0, len(byRound))
	for round, count := range byRound {
		stats = append(stats, analytics.RoundStat{Round: round, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Round < stats[j].Round
	})
	return stats, nil
}

func (repo *analyticsRepository) TopCompanies(_ context.Context, limit int) ([]analytics.CompanyCount, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	byCompany := make(map[string]int)
	for _, app := range repo.owned("") {
		byCompany[app.Company]++
	}

	top := make([]analytics.CompanyCount, 0, len(byCompany))
	for company, count := range byCompany {
		top = append(top, analytics.CompanyCount{Company: company, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Company < top[j].Company
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
