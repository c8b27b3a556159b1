package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/campushq/placetrack/core/application"
)

type applicationRepository struct {
	db *applicationTable
}

var _ application.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *DB) *applicationRepository {
	return &applicationRepository{db: db.application}
}

func (repo *applicationRepository) query() []application.Application {
	res := make([]application.Application, 0, len(repo.db.t))
	for _, app := range repo.db.t {
		res = append(res, *app)
	}
	return res
}

func (repo *applicationRepository) CreateApplication(_ context.Context, app application.Application) (application.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	app.ID = uuid.New().String()
	stored := app
	stored.Rounds = append([]string(nil), app.Rounds...)
	repo.db.t[app.ID] = &stored
	return app, nil
}

func (repo *applicationRepository) GetApplicationByID(_ context.Context, id string) (application.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if app, ok := repo.db.t[id]; ok {
		return *app, nil
	}
	return application.Application{}, application.ErrNotFound
}

func matches(app application.Application, filter application.QueryFilter) bool {
	if filter.OwnerID != "" && app.OwnerID != filter.OwnerID {
		return false
	}
	if filter.Status != "" && app.Status != filter.Status {
		return false
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		ok := strings.Contains(strings.ToLower(app.Company), search) ||
			strings.Contains(strings.ToLower(app.Role), search)
		if !ok && filter.SearchRounds {
			ok = strings.Contains(strings.ToLower(app.CurrentRound), search)
		}
		if !ok {
			for _, id := range filter.SearchOwnerIDs {
				if app.OwnerID == id {
					ok = true
					break
				}
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (repo *applicationRepository) FilterApplications(_ context.Context, filter application.QueryFilter) ([]application.Application, int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var matched []application.Application
	for _, app := range repo.query() {
		if matches(app, filter) {
			matched = append(matched, app)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= total {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (repo *applicationRepository) UpdateApplication(_ context.Context, app application.Application) (application.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[app.ID]; !ok {
		return application.Application{}, application.ErrNotFound
	}
	stored := app
	stored.Rounds = append([]string(nil), app.Rounds...)
	repo.db.t[app.ID] = &stored
	return app, nil
}

func (repo *applicationRepository) DeleteApplication(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.t, id)
	return nil
}

func (repo *applicationRepository) CountApplications(_ context.Context) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return len(repo.db.t), nil
}
