package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/user"
)

var (
	// errors
	ErrNotFound  = errors.New("application not found")
	ErrNotOwner  = errors.New("not allowed to modify this application")
	ErrCompleted = errors.New("cannot modify a completed application")
)

type (
	Repository interface {
		CreateApplication(ctx context.Context, app Application) (Application, error)
		GetApplicationByID(ctx context.Context, id string) (Application, error)
		// FilterApplications applies AND operation on available QueryFilter
		// fields and returns the matching page (CreatedAt descending) along
		// with the total match count.
		FilterApplications(ctx context.Context, filter QueryFilter) ([]Application, int, error)
		UpdateApplication(ctx context.Context, app Application) (Application, error)
		DeleteApplication(ctx context.Context, id string) error
		CountApplications(ctx context.Context) (int, error)
	}

	// StatsInvalidator drops cached aggregates after a write. A failed
	// invalidation never fails the write.
	StatsInvalidator interface {
		Invalidate(ctx context.Context) error
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
		stats   StatsInvalidator
	}
)

func NewService(repo Repository, usrRepo user.Repository, stats StatsInvalidator) *Service {
	return &Service{repo: repo, usrRepo: usrRepo, stats: stats}
}

// ListOptions are the caller-supplied listing parameters.
type ListOptions struct {
	Status string `query:"status"`
	Search string `query:"q"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func (svc *Service) Create(ctx context.Context, ownerID string, na NewApplication) (Application, error) {
	now := time.Now().UTC()
	app := Application{
		OwnerID:      ownerID,
		Company:      na.Company,
		Role:         na.Role,
		Package:      na.Package,
		Rounds:       na.Rounds,
		CurrentRound: na.CurrentRound,
		Status:       na.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	app, err := svc.repo.CreateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	svc.invalidateStats(ctx)
	return app, nil
}

// QueryOwned returns a page of the owner's applications, newest first.
// Requesting a page beyond the last yields an empty page, not an error.
func (svc *Service) QueryOwned(ctx context.Context, ownerID string, opts ListOptions) (Page, error) {
	page, limit := opts.Page, opts.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	} else if limit > MaxPageSize {
		limit = MaxPageSize
	}

	items, total, err := svc.repo.FilterApplications(ctx, QueryFilter{
		OwnerID:      ownerID,
		Status:       opts.Status,
		Search:       core.CleanString(opts.Search),
		SearchRounds: true,
		Offset:       (page - 1) * limit,
		Limit:        limit,
	})
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []Application{}
	}
	return Page{Items: items, Pagination: paginate(total, page, limit)}, nil
}

// Recent returns the owner's n most recent applications.
func (svc *Service) Recent(ctx context.Context, ownerID string, n int) ([]Application, error) {
	items, _, err := svc.repo.FilterApplications(ctx, QueryFilter{OwnerID: ownerID, Limit: n})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Application{}
	}
	return items, nil
}

func (svc *Service) GetByID(ctx context.Context, requesterID, id string) (Application, error) {
	return svc.getOwned(ctx, requesterID, id)
}

func (svc *Service) UpdateStatus(ctx context.Context, requesterID, id string, us UpdateApplicationStatus) (Application, error) {
	app, err := svc.getOwned(ctx, requesterID, id)
	if err != nil {
		return Application{}, err
	}
	if IsTerminal(app.Status) {
		return Application{}, ErrCompleted
	}

	app.Status = us.Status
	if us.CurrentRound != nil {
		app.CurrentRound = *us.CurrentRound
	}
	app.UpdatedAt = time.Now().UTC()

	app, err = svc.repo.UpdateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	svc.invalidateStats(ctx)
	return app, nil
}

func (svc *Service) Update(ctx context.Context, requesterID, id string, ua UpdateApplication) (Application, error) {
	app, err := svc.getOwned(ctx, requesterID, id)
	if err != nil {
		return Application{}, err
	}
	if IsTerminal(app.Status) {
		return Application{}, ErrCompleted
	}

	app.Company = ua.Company
	app.Role = ua.Role
	app.Package = ua.Package
	app.Rounds = ua.Rounds
	app.Status = ua.Status
	if ua.CurrentRound != nil {
		app.CurrentRound = *ua.CurrentRound
	}
	app.UpdatedAt = time.Now().UTC()

	app, err = svc.repo.UpdateApplication(ctx, app)
	if err != nil {
		return Application{}, err
	}
	svc.invalidateStats(ctx)
	return app, nil
}

func (svc *Service) Delete(ctx context.Context, requesterID, id string) error {
	app, err := svc.getOwned(ctx, requesterID, id)
	if err != nil {
		return err
	}
	if IsTerminal(app.Status) {
		return ErrCompleted
	}
	if err := svc.repo.DeleteApplication(ctx, app.ID); err != nil {
		return err
	}
	svc.invalidateStats(ctx)
	return nil
}

// QueryAll is the admin cross-owner listing: same filtering semantics as
// QueryOwned except the search also matches owner emails (and skips rounds),
// and each record is joined with its owner's identity. The join is two-step:
// owner IDs matching the search are resolved up front, then owner emails are
// batch-resolved for the returned page only.
func (svc *Service) QueryAll(ctx context.Context, opts ListOptions) (AdminPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := AdminPageSize

	search := core.CleanString(opts.Search)
	var ownerIDs []string
	if search != "" {
		var err error
		if ownerIDs, err = svc.usrRepo.SearchUserIDsByEmail(ctx, search); err != nil {
			return AdminPage{}, err
		}
	}

	items, total, err := svc.repo.FilterApplications(ctx, QueryFilter{
		Status:         opts.Status,
		Search:         search,
		SearchOwnerIDs: ownerIDs,
		Offset:         (page - 1) * limit,
		Limit:          limit,
	})
	if err != nil {
		return AdminPage{}, err
	}

	owners, err := svc.resolveOwners(ctx, items)
	if err != nil {
		return AdminPage{}, err
	}
	joined := make([]AdminApplication, 0, len(items))
	for _, app := range items {
		joined = append(joined, AdminApplication{
			Application: app,
			Owner:       Owner{ID: app.OwnerID, Email: owners[app.OwnerID].Email},
		})
	}
	return AdminPage{Items: joined, Pagination: paginate(total, page, limit)}, nil
}

// GetAny is the admin single-record read: no ownership check, owner name and
// email populated.
func (svc *Service) GetAny(ctx context.Context, id string) (AdminApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AdminApplication{}, ErrNotFound
	}
	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return AdminApplication{}, err
	}
	owner, err := svc.usrRepo.GetUserByID(ctx, app.OwnerID)
	if err != nil && err != user.ErrNotFound {
		return AdminApplication{}, err
	}
	return AdminApplication{
		Application: app,
		Owner:       Owner{ID: app.OwnerID, Name: owner.Name, Email: owner.Email},
	}, nil
}

func (svc *Service) getOwned(ctx context.Context, requesterID, id string) (Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Application{}, ErrNotFound
	}
	app, err := svc.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.OwnerID != requesterID {
		return Application{}, ErrNotOwner
	}
	return app, nil
}

func (svc *Service) resolveOwners(ctx context.Context, items []Application) (map[string]user.User, error) {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, app := range items {
		if !seen[app.OwnerID] {
			seen[app.OwnerID] = true
			ids = append(ids, app.OwnerID)
		}
	}
	owners := make(map[string]user.User, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}
	users, err := svc.usrRepo.GetUsersByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		owners[u.ID] = u
	}
	return owners, nil
}

func (svc *Service) invalidateStats(ctx context.Context) {
	if svc.stats != nil {
		_ = svc.stats.Invalidate(ctx)
	}
}

func paginate(total, page, limit int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Pages: pages}
}
