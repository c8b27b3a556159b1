package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/campushq/placetrack/core/application"
)

type dbApplication struct {
	ID           string         `db:"id"`
	OwnerID      string         `db:"user_id"`
	Company      string         `db:"company"`
	Role         string         `db:"role"`
	Package      float64        `db:"package"`
	Rounds       pq.StringArray `db:"rounds"`
	CurrentRound string         `db:"current_round"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (a dbApplication) toDomain() application.Application {
	return application.Application{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		Company:      a.Company,
		Role:         a.Role,
		Package:      a.Package,
		Rounds:       []string(a.Rounds),
		CurrentRound: a.CurrentRound,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	}
}

type applicationRepository struct {
	db *sqlx.DB
}

var _ application.Repository = (*applicationRepository)(nil) // interface compliance check

func NewApplicationRepository(db *sqlx.DB) *applicationRepository {
	return &applicationRepository{db: db}
}

func (repo applicationRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return application.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo applicationRepository) CreateApplication(ctx context.Context, app application.Application) (application.Application, error) {
	app.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO application (id, user_id, company, role, package, rounds, current_round, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.OwnerID, app.Company, app.Role, app.Package, pq.StringArray(app.Rounds),
		app.CurrentRound, app.Status, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, errors.Wrap(err, "inserting application")
	}
	return app, nil
}

func (repo applicationRepository) GetApplicationByID(ctx context.Context, id string) (application.Application, error) {
	var a dbApplication
	if err := repo.db.GetContext(ctx, &a, `SELECT * FROM application WHERE id = $1`, id); err != nil {
		return application.Application{}, repo.trapNoRowsErr(err, "getting application by ID")
	}
	return a.toDomain(), nil
}

// whereClause builds the WHERE conditions for the filter; args are appended
// as positional parameters.
func whereClause(filter application.QueryFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.OwnerID != "" {
		conds = append(conds, "user_id = "+arg(filter.OwnerID))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ors := []string{
			"company ILIKE " + arg(pattern),
			"role ILIKE " + arg(pattern),
		}
		if filter.SearchRounds {
			ors = append(ors, "current_round ILIKE "+arg(pattern))
		}
		if len(filter.SearchOwnerIDs) > 0 {
			ors = append(ors, "user_id = ANY("+arg(pq.Array(filter.SearchOwnerIDs))+")")
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (repo applicationRepository) FilterApplications(ctx context.Context, filter application.QueryFilter) ([]application.Application, int, error) {
	where, args := whereClause(filter)

	var total int
	if err := repo.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM application"+where, args...); err != nil {
		return nil, 0, errors.Wrap(err, "counting applications")
	}

	query := "SELECT * FROM application" + where + " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}
	var rows []dbApplication
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "filtering applications")
	}

	apps := make([]application.Application, 0, len(rows))
	for _, a := range rows {
		apps = append(apps, a.toDomain())
	}
	return apps, total, nil
}

func (repo applicationRepository) UpdateApplication(ctx context.Context, app application.Application) (application.Application, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE application
		 SET company = $2, role = $3, package = $4, rounds = $5, current_round = $6, status = $7, updated_at = $8
		 WHERE id = $1`,
		app.ID, app.Company, app.Role, app.Package, pq.StringArray(app.Rounds),
		app.CurrentRound, app.Status, app.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, errors.Wrap(err, "updating application")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return application.Application{}, application.ErrNotFound
	}
	return app, nil
}

func (repo applicationRepository) DeleteApplication(ctx context.Context, id string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM application WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting application")
	}
	return nil
}

func (repo applicationRepository) CountApplications(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM application`); err != nil {
		return 0, errors.Wrap(err, "counting applications")
	}
	return count, nil
}
