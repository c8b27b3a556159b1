package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
)

type analyticsRepository struct {
	db *sqlx.DB
}

var _ analytics.Repository = (*analyticsRepository)(nil) // interface compliance check

func NewAnalyticsRepository(db *sqlx.DB) *analyticsRepository {
	return &analyticsRepository{db: db}
}

func (repo analyticsRepository) CountApplicationsByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM application`
	var args []interface{}
	if ownerID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, ownerID)
	}
	query += ` GROUP BY status`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "counting applications by status")
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (repo analyticsRepository) CompanyBreakdown(ctx context.Context, ownerID string) ([]analytics.CompanyStat, error) {
	query := `
		SELECT company,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = $1) AS offers,
		       COUNT(*) FILTER (WHERE status = $2) AS rejected,
		       COUNT(*) FILTER (WHERE status = $3) AS in_progress
		FROM application`
	args := []interface{}{application.StatusOffer, application.StatusRejected, application.StatusInProgress}
	if ownerID != "" {
		query += ` WHERE user_id = $4`
		args = append(args, ownerID)
	}
	query += ` GROUP BY company ORDER BY total DESC, company`

	var rows []struct {
		Company    string `db:"company"`
		Total      int    `db:"total"`
		Offers     int    `db:"offers"`
		Rejected   int    `db:"rejected"`
		InProgress int    `db:"in_progress"`
	}
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "aggregating company breakdown")
	}

	stats := make([]analytics.CompanyStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, analytics.CompanyStat{
			Company:    row.Company,
			Total:      row.Total,
			Offers:     row.Offers,
			Rejected:   row.Rejected,
			InProgress: row.InProgress,
		})
	}
	return stats, nil
}

func (repo analyticsRepository) RoundDropOff(ctx context.Context, ownerID string) ([]analytics.RoundStat, error) {
	query := `SELECT current_round AS round, COUNT(*) AS count FROM application WHERE status = $1`
	args := []interface{}{application.StatusRejected}
	if ownerID != "" {
		query += ` AND user_id = $2`
		args = append(args, ownerID)
	}
	query += ` GROUP BY current_round ORDER BY count DESC, round`

	var rows []analyticsRoundRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "aggregating round drop-off")
	}

	stats := make([]analytics.RoundStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, analytics.RoundStat{Round: row.Round, Count: row.Count})
	}
	return stats, nil
}

type analyticsRoundRow struct {
	Round string `db:"round"`
	Count int    `db:"count"`
}

func (repo analyticsRepository) TopCompanies(ctx context.Context, limit int) ([]analytics.CompanyCount, error) {
	var rows []struct {
		Company string `db:"company"`
		Count   int    `db:"count"`
	}
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT company, COUNT(*) AS count
		 FROM application
		 GROUP BY company
		 ORDER BY count DESC, company
		 LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "aggregating top companies")
	}

	top := make([]analytics.CompanyCount, 0, len(rows))
	for _, row := range rows {
		top = append(top, analytics.CompanyCount{Company: row.Company, Count: row.Count})
	}
	return top, nil
}
