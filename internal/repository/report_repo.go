package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatusCount is one row of the assets-by-status aggregate.
type StatusCount struct {
	Status string
	Total  int64
}

// CategoryAggregate is one row of the assets-by-category aggregate.
type CategoryAggregate struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        int64
	TotalCost    decimal.Decimal
}

// ReportRepository runs read-only aggregates. Queries are composed with
// squirrel and executed through the GORM connection.
type ReportRepository interface {
	AssetsByStatus(ctx context.Context) ([]StatusCount, error)
	AssetsByCategory(ctx context.Context) ([]CategoryAggregate, error)
	TotalAcquisitionCost(ctx context.Context) (decimal.Decimal, error)
	CountWhere(ctx context.Context, table string, pred sq.Sqlizer) (int64, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *reportRepo) AssetsByStatus(ctx context.Context) ([]StatusCount, error) {
	query, args, err := psql.
		Select("status", "COUNT(*) AS total").
		From("assets").
		GroupBy("status").
		OrderBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build status aggregate: %w", err)
	}
	var rows []StatusCount
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) AssetsByCategory(ctx context.Context) ([]CategoryAggregate, error) {
	query, args, err := psql.
		Select(
			"c.id AS category_id",
			"c.name AS category_name",
			"COUNT(a.id) AS total",
			"COALESCE(SUM(a.acquisition_cost), 0) AS total_cost",
		).
		From("categories c").
		LeftJoin("assets a ON a.category_id = c.id").
		GroupBy("c.id", "c.name").
		OrderBy("c.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category aggregate: %w", err)
	}
	var rows []CategoryAggregate
	err = r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) TotalAcquisitionCost(ctx context.Context) (decimal.Decimal, error) {
	query, args, err := psql.
		Select("COALESCE(SUM(acquisition_cost), 0)").
		From("assets").
		Where(sq.NotEq{"status": "DECOMMISSIONED"}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build cost aggregate: %w", err)
	}
	var total decimal.Decimal
	err = r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&total)
	return total, err
}

// CountWhere counts rows of table matching pred, e.g.
// CountWhere(ctx, "incidents", sq.Eq{"status": []string{"REPORTED", "INVESTIGATING"}}).
func (r *reportRepo) CountWhere(ctx context.Context, table string, pred sq.Sqlizer) (int64, error) {
	b := psql.Select("COUNT(*)").From(table)
	if pred != nil {
		b = b.Where(pred)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count on %s: %w", table, err)
	}
	var n int64
	err = r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&n)
	return n, err
}
