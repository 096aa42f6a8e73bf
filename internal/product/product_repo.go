package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-couture-api/internal/shared/database"
	"go-couture-api/internal/shared/database/helper"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const productColumns = `id, name, description, price, category, images, sizes, colors, in_stock, is_featured, created_at, updated_at`

var sortClauses = map[Sort]string{
	SortNewest:    "created_at DESC",
	SortPriceAsc:  "price ASC, created_at DESC",
	SortPriceDesc: "price DESC, created_at DESC",
	SortNameAsc:   "name ASC",
	SortNameDesc:  "name DESC",
}

type ListParams struct {
	Category     string
	OnlyInStock  bool
	OnlyFeatured bool
	Search       string
	Sort         Sort
	Limit        int
	Offset       int
}

type WriteParams struct {
	Name        string
	Description string
	Price       string
	Category    string
	Images      []string
	Sizes       []string
	Colors      []string
	InStock     bool
	IsFeatured  bool
	UpdatedAt   time.Time
}

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx database.DBTX) Repository
	List(ctx context.Context, params ListParams) ([]Row, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Row, error)
	Create(ctx context.Context, params WriteParams) (Row, error)
	Update(ctx context.Context, id uuid.UUID, params WriteParams) (Row, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx database.DBTX) Repository {
	return &repository{db: tx}
}

func scanRow(scan func(dest ...any) error, extra ...any) (Row, error) {
	var row Row
	dest := []any{
		&row.ID,
		&row.Name,
		&row.Description,
		&row.Price,
		&row.Category,
		&row.Images,
		&row.Sizes,
		&row.Colors,
		&row.InStock,
		&row.IsFeatured,
		&row.CreatedAt,
		&row.UpdatedAt,
	}
	err := scan(append(dest, extra...)...)
	return row, err
}

func (r *repository) List(ctx context.Context, p ListParams) ([]Row, int64, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count FROM products WHERE 1=1`)

	if p.Category != "" {
		args = append(args, p.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	if p.OnlyInStock {
		sb.WriteString(" AND in_stock = true")
	}
	if p.OnlyFeatured {
		sb.WriteString(" AND is_featured = true")
	}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		fmt.Fprintf(&sb, " AND name ILIKE $%d", len(args))
	}

	order, ok := sortClauses[p.Sort]
	if !ok {
		order = sortClauses[SortNewest]
	}
	sb.WriteString(" ORDER BY " + order)

	if p.Limit > 0 {
		args = append(args, p.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if p.Offset > 0 {
		args = append(args, p.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []Row
		total int64
	)
	for rows.Next() {
		row, err := scanRow(rows.Scan, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Row, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanRow(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *repository) Create(ctx context.Context, p WriteParams) (Row, error) {
	const query = `
		INSERT INTO products (name, description, price, category, images, sizes, colors, in_stock, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	return scanRow(r.db.QueryRowContext(ctx, query,
		p.Name,
		helper.RawStringToNull(p.Description),
		p.Price,
		p.Category,
		pq.Array(p.Images),
		pq.Array(p.Sizes),
		pq.Array(p.Colors),
		p.InStock,
		p.IsFeatured,
	).Scan)
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, p WriteParams) (Row, error) {
	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, images = $6,
		    sizes = $7, colors = $8, in_stock = $9, is_featured = $10, updated_at = $11
		WHERE id = $1
		RETURNING ` + productColumns

	return scanRow(r.db.QueryRowContext(ctx, query,
		id,
		p.Name,
		helper.RawStringToNull(p.Description),
		p.Price,
		p.Category,
		pq.Array(p.Images),
		pq.Array(p.Sizes),
		pq.Array(p.Colors),
		p.InStock,
		p.IsFeatured,
		p.UpdatedAt,
	).Scan)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			category string
			count    int64
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		out[category] = count
	}
	return out, rows.Err()
}
