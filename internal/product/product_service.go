package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	producterrors "go-couture-api/internal/product/errors"
	"go-couture-api/internal/shared/database"
	"go-couture-api/internal/shared/database/helper"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, f Filter) ([]Product, int64, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, in Input) (Product, error)
	Update(ctx context.Context, id string, in Input) (Product, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("product.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
		now:    time.Now,
	}
}

func (s *service) List(ctx context.Context, f Filter) ([]Product, int64, error) {
	category := strings.ToLower(strings.TrimSpace(f.Category))
	if category == "all" {
		category = ""
	}

	params := ListParams{
		Category:     category,
		OnlyInStock:  f.OnlyInStock,
		OnlyFeatured: f.OnlyFeatured,
		Search:       strings.TrimSpace(f.Search),
		Sort:         f.Sort,
		Limit:        f.Limit,
	}
	if f.Limit > 0 && f.Page > 1 {
		params.Offset = (f.Page - 1) * f.Limit
	}

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return nil, 0, producterrors.ErrDataUnavailable.Wrap(err)
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p, err := DecodeRow(row)
		if err != nil {
			s.logger.Warn("skipping undecodable product row", zap.String("id", row.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return Product{}, producterrors.ErrProductNotFound
	}

	row, err := s.repo.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, producterrors.ErrProductNotFound
		}
		s.logger.Error("get product failed", zap.String("id", id), zap.Error(err))
		return Product{}, producterrors.ErrDataUnavailable.Wrap(err)
	}

	p, err := DecodeRow(row)
	if err != nil {
		s.logger.Error("product row failed to decode", zap.String("id", id), zap.Error(err))
		return Product{}, producterrors.ErrDataUnavailable.Wrap(err)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, in Input) (Product, error) {
	if err := ValidateInput(in); err != nil {
		return Product{}, err
	}

	row, err := s.repo.Create(ctx, toWriteParams(in, time.Time{}))
	if err != nil {
		s.logger.Error("create product failed", zap.String("name", in.Name), zap.Error(err))
		return Product{}, producterrors.ErrWriteFailed.Wrap(err)
	}

	p, err := DecodeRow(row)
	if err != nil {
		return Product{}, producterrors.ErrWriteFailed.Wrap(err)
	}
	s.logger.Info("product created", zap.String("id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, in Input) (Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return Product{}, producterrors.ErrProductNotFound
	}
	if err := ValidateInput(in); err != nil {
		return Product{}, err
	}

	var row Row
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.GetByID(ctx, pid); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return producterrors.ErrProductNotFound
			}
			return err
		}

		row, err = repo.Update(ctx, pid, toWriteParams(in, s.now().UTC()))
		return err
	})
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			return Product{}, err
		}
		s.logger.Error("update product failed", zap.String("id", id), zap.Error(err))
		return Product{}, producterrors.ErrWriteFailed.Wrap(err)
	}

	p, err := DecodeRow(row)
	if err != nil {
		return Product{}, producterrors.ErrWriteFailed.Wrap(err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return producterrors.ErrProductNotFound
	}

	if err := s.repo.Delete(ctx, pid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return producterrors.ErrProductNotFound
		}
		s.logger.Error("delete product failed", zap.String("id", id), zap.Error(err))
		return producterrors.ErrWriteFailed.Wrap(err)
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return Stats{}, producterrors.ErrDataUnavailable.Wrap(err)
	}

	stats := Stats{ByCategory: make(map[Category]int64, len(Categories))}
	for _, c := range Categories {
		stats.ByCategory[c] = counts[string(c)]
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func toWriteParams(in Input, updatedAt time.Time) WriteParams {
	category, _ := ParseCategory(string(in.Category))
	return WriteParams{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       helper.Float64ToDecimalExact(in.Price).StringFixed(2),
		Category:    string(category),
		Images:      helper.EmptyIfNil(in.Images),
		Sizes:       helper.EmptyIfNil(in.Sizes),
		Colors:      helper.EmptyIfNil(in.Colors),
		InStock:     in.InStock,
		IsFeatured:  in.IsFeatured,
		UpdatedAt:   updatedAt,
	}
}
