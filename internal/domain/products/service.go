package products

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/idgen"
	"vetsoft/internal/platform/validation"
)

type Service struct {
	repo      Repository
	ids       idgen.Generator
	validator *validation.Validator
	now       func() time.Time
}

func NewService(repo Repository, ids idgen.Generator, v *validation.Validator) *Service {
	return &Service{
		repo:      repo,
		ids:       ids,
		validator: v,
		now:       time.Now,
	}
}

func (s *Service) Validate(ctx context.Context, data form.Values) validation.Errors {
	return Validate(ctx, s.validator, data)
}

func (s *Service) Save(ctx context.Context, data form.Values) (Product, error) {
	if errs := s.Validate(ctx, data); len(errs) > 0 {
		return Product{}, errs
	}

	f := FormFromValues(data)
	price, stock, err := parseNumbers(f.Price, f.Stock)
	if err != nil {
		return Product{}, err
	}

	now := s.now().UTC()
	p := Product{
		ID:        s.ids.NextID(),
		Name:      f.Name,
		Type:      f.Type,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, fmt.Errorf("products: create: %w", err)
	}
	return p, nil
}

// Update pisa sólo los campos que vinieron con valor; vacío = no tocar.
func (s *Service) Update(ctx context.Context, id int64, data form.Values) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}

	current := ToValues(p)
	merged := form.Values{
		"name":  data.Pick("name", current["name"]),
		"type":  data.Pick("type", current["type"]),
		"price": data.Pick("price", current["price"]),
		"stock": data.Pick("stock", current["stock"]),
	}
	if errs := validation.Partial(s.Validate(ctx, merged), data); len(errs) > 0 {
		return Product{}, errs
	}

	price, stock, err := parseNumbers(merged.Get("price"), merged.Get("stock"))
	if err != nil {
		return Product{}, err
	}

	p.Name = merged.Get("name")
	p.Type = merged.Get("type")
	if data.Present("price") {
		p.Price = price
	}
	if data.Present("stock") {
		p.Stock = stock
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Product{}, fmt.Errorf("products: update %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func parseNumbers(rawPrice, rawStock string) (float64, int, error) {
	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("products: price %q: %w", rawPrice, err)
	}
	stock, err := strconv.Atoi(rawStock)
	if err != nil {
		return 0, 0, fmt.Errorf("products: stock %q: %w", rawStock, err)
	}
	return price, stock, nil
}
