package clients

import (
	"context"
	"fmt"
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

// Save valida y crea. Si hay errores de validación vuelven como validation.Errors.
func (s *Service) Save(ctx context.Context, data form.Values) (Client, error) {
	if errs := s.Validate(ctx, data); len(errs) > 0 {
		return Client{}, errs
	}

	f := FormFromValues(data)
	now := s.now().UTC()
	c := Client{
		ID:        s.ids.NextID(),
		Name:      f.Name,
		Phone:     f.Phone,
		Email:     f.Email,
		Address:   f.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, fmt.Errorf("clients: create: %w", err)
	}
	return c, nil
}

// Update pisa sólo los campos que vinieron con valor; vacío = no tocar.
func (s *Service) Update(ctx context.Context, id int64, data form.Values) (Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	merged := form.Values{
		"name":    data.Pick("name", c.Name),
		"phone":   data.Pick("phone", c.Phone),
		"email":   data.Pick("email", c.Email),
		"address": data.Pick("address", c.Address),
	}
	if errs := validation.Partial(s.Validate(ctx, merged), data); len(errs) > 0 {
		return Client{}, errs
	}

	c.Name = merged.Get("name")
	c.Phone = merged.Get("phone")
	c.Email = merged.Get("email")
	c.Address = merged.Get("address")
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, fmt.Errorf("clients: update %d: %w", id, err)
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
