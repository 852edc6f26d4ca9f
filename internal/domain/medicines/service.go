package medicines

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

func (s *Service) Save(ctx context.Context, data form.Values) (Medicine, error) {
	if errs := s.Validate(ctx, data); len(errs) > 0 {
		return Medicine{}, errs
	}

	f := FormFromValues(data)
	dose, err := strconv.Atoi(f.Dose)
	if err != nil {
		return Medicine{}, fmt.Errorf("medicines: dose %q: %w", f.Dose, err)
	}

	now := s.now().UTC()
	m := Medicine{
		ID:          s.ids.NextID(),
		Name:        f.Name,
		Description: f.Description,
		Dose:        dose,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, fmt.Errorf("medicines: create: %w", err)
	}
	return m, nil
}

// Update pisa sólo los campos que vinieron con valor; vacío = no tocar.
func (s *Service) Update(ctx context.Context, id int64, data form.Values) (Medicine, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Medicine{}, err
	}

	current := ToValues(m)
	merged := form.Values{
		"name":        data.Pick("name", current["name"]),
		"description": data.Pick("description", current["description"]),
		"dose":        data.Pick("dose", current["dose"]),
	}
	if errs := validation.Partial(s.Validate(ctx, merged), data); len(errs) > 0 {
		return Medicine{}, errs
	}

	m.Name = merged.Get("name")
	m.Description = merged.Get("description")
	if data.Present("dose") {
		dose, err := strconv.Atoi(merged.Get("dose"))
		if err != nil {
			return Medicine{}, fmt.Errorf("medicines: dose: %w", err)
		}
		m.Dose = dose
	}
	m.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medicine{}, fmt.Errorf("medicines: update %d: %w", id, err)
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Medicine, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Medicine, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
