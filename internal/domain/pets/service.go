package pets

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
	return Validate(validation.WithNow(ctx, s.now()), s.validator, data)
}

func (s *Service) Save(ctx context.Context, data form.Values) (Pet, error) {
	if errs := s.Validate(ctx, data); len(errs) > 0 {
		return Pet{}, errs
	}

	f := FormFromValues(data)
	bday, err := parseDate(f.Birthday)
	if err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()
	p := Pet{
		ID:        s.ids.NextID(),
		Name:      f.Name,
		Breed:     f.Breed,
		Birthday:  bday,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("pets: create: %w", err)
	}
	return p, nil
}

// Update pisa sólo los campos que vinieron con valor; vacío = no tocar.
func (s *Service) Update(ctx context.Context, id int64, data form.Values) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	current := ToValues(p)
	merged := form.Values{
		"name":     data.Pick("name", current["name"]),
		"breed":    data.Pick("breed", current["breed"]),
		"birthday": data.Pick("birthday", current["birthday"]),
	}
	if errs := validation.Partial(s.Validate(ctx, merged), data); len(errs) > 0 {
		return Pet{}, errs
	}

	p.Name = merged.Get("name")
	p.Breed = merged.Get("breed")
	if data.Present("birthday") {
		bday, err := parseDate(merged.Get("birthday"))
		if err != nil {
			return Pet{}, err
		}
		p.Birthday = bday
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("pets: update %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(validation.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("pets: birthday %q: %w", raw, err)
	}
	return d, nil
}
