package medicines

import (
	"context"
	"errors"
	"testing"
	"time"

	"vetsoft/internal/platform/apperror"
	"vetsoft/internal/platform/form"
	"vetsoft/internal/platform/validation"
)

type testRepo struct {
	byID    map[int64]Medicine
	updates int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Medicine{}}
}

func (r *testRepo) Create(ctx context.Context, m Medicine) error {
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medicine) error {
	if _, ok := r.byID[m.ID]; !ok {
		return apperror.ErrNotFound
	}
	r.updates++
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Medicine, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medicine{}, apperror.ErrNotFound
	}
	return m, nil
}

func (r *testRepo) List(ctx context.Context) ([]Medicine, error) {
	out := make([]Medicine, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type seqIDs struct{ next int64 }

func (s *seqIDs) NextID() int64 {
	s.next++
	return s.next
}

func newTestService(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	v, err := validation.New()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	repo := newTestRepo()
	svc := NewService(repo, &seqIDs{}, v)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validValues() form.Values {
	return form.Values{
		"name":        "Paracetamol",
		"description": "Para el dolor",
		"dose":        "5",
	}
}

func TestSave_PersistsDoseAsInt(t *testing.T) {
	svc, repo := newTestService(t)

	m, err := svc.Save(context.Background(), validValues())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if m.ID != 1 || m.Dose != 5 || m.CreatedAt.IsZero() {
		t.Fatalf("unexpected medicine: %+v", m)
	}
	if stored := repo.byID[m.ID]; stored.Dose != 5 || stored.Name != "Paracetamol" {
		t.Fatalf("unexpected stored medicine: %+v", stored)
	}
}

func TestSave_InvalidDoseIsNotStored(t *testing.T) {
	svc, repo := newTestService(t)

	data := validValues()
	data["dose"] = "11"

	_, err := svc.Save(context.Background(), data)
	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs["dose"] != "La dosis debe ser entre 1 y 10" {
		t.Fatalf("expected dose validation error, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("invalid medicine must not be stored")
	}
}

func TestUpdate_ChangesSubmittedDose(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, validValues())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := svc.Update(ctx, m.ID, form.Values{"dose": "10"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Dose != 10 || updated.Name != "Paracetamol" {
		t.Fatalf("unexpected update: %+v", updated)
	}
}

func TestUpdate_EmptyDoseKeepsStoredDose(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, validValues())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := svc.Update(ctx, m.ID, form.Values{"name": "Ibuprofeno", "dose": ""})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Dose != 5 || updated.Name != "Ibuprofeno" || updated.Description != "Para el dolor" {
		t.Fatalf("empty dose must not change the record: %+v", updated)
	}
	if repo.byID[m.ID].Dose != 5 {
		t.Fatalf("stored dose changed: %+v", repo.byID[m.ID])
	}
}

func TestUpdate_InvalidDoseWritesNothing(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, validValues())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	for _, dose := range []string{"0", "11", "abc"} {
		_, err = svc.Update(ctx, m.ID, form.Values{"name": "Ibuprofeno", "dose": dose})
		var verrs validation.Errors
		if !errors.As(err, &verrs) || verrs["dose"] != "La dosis debe ser entre 1 y 10" {
			t.Fatalf("dose %q: expected validation error, got %v", dose, err)
		}
	}
	if repo.updates != 0 {
		t.Fatalf("expected no writes, got %d", repo.updates)
	}
	if stored := repo.byID[m.ID]; stored.Dose != 5 || stored.Name != "Paracetamol" {
		t.Fatalf("record must be untouched: %+v", stored)
	}
}

func TestUpdate_MissingMedicine(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 99, form.Values{"dose": "3"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	m, err := svc.Save(ctx, validValues())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected empty repo")
	}
	if _, err := svc.GetByID(ctx, m.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
