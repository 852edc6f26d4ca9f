package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/platform/apperror"
)

func TestClientRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	second := clients.Client{ID: 2, Name: "Ana", CreatedAt: base.Add(time.Hour)}
	first := clients.Client{ID: 1, Name: "Juan", CreatedAt: base}
	for _, c := range []clients.Client{second, first} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %d: %v", c.ID, err)
		}
	}

	if err := repo.Create(ctx, first); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("expected created_at order, got %+v", list)
	}

	first.Name = "Juan Carlos"
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, 1)
	if err != nil || got.Name != "Juan Carlos" {
		t.Fatalf("get after update: %+v %v", got, err)
	}

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, 1); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, 1); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := repo.Update(ctx, clients.Client{ID: 99}); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update of missing, got %v", err)
	}
}

func TestTableRejectsZeroID(t *testing.T) {
	repo := NewPetRepo()
	if err := repo.Create(context.Background(), pets.Pet{Name: "Firulais"}); err == nil {
		t.Fatalf("expected error for zero id")
	}
}

func TestTableConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = repo.Create(ctx, clients.Client{ID: id, CreatedAt: time.Now()})
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	list, _ := repo.List(ctx)
	if len(list) != 50 {
		t.Fatalf("expected 50 clients, got %d", len(list))
	}
}
