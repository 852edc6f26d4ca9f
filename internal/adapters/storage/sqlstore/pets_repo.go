package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vetsoft/internal/domain/pets"
	"vetsoft/internal/platform/apperror"
)

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO pets (id, name, breed, birthday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Breed, dateOnly(p.Birthday), p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.exec(ctx, `
		UPDATE pets
		SET name = ?, breed = ?, birthday = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Breed, dateOnly(p.Birthday), p.UpdatedAt.UTC(), p.ID)
	if err != nil {
		return err
	}
	return expectRow(res, "pet", p.ID)
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.queryRow(ctx, `
		SELECT id, name, breed, birthday, created_at, updated_at
		FROM pets
		WHERE id = ?
	`, id)

	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, fmt.Errorf("pet %d: %w", id, apperror.ErrNotFound)
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.query(ctx, `
		SELECT id, name, breed, birthday, created_at, updated_at
		FROM pets
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "pet", id)
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	if err := s.Scan(&p.ID, &p.Name, &p.Breed, &p.Birthday, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return pets.Pet{}, err
	}
	p.Birthday = dateOnly(p.Birthday)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
