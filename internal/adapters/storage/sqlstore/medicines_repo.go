package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/platform/apperror"
)

type MedicinesRepo struct {
	db *DB
}

func NewMedicinesRepo(db *DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO medicines (id, name, description, dose, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Description, m.Dose, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
	return err
}

func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	res, err := r.db.exec(ctx, `
		UPDATE medicines
		SET name = ?, description = ?, dose = ?, updated_at = ?
		WHERE id = ?
	`, m.Name, m.Description, m.Dose, m.UpdatedAt.UTC(), m.ID)
	if err != nil {
		return err
	}
	return expectRow(res, "medicine", m.ID)
}

func (r *MedicinesRepo) GetByID(ctx context.Context, id int64) (medicines.Medicine, error) {
	row := r.db.queryRow(ctx, `
		SELECT id, name, description, dose, created_at, updated_at
		FROM medicines
		WHERE id = ?
	`, id)

	m, err := scanMedicine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medicines.Medicine{}, fmt.Errorf("medicine %d: %w", id, apperror.ErrNotFound)
	}
	return m, err
}

func (r *MedicinesRepo) List(ctx context.Context) ([]medicines.Medicine, error) {
	rows, err := r.db.query(ctx, `
		SELECT id, name, description, dose, created_at, updated_at
		FROM medicines
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicinesRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM medicines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "medicine", id)
}

func scanMedicine(s scanner) (medicines.Medicine, error) {
	var m medicines.Medicine
	if err := s.Scan(&m.ID, &m.Name, &m.Description, &m.Dose, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return medicines.Medicine{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}
