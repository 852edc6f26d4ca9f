package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vetsoft/internal/domain/clients"
	"vetsoft/internal/platform/apperror"
)

type ClientsRepo struct {
	db *DB
}

func NewClientsRepo(db *DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO clients (id, name, phone, email, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Phone, c.Email, c.Address, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	return err
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.exec(ctx, `
		UPDATE clients
		SET name = ?, phone = ?, email = ?, address = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, c.Phone, c.Email, c.Address, c.UpdatedAt.UTC(), c.ID)
	if err != nil {
		return err
	}
	return expectRow(res, "client", c.ID)
}

func (r *ClientsRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	row := r.db.queryRow(ctx, `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM clients
		WHERE id = ?
	`, id)

	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, fmt.Errorf("client %d: %w", id, apperror.ErrNotFound)
	}
	return c, err
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.db.query(ctx, `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM clients
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "client", id)
}

func scanClient(s scanner) (clients.Client, error) {
	var c clients.Client
	err := s.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return clients.Client{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
