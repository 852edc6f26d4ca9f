package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vetsoft/internal/domain/products"
	"vetsoft/internal/platform/apperror"
)

type ProductsRepo struct {
	db *DB
}

func NewProductsRepo(db *DB) *ProductsRepo {
	return &ProductsRepo{db: db}
}

func (r *ProductsRepo) Create(ctx context.Context, p products.Product) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO products (id, name, type, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Type, p.Price, p.Stock, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

func (r *ProductsRepo) Update(ctx context.Context, p products.Product) error {
	res, err := r.db.exec(ctx, `
		UPDATE products
		SET name = ?, type = ?, price = ?, stock = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Type, p.Price, p.Stock, p.UpdatedAt.UTC(), p.ID)
	if err != nil {
		return err
	}
	return expectRow(res, "product", p.ID)
}

func (r *ProductsRepo) GetByID(ctx context.Context, id int64) (products.Product, error) {
	row := r.db.queryRow(ctx, `
		SELECT id, name, type, price, stock, created_at, updated_at
		FROM products
		WHERE id = ?
	`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return products.Product{}, fmt.Errorf("product %d: %w", id, apperror.ErrNotFound)
	}
	return p, err
}

func (r *ProductsRepo) List(ctx context.Context) ([]products.Product, error) {
	rows, err := r.db.query(ctx, `
		SELECT id, name, type, price, stock, created_at, updated_at
		FROM products
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]products.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.exec(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "product", id)
}

func scanProduct(s scanner) (products.Product, error) {
	var p products.Product
	if err := s.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return products.Product{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
