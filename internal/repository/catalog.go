package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// PostgresProductRepository implements ProductRepository using PostgreSQL.
type PostgresProductRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logging.Logger) *PostgresProductRepository {
	return &PostgresProductRepository{db: db, logger: logger}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, nome, valor, categoria, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Nome, p.Valor, p.Categoria, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product", logging.Fields{
			"nome":  p.Nome,
			"error": err.Error(),
		})
	}
	return err
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, nome, valor, categoria, created_at, updated_at
		FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Nome, &p.Valor, &p.Categoria, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE products SET nome = $2, valor = $3, categoria = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Nome, p.Valor, p.Categoria, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRows(result)
}

// List retrieves products, optionally filtered by a case-insensitive name
// search, ordered by name.
func (r *PostgresProductRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Product, int, error) {
	baseQuery := ` FROM products`
	args := make([]interface{}, 0)
	if search != "" {
		args = append(args, "%"+search+"%")
		baseQuery += ` WHERE nome ILIKE $1`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := "SELECT id, nome, valor, categoria, created_at, updated_at" + baseQuery
	if search != "" {
		query += " ORDER BY nome LIMIT $2 OFFSET $3"
	} else {
		query += " ORDER BY nome LIMIT $1 OFFSET $2"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Nome, &p.Valor, &p.Categoria, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, &p)
	}
	return products, total, rows.Err()
}

// PostgresBairroRepository implements BairroRepository using PostgreSQL.
type PostgresBairroRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresBairroRepository(db *sql.DB, logger *logging.Logger) *PostgresBairroRepository {
	return &PostgresBairroRepository{db: db, logger: logger}
}

func (r *PostgresBairroRepository) Create(ctx context.Context, b *models.Bairro) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bairros (id, nome, taxa) VALUES ($1, $2, $3)`,
		b.ID, b.Nome, b.Taxa,
	)
	return err
}

// GetByNome resolves a neighborhood and its delivery fee by name.
func (r *PostgresBairroRepository) GetByNome(ctx context.Context, nome string) (*models.Bairro, error) {
	var b models.Bairro
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome, taxa FROM bairros WHERE nome = $1`, nome,
	).Scan(&b.ID, &b.Nome, &b.Taxa)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBairroRepository) Update(ctx context.Context, b *models.Bairro) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bairros SET nome = $2, taxa = $3 WHERE id = $1`,
		b.ID, b.Nome, b.Taxa,
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (r *PostgresBairroRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bairros WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (r *PostgresBairroRepository) List(ctx context.Context) ([]*models.Bairro, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nome, taxa FROM bairros ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bairros := make([]*models.Bairro, 0)
	for rows.Next() {
		var b models.Bairro
		if err := rows.Scan(&b.ID, &b.Nome, &b.Taxa); err != nil {
			return nil, err
		}
		bairros = append(bairros, &b)
	}
	return bairros, rows.Err()
}
