package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// PostgresComandaRepository implements ComandaRepository using PostgreSQL.
type PostgresComandaRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresComandaRepository creates a new PostgreSQL comanda repository.
func NewPostgresComandaRepository(db *sql.DB, logger *logging.Logger) *PostgresComandaRepository {
	return &PostgresComandaRepository{
		db:     db,
		logger: logger,
	}
}

const comandaColumns = `
	id, cliente, endereco, bairro, taxa_entrega, subtotal, total,
	forma_pagamento, quantiapaga, troco, valor_cartao, valor_dinheiro,
	valor_pix, pago, status, motoboy_id, gateway_checkout_id, itens,
	created_at, updated_at
`

// Create inserts a new comanda. The caller is responsible for having run
// settlement validation; totals are stored as computed.
func (r *PostgresComandaRepository) Create(ctx context.Context, c *models.Comanda) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = models.StatusPendente
	}

	itensJSON, err := json.Marshal(c.Itens)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO comandas (` + comandaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20)
	`

	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.Cliente, c.Endereco, c.Bairro, c.TaxaEntrega, c.Subtotal, c.Total,
		string(c.FormaPagamento), nullFloat(c.QuantiaPaga), nullFloat(c.Troco),
		c.ValorCartao, c.ValorDinheiro, c.ValorPix, c.Pago, string(c.Status),
		nullString(c.MotoboyID), nullString(c.GatewayCheckoutID), itensJSON,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create comanda", logging.Fields{
			"comanda_id": c.ID,
			"error":      err.Error(),
		})
		return err
	}

	r.logger.Info("Comanda created", logging.Fields{
		"comanda_id": c.ID,
		"total":      c.Total,
		"forma":      c.FormaPagamento,
	})
	return nil
}

// GetByID retrieves a comanda by its identifier.
func (r *PostgresComandaRepository) GetByID(ctx context.Context, id string) (*models.Comanda, error) {
	query := `SELECT ` + comandaColumns + ` FROM comandas WHERE id = $1 AND deleted_at IS NULL`

	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanComanda(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch comanda", logging.Fields{
			"comanda_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return c, nil
}

// Update rewrites a comanda's editable fields, including the full payment
// breakdown. Status, pago and motoboy assignment have dedicated updates.
func (r *PostgresComandaRepository) Update(ctx context.Context, c *models.Comanda) error {
	itensJSON, err := json.Marshal(c.Itens)
	if err != nil {
		return err
	}
	c.UpdatedAt = time.Now()

	query := `
		UPDATE comandas SET
			cliente = $2, endereco = $3, bairro = $4, taxa_entrega = $5,
			subtotal = $6, total = $7, forma_pagamento = $8, quantiapaga = $9,
			troco = $10, valor_cartao = $11, valor_dinheiro = $12,
			valor_pix = $13, itens = $14, updated_at = $15
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		c.ID, c.Cliente, c.Endereco, c.Bairro, c.TaxaEntrega,
		c.Subtotal, c.Total, string(c.FormaPagamento), nullFloat(c.QuantiaPaga),
		nullFloat(c.Troco), c.ValorCartao, c.ValorDinheiro, c.ValorPix,
		itensJSON, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update comanda", logging.Fields{
			"comanda_id": c.ID,
			"error":      err.Error(),
		})
		return err
	}
	return requireRows(result)
}

// UpdateStatus moves a comanda to a new status and returns the fresh row.
func (r *PostgresComandaRepository) UpdateStatus(ctx context.Context, id string, status models.ComandaStatus) (*models.Comanda, error) {
	query := `
		UPDATE comandas SET status = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var returned string
	err := r.db.QueryRowContext(ctx, query, id, string(status), time.Now()).Scan(&returned)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("Comanda status updated", logging.Fields{
		"comanda_id": id,
		"status":     status,
	})
	return r.GetByID(ctx, id)
}

// SetPago toggles the independent paid flag.
func (r *PostgresComandaRepository) SetPago(ctx context.Context, id string, pago bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comandas SET pago = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, pago, time.Now(),
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

// SetMotoboy assigns the comanda to a courier.
func (r *PostgresComandaRepository) SetMotoboy(ctx context.Context, id, motoboyID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comandas SET motoboy_id = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, motoboyID, time.Now(),
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

// SetGatewayCheckoutID records the payment-gateway checkout created for a
// storefront comanda.
func (r *PostgresComandaRepository) SetGatewayCheckoutID(ctx context.Context, id, checkoutID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comandas SET gateway_checkout_id = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, checkoutID, time.Now(),
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

// List retrieves comandas matching the filter, most recent first.
func (r *PostgresComandaRepository) List(ctx context.Context, filter *models.ComandaFilter) ([]*models.Comanda, int, error) {
	baseQuery := ` FROM comandas WHERE deleted_at IS NULL`
	args := make([]interface{}, 0)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		baseQuery += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.MotoboyID != "" {
		args = append(args, filter.MotoboyID)
		baseQuery += fmt.Sprintf(" AND motoboy_id = $%d", len(args))
	}
	if filter.Pago != nil {
		args = append(args, *filter.Pago)
		baseQuery += fmt.Sprintf(" AND pago = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	selectQuery := fmt.Sprintf(
		"SELECT %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		comandaColumns, baseQuery, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comandas := make([]*models.Comanda, 0)
	for rows.Next() {
		c, err := scanComanda(rows)
		if err != nil {
			return nil, 0, err
		}
		comandas = append(comandas, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return comandas, total, nil
}

// ListByMotoboy returns a courier's deliveries, optionally restricted to
// those created during the given work session.
func (r *PostgresComandaRepository) ListByMotoboy(ctx context.Context, motoboyID string, session *models.MotoboySession) ([]*models.Comanda, error) {
	query := `SELECT ` + comandaColumns + `
		FROM comandas
		WHERE deleted_at IS NULL AND motoboy_id = $1`
	args := []interface{}{motoboyID}

	if session != nil {
		args = append(args, session.StartTime)
		query += fmt.Sprintf(" AND updated_at >= $%d", len(args))
		if session.EndTime != nil {
			args = append(args, *session.EndTime)
			query += fmt.Sprintf(" AND updated_at <= $%d", len(args))
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comandas := make([]*models.Comanda, 0)
	for rows.Next() {
		c, err := scanComanda(rows)
		if err != nil {
			return nil, err
		}
		comandas = append(comandas, c)
	}
	return comandas, rows.Err()
}

// Delete soft-deletes a comanda.
func (r *PostgresComandaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comandas SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to delete comanda", logging.Fields{
			"comanda_id": id,
			"error":      err.Error(),
		})
		return err
	}
	return requireRows(result)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComanda(row rowScanner) (*models.Comanda, error) {
	var c models.Comanda
	var itensJSON []byte
	var forma, status string
	var quantiaPaga, troco sql.NullFloat64
	var motoboyID, checkoutID sql.NullString

	err := row.Scan(
		&c.ID, &c.Cliente, &c.Endereco, &c.Bairro, &c.TaxaEntrega,
		&c.Subtotal, &c.Total, &forma, &quantiaPaga, &troco,
		&c.ValorCartao, &c.ValorDinheiro, &c.ValorPix, &c.Pago, &status,
		&motoboyID, &checkoutID, &itensJSON, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itensJSON, &c.Itens); err != nil {
		return nil, err
	}

	c.FormaPagamento = models.PaymentMethod(forma)
	c.Status = models.ComandaStatus(status)
	if quantiaPaga.Valid {
		c.QuantiaPaga = &quantiaPaga.Float64
	}
	if troco.Valid {
		c.Troco = &troco.Float64
	}
	if motoboyID.Valid {
		c.MotoboyID = &motoboyID.String
	}
	if checkoutID.Valid {
		c.GatewayCheckoutID = &checkoutID.String
	}

	return &c, nil
}

func requireRows(result sql.Result) error {
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
