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

// PostgresMotoboyRepository implements MotoboyRepository using PostgreSQL.
type PostgresMotoboyRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresMotoboyRepository(db *sql.DB, logger *logging.Logger) *PostgresMotoboyRepository {
	return &PostgresMotoboyRepository{db: db, logger: logger}
}

func (r *PostgresMotoboyRepository) Create(ctx context.Context, m *models.Motoboy) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO motoboys (id, nome, telefone, ativo) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Nome, m.Telefone, m.Ativo,
	)
	return err
}

func (r *PostgresMotoboyRepository) GetByID(ctx context.Context, id string) (*models.Motoboy, error) {
	var m models.Motoboy
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome, telefone, ativo FROM motoboys WHERE id = $1`, id,
	).Scan(&m.ID, &m.Nome, &m.Telefone, &m.Ativo)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMotoboyRepository) Update(ctx context.Context, m *models.Motoboy) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE motoboys SET nome = $2, telefone = $3, ativo = $4 WHERE id = $1`,
		m.ID, m.Nome, m.Telefone, m.Ativo,
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (r *PostgresMotoboyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM motoboys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (r *PostgresMotoboyRepository) List(ctx context.Context) ([]*models.Motoboy, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nome, telefone, ativo FROM motoboys ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	motoboys := make([]*models.Motoboy, 0)
	for rows.Next() {
		var m models.Motoboy
		if err := rows.Scan(&m.ID, &m.Nome, &m.Telefone, &m.Ativo); err != nil {
			return nil, err
		}
		motoboys = append(motoboys, &m)
	}
	return motoboys, rows.Err()
}

// StartSession opens a work session for a courier. A courier has at most one
// open session at a time.
func (r *PostgresMotoboyRepository) StartSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error) {
	if existing, err := r.ActiveSession(ctx, motoboyID); err != nil && err != apperrors.ErrNotFound {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.NewValidationError("motoboy_id", "motoboy já possui uma sessão ativa")
	}

	session := &models.MotoboySession{
		ID:        uuid.NewString(),
		MotoboyID: motoboyID,
		StartTime: time.Now(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO motoboy_sessions (id, motoboy_id, start_time) VALUES ($1, $2, $3)`,
		session.ID, session.MotoboyID, session.StartTime,
	)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Motoboy session started", logging.Fields{
		"motoboy_id": motoboyID,
		"session_id": session.ID,
	})
	return session, nil
}

// EndSession closes the courier's open session and returns it.
func (r *PostgresMotoboyRepository) EndSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error) {
	now := time.Now()
	var session models.MotoboySession
	err := r.db.QueryRowContext(ctx, `
		UPDATE motoboy_sessions SET end_time = $2
		WHERE motoboy_id = $1 AND end_time IS NULL
		RETURNING id, motoboy_id, start_time, end_time`,
		motoboyID, now,
	).Scan(&session.ID, &session.MotoboyID, &session.StartTime, &session.EndTime)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("Motoboy session ended", logging.Fields{
		"motoboy_id": motoboyID,
		"session_id": session.ID,
	})
	return &session, nil
}

// ActiveSession returns the courier's open session, or ErrNotFound.
func (r *PostgresMotoboyRepository) ActiveSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error) {
	var session models.MotoboySession
	err := r.db.QueryRowContext(ctx, `
		SELECT id, motoboy_id, start_time, end_time
		FROM motoboy_sessions
		WHERE motoboy_id = $1 AND end_time IS NULL`,
		motoboyID,
	).Scan(&session.ID, &session.MotoboyID, &session.StartTime, &session.EndTime)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
