package models

import "time"

// Product is a catalog entry.
type Product struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Valor     float64   `json:"valor"`
	Categoria string    `json:"categoria"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bairro is a neighborhood with its delivery fee.
type Bairro struct {
	ID   string  `json:"id"`
	Nome string  `json:"nome"`
	Taxa float64 `json:"taxa"`
}

// Motoboy is a delivery courier.
type Motoboy struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Ativo    bool   `json:"ativo"`
}

// MotoboySession is one work shift of a courier. EndTime is nil while the
// session is open.
type MotoboySession struct {
	ID        string     `json:"id"`
	MotoboyID string     `json:"motoboy_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}
