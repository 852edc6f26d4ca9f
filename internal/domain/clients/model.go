package clients

import "time"

// Client es el dueño de las mascotas atendidas en la clínica.
type Client struct {
	ID int64

	Name    string
	Phone   string // sólo dígitos
	Email   string // siempre @vetsoft.com
	Address string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
