package pets

import "time"

// Pet es una mascota atendida en la clínica.
type Pet struct {
	ID int64

	Name     string
	Breed    string
	Birthday time.Time // sólo fecha, UTC

	CreatedAt time.Time
	UpdatedAt time.Time
}
