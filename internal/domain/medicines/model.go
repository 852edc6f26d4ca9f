package medicines

import "time"

type Medicine struct {
	ID int64

	Name        string
	Description string
	Dose        int // 1..10

	CreatedAt time.Time
	UpdatedAt time.Time
}
