package memory

import (
	"time"

	"vetsoft/internal/domain/clients"
	"vetsoft/internal/domain/medicines"
	"vetsoft/internal/domain/pets"
	"vetsoft/internal/domain/products"
)

func NewClientRepo() clients.Repository {
	return newTable("client",
		func(c clients.Client) int64 { return c.ID },
		func(c clients.Client) time.Time { return c.CreatedAt },
	)
}

func NewPetRepo() pets.Repository {
	return newTable("pet",
		func(p pets.Pet) int64 { return p.ID },
		func(p pets.Pet) time.Time { return p.CreatedAt },
	)
}

func NewMedicineRepo() medicines.Repository {
	return newTable("medicine",
		func(m medicines.Medicine) int64 { return m.ID },
		func(m medicines.Medicine) time.Time { return m.CreatedAt },
	)
}

func NewProductRepo() products.Repository {
	return newTable("product",
		func(p products.Product) int64 { return p.ID },
		func(p products.Product) time.Time { return p.CreatedAt },
	)
}
