package medicines

import "context"

type Repository interface {
	Create(ctx context.Context, m Medicine) error
	Update(ctx context.Context, m Medicine) error
	GetByID(ctx context.Context, id int64) (Medicine, error)
	List(ctx context.Context) ([]Medicine, error)
	Delete(ctx context.Context, id int64) error
}
