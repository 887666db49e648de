package usuarios

import "context"

type Repository interface {
	Create(ctx context.Context, u Usuario) error
	GetByID(ctx context.Context, id string) (Usuario, error)
	GetByEmail(ctx context.Context, email string) (Usuario, error)
}
