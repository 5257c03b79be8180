package usecases_port

import "context"

type ReloadModelUseCase interface {
	Reload(ctx context.Context) error
}
