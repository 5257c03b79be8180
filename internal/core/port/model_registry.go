package port

import "context"

// ModelRegistryPort — контракт версионированного хранилища артефактов модели.
type ModelRegistryPort interface {
	// Upload выгружает артефакт под новой версией. Прежние версии
	// никогда не перезаписываются.
	Upload(ctx context.Context, artifact []byte, versionTag string) error

	// LoadLatest возвращает самый свежий артефакт и его версию.
	// Если артефактов нет — domain.ErrNoArtifacts.
	LoadLatest(ctx context.Context) (artifact []byte, versionTag string, err error)
}
