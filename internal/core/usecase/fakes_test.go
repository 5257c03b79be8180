package usecase

import (
	"context"
	"errors"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// fakeListingStore - хранилище в памяти для тестов use case.
type fakeListingStore struct {
	listings []domain.RawListing

	resetErr error
	fetchErr error

	lastLoaded []domain.RawListing
	resetCalls int
}

func (f *fakeListingStore) ResetAndLoad(ctx context.Context, listings []domain.RawListing) (*domain.SnapshotStats, error) {
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	f.resetCalls++
	f.lastLoaded = listings
	f.listings = listings
	return &domain.SnapshotStats{Inserted: len(listings)}, nil
}

func (f *fakeListingStore) FetchAll(ctx context.Context) ([]domain.RawListing, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.listings, nil
}

// fakeModelRegistry - реестр артефактов в памяти.
type fakeModelRegistry struct {
	artifacts map[string][]byte

	uploadErr error
	loadErr   error
}

func newFakeModelRegistry() *fakeModelRegistry {
	return &fakeModelRegistry{artifacts: make(map[string][]byte)}
}

func (f *fakeModelRegistry) Upload(ctx context.Context, artifact []byte, versionTag string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if _, exists := f.artifacts[versionTag]; exists {
		return errors.New("artifact version already exists")
	}
	f.artifacts[versionTag] = artifact
	return nil
}

func (f *fakeModelRegistry) LoadLatest(ctx context.Context) ([]byte, string, error) {
	if f.loadErr != nil {
		return nil, "", f.loadErr
	}
	var latest string
	for tag := range f.artifacts {
		if tag > latest {
			latest = tag
		}
	}
	if latest == "" {
		return nil, "", domain.ErrNoArtifacts
	}
	return f.artifacts[latest], latest, nil
}

// fakeEventPublisher записывает опубликованные версии.
type fakeEventPublisher struct {
	published  []string
	publishErr error
}

func (f *fakeEventPublisher) ModelUploaded(ctx context.Context, versionTag string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, versionTag)
	return nil
}
