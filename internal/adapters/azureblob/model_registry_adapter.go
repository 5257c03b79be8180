package azureblob

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/laraAkg/immoscout-project/internal/constants"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
)

// ModelRegistryAdapter хранит артефакты моделей в Azure Blob Storage.
// Имена блобов: immoscout-model-<version>.json, где version лексикографически
// возрастает, поэтому "последний" артефакт = блоб с максимальным именем.
type ModelRegistryAdapter struct {
	client          *azblob.Client
	container       string
	downloadRetries int
	retryBackoff    time.Duration
}

// Config - параметры подключения к хранилищу артефактов.
type Config struct {
	ConnectionString string
	Container        string
	DownloadRetries  int
	RetryBackoff     time.Duration
}

// NewModelRegistryAdapter создает адаптер и гарантирует существование контейнера.
func NewModelRegistryAdapter(ctx context.Context, cfg Config) (*ModelRegistryAdapter, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	container := cfg.Container
	if container == "" {
		container = constants.DefaultBlobContainer
	}

	_, err = client.CreateContainer(ctx, container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", container, err)
	}

	retries := cfg.DownloadRetries
	if retries <= 0 {
		retries = 5
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 2 * time.Second
	}

	return &ModelRegistryAdapter{
		client:          client,
		container:       container,
		downloadRetries: retries,
		retryBackoff:    backoff,
	}, nil
}

func blobName(versionTag string) string {
	return constants.BlobNamePrefix + versionTag + constants.BlobNameSuffix
}

// Upload сохраняет артефакт под новой версией.
// Условие If-None-Match: * запрещает перезапись существующего блоба.
func (a *ModelRegistryAdapter) Upload(ctx context.Context, artifact []byte, versionTag string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	name := blobName(versionTag)

	etagAny := azcore.ETagAny
	opts := &azblob.UploadBufferOptions{
		AccessConditions: &blob.AccessConditions{
			ModifiedAccessConditions: &blob.ModifiedAccessConditions{
				IfNoneMatch: &etagAny,
			},
		},
	}

	_, err := a.client.UploadBuffer(ctx, a.container, name, artifact, opts)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobAlreadyExists) {
			return fmt.Errorf("artifact version %s already exists: %w", versionTag, err)
		}
		return fmt.Errorf("failed to upload artifact %s: %w", name, err)
	}

	logger.Info("Model artifact uploaded", port.Fields{
		"container": a.container,
		"blob":      name,
		"size":      len(artifact),
	})
	return nil
}

// LoadLatest находит артефакт с максимальной версией и скачивает его
// с ограниченным числом повторов.
func (a *ModelRegistryAdapter) LoadLatest(ctx context.Context) ([]byte, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	latest, err := a.latestBlobName(ctx)
	if err != nil {
		return nil, "", err
	}

	var lastErr error
	for attempt := 1; attempt <= a.downloadRetries; attempt++ {
		resp, err := a.client.DownloadStream(ctx, a.container, latest, nil)
		if err == nil {
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr == nil {
				version := strings.TrimSuffix(strings.TrimPrefix(latest, constants.BlobNamePrefix), constants.BlobNameSuffix)
				return data, version, nil
			}
			err = readErr
		}
		lastErr = err
		logger.Warn("Artifact download failed, retrying", port.Fields{
			"blob":    latest,
			"attempt": attempt,
			"error":   err.Error(),
		})

		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(a.retryBackoff * time.Duration(attempt)):
		}
	}

	return nil, "", fmt.Errorf("failed to download artifact %s after %d attempts: %w", latest, a.downloadRetries, lastErr)
}

// latestBlobName возвращает имя блоба с максимальной версией.
func (a *ModelRegistryAdapter) latestBlobName(ctx context.Context) (string, error) {
	prefix := constants.BlobNamePrefix
	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})

	var latest string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list artifacts: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			if *item.Name > latest {
				latest = *item.Name
			}
		}
	}

	if latest == "" {
		return "", domain.ErrNoArtifacts
	}
	return latest, nil
}
