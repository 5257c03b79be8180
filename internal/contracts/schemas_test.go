package contracts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateListingsSnapshotEvent(t *testing.T) {
	body := []byte(`{
		"snapshot_id": "run-2026-08-29",
		"scraped_at": "2026-08-29T03:00:00Z",
		"source": "immoscout24",
		"listings": [
			{"rooms": "3.5 Zimmer", "size": "75 m²", "price": "CHF 1250.–", "location": "8001 Zürich"}
		]
	}`)
	require.NoError(t, ValidateEvent("ListingsSnapshotEvent", "1.0.0", body))
}

func TestValidateListingsSnapshotEventMissingField(t *testing.T) {
	body := []byte(`{
		"snapshot_id": "run-2026-08-29",
		"listings": []
	}`)
	require.Error(t, ValidateEvent("ListingsSnapshotEvent", "1.0.0", body))
}

func TestValidateListingsSnapshotEventIncompleteListing(t *testing.T) {
	body := []byte(`{
		"snapshot_id": "run-2026-08-29",
		"scraped_at": "2026-08-29T03:00:00Z",
		"listings": [
			{"rooms": "3.5 Zimmer"}
		]
	}`)
	require.Error(t, ValidateEvent("ListingsSnapshotEvent", "1.0.0", body))
}

func TestValidateModelUploadedEvent(t *testing.T) {
	body := []byte(`{"version_tag": "20260829T120000", "uploaded_at": "2026-08-29T12:00:05Z"}`)
	require.NoError(t, ValidateEvent("ModelUploadedEvent", "1.0.0", body))
}

func TestValidateModelUploadedEventEmptyTag(t *testing.T) {
	body := []byte(`{"version_tag": "", "uploaded_at": "2026-08-29T12:00:05Z"}`)
	require.Error(t, ValidateEvent("ModelUploadedEvent", "1.0.0", body))
}

func TestValidateUnknownEvent(t *testing.T) {
	require.Error(t, ValidateEvent("UnknownEvent", "1.0.0", []byte(`{}`)))
}

func TestValidateInvalidJSON(t *testing.T) {
	require.Error(t, ValidateEvent("ModelUploadedEvent", "1.0.0", []byte("{broken")))
}
