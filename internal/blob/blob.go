// Package blob defines the port to the external image/blob store.
// The core only ever handles blob URLs; uploads and raw image bytes are
// the frontend's business. The one operation the backend needs is
// best-effort deletion, used to compensate when an expense write fails
// after its receipt image was already uploaded.
package blob

import (
	"context"
	"fmt"
	"net/http"
)

// Store is the interface to the blob backend.
type Store interface {
	// Delete removes the blob behind the given URL.
	Delete(ctx context.Context, url string) error
}

// HTTPStore deletes blobs by issuing a DELETE request to the blob URL,
// which is how the managed storage backend exposes removal.
type HTTPStore struct {
	client *http.Client
}

// NewHTTPStore creates an HTTPStore. A nil client uses http.DefaultClient.
func NewHTTPStore(client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{client: client}
}

// Delete issues a DELETE to the blob URL.
func (s *HTTPStore) Delete(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("blob delete returned status %d", resp.StatusCode)
	}
	return nil
}
