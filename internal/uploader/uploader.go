package uploader

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tenantli-inspect/internal/repository"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FileUpload is one file queued by the wizard. Content is held in memory so
// a failed attempt can be replayed from the start; files go up one at a time
// so only one buffer is alive at once.
type FileUpload struct {
	Name    string
	Content []byte
	Note    string
}

// UploadFailure records one file that exhausted its retries. Failures are
// reported in aggregate after the whole batch; they never abort it.
type UploadFailure struct {
	Name string
	Err  error
}

// Uploader pushes wizard files to the backend sequentially, one file at a
// time, to bound memory and keep per-file retry simple. A room save that
// preceded an upload is never rolled back on upload failure.
type Uploader struct {
	http   *resty.Client
	policy repository.ResiliencePolicy
	logger *zap.Logger
}

// New creates an uploader with its own HTTP client: retries are driven by
// the resilience policy loop below, not by client-level retry, so the
// backoff schedule stays exactly `attempt` seconds.
func New(baseURL string, policy repository.ResiliencePolicy, logger *zap.Logger) *Uploader {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(policy.Timeout).
		SetRetryCount(0)

	return &Uploader{
		http:   client,
		policy: policy,
		logger: logger,
	}
}

// UploadRoomPhotos uploads a batch of room photos. Returns the number of
// files that succeeded plus one UploadFailure per file that did not; partial
// success is explicit, not hidden.
func (u *Uploader) UploadRoomPhotos(ctx context.Context, propertyID, roomID string, files []FileUpload) (int, []UploadFailure) {
	endpoint := fmt.Sprintf("/api/photos/upload-room/%s/%s", propertyID, roomID)

	succeeded := 0
	var failures []UploadFailure
	for _, file := range files {
		file := file
		err := u.withRetry(ctx, file.Name, func(attemptCtx context.Context) error {
			resp, err := u.http.R().
				SetContext(attemptCtx).
				SetFileReader("photo", file.Name, bytes.NewReader(file.Content)).
				SetFormData(map[string]string{
					"note":        file.Note,
					"property_id": propertyID,
					"room_id":     roomID,
				}).
				Post(endpoint)
			if err != nil {
				return err
			}
			if !resp.IsSuccess() {
				return fmt.Errorf("upload rejected with status %d", resp.StatusCode())
			}
			return nil
		})
		if err != nil {
			failures = append(failures, UploadFailure{Name: file.Name, Err: err})
			continue
		}
		succeeded++
	}

	if len(failures) > 0 {
		u.logger.Warn("Photo batch finished with failures",
			zap.String("property_id", propertyID),
			zap.String("room_id", roomID),
			zap.Int("succeeded", succeeded),
			zap.Int("failed", len(failures)),
		)
	}
	return succeeded, failures
}

// UploadDocument uploads one lease/landlord document through the same retry
// loop as photos.
func (u *Uploader) UploadDocument(ctx context.Context, propertyID, kind string, file FileUpload) error {
	endpoint := fmt.Sprintf("/api/documents/upload/%s", propertyID)

	return u.withRetry(ctx, file.Name, func(attemptCtx context.Context) error {
		resp, err := u.http.R().
			SetContext(attemptCtx).
			SetFileReader("document", file.Name, bytes.NewReader(file.Content)).
			SetFormData(map[string]string{
				"kind":        kind,
				"property_id": propertyID,
			}).
			Post(endpoint)
		if err != nil {
			return err
		}
		if !resp.IsSuccess() {
			return fmt.Errorf("upload rejected with status %d", resp.StatusCode())
		}
		return nil
	})
}

// withRetry runs one upload with bounded retry: policy.Retries attempts,
// linear backoff (`attempt * policy.Backoff` after the nth failure).
func (u *Uploader) withRetry(ctx context.Context, name string, do func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= u.policy.Retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, u.policy.Timeout)
		lastErr = do(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}

		u.logger.Warn("Upload attempt failed",
			zap.String("file", name),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		if attempt == u.policy.Retries {
			break
		}
		select {
		case <-time.After(time.Duration(attempt) * u.policy.Backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", u.policy.Retries, lastErr)
}
