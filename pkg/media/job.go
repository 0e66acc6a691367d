package media

import (
	"context"

	"clipstream/pkg/helpers"
)

// ReleaseJob asks the media worker to delete the binary behind a stored URL.
// Best-effort: publishing failures are logged by the caller, never fatal, and
// a stale object in the bucket is preferable to blocking a video delete.
type ReleaseJob struct {
	URL    string `json:"url"`
	Reason string `json:"reason,omitempty"`
}

// PublishRelease enqueues a release job. A nil publisher is a no-op so the
// API can run without RabbitMQ in development.
func PublishRelease(ctx context.Context, pub *helpers.RabbitPublisher, job ReleaseJob) error {
	if pub == nil {
		return nil
	}
	return pub.PublishJSON(ctx, job)
}
