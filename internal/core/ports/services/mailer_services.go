package services

import (
	"context"

	"github.com/velorashop/velora_backend/internal/core/domain"
)

// MailerSvc publishes outbound email jobs for the external mail worker.
type MailerSvc interface {
	// Send enqueues one email job. Failures are surfaced, never retried.
	Send(ctx context.Context, job domain.EmailJob) error
}
