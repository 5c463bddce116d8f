package domain

// EmailJob is the JSON payload published to the outbound email queue. Actual
// delivery is handled by an external mail worker consuming the queue.
type EmailJob struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params,omitempty"`
}

// Email templates understood by the mail worker.
const (
	EmailTemplateVerifyAccount = "verify-account"
	EmailTemplatePasswordReset = "password-reset"
)
