package models

// MailPayload is the unit of work queued for the mail worker.
type MailPayload struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}
