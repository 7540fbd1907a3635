package dto

// NotificationEvent is published to the mail topic whenever a
// notification is persisted. The mail worker consumes it and attempts
// a best-effort email; the persisted notification stays the source of
// truth either way.
type NotificationEvent struct {
	Recipient string `json:"recipient"`
	Email     string `json:"email"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}
