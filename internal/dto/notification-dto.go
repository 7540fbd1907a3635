package dto

type NotificationResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

type NotificationFeedResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int64                  `json:"unread"`
}

// MarkReadRequest with a nil ID means "mark everything for this
// recipient".
type MarkReadRequest struct {
	ID *uint `json:"id,omitempty"`
}
