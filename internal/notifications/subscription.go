package notifications

import "time"

// Subscription is a browser push subscription, stored as sent by the
// frontend service worker. Keys are opaque to the server.
type Subscription struct {
	ID        string    `json:"id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

// Announcement is the payload fanned out to all subscription endpoints.
type Announcement struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}
