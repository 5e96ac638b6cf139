package groceries

import "time"

// List is a shopping list for an event, shared with parents via a
// public read-only link.
type List struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	EventID   *int      `json:"event_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items"`
}

// Item is a single entry on a grocery list.
type Item struct {
	ID        int    `json:"id"`
	ListID    int    `json:"list_id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Purchased bool   `json:"purchased"`
}
