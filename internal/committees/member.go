package committees

import "time"

// Member is a parent committee member, shown on the public contacts page.
type Member struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	RoleTitle string    `json:"role_title"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Building  string    `json:"building"`
	CreatedAt time.Time `json:"created_at"`
}
