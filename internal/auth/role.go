package auth

// Role is the authorization claim carried by a session token.
// The portal has a single administrative role today; adding a second
// role is an additive change here and in the gate, not a rewrite.
type Role string

const (
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}
