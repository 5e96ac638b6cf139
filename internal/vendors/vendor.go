package vendors

import "time"

// Vendor is a supplier the committee has worked with before:
// a bus company, a pizza place, a magician for purim.
type Vendor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingIsValid allows 0 (unrated) or 1..5 stars.
func (v *Vendor) RatingIsValid() bool {
	return v.Rating >= 0 && v.Rating <= 5
}
