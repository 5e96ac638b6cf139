package feedback

import "time"

// Language can be one of:
//   - he
//   - ru
type Language string

const (
	LanguageHebrew  Language = "he"
	LanguageRussian Language = "ru"
)

func (l Language) IsValid() bool {
	switch l {
	case LanguageHebrew, LanguageRussian:
		return true
	default:
		return false
	}
}

// Feedback is an anonymous message from a parent. No author is stored
// on purpose.
type Feedback struct {
	ID        int       `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}
