package events

import "time"

// Event is a community event organized by the parent committee, with the
// title kept in both portal languages.
type Event struct {
	ID           int       `json:"id"`
	TitleHe      string    `json:"title_he"`
	TitleRu      string    `json:"title_ru"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartsAt     time.Time `json:"starts_at"`
	BudgetAgorot int       `json:"budget_agorot"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *Event) HasTitle() bool {
	return e.TitleHe != "" || e.TitleRu != ""
}
