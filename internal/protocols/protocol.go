package protocols

import "time"

// Protocol is the written record of a committee meeting.
type Protocol struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	MeetingDate time.Time `json:"meeting_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActionItem is a single follow-up extracted from a protocol body.
// DueHint is free text ("לפני חנוכה", "until Friday"), not a parsed date.
type ActionItem struct {
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
	DueHint  string `json:"due_hint"`
}
