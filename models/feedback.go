package models

import "time"

// Feedback is a user message kept locally and optionally relayed by e-mail.
type Feedback struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"timestamp"`
}

// FeedbackMail is the message handed to a feedback relay.
type FeedbackMail struct {
	Subject   string
	Message   string
	UserEmail string
	Timestamp time.Time
}
