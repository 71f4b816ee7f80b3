package models

// ReminderPayload is the queued payload for a session reminder task.
type ReminderPayload struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
