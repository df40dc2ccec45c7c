package notification

import "time"

// Notification types
const (
	TypeSessionRequest  = "session_request"
	TypeRequestApproved = "request_approved"
	TypeRequestRejected = "request_rejected"
)

type Notification struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	ReferenceID int       `json:"referenceId"`
	CreatedAt   time.Time `json:"createdAt"`
	IsRead      bool      `json:"isRead"`
}

// Partition splits notifications into unread and read, preserving order.
func Partition(all []Notification) (unread, read []Notification) {
	for _, n := range all {
		if n.IsRead {
			read = append(read, n)
		} else {
			unread = append(unread, n)
		}
	}
	return unread, read
}
