// Package notify holds transient user-facing notifications and broadcasts
// list snapshots to subscribers.
package notify

import "time"

// Category represents the severity of a notification.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryError   Category = "error"
	CategoryInfo    Category = "info"
	CategoryWarning Category = "warning"
)

// DefaultTTL is the visibility window applied by the convenience helpers
// for non-error notifications. Zero TTL means the notification persists
// until dismissed.
const DefaultTTL = 5 * time.Second

// Notification is a single transient message. Immutable once created; the
// store owns every instance and hands out copies.
type Notification struct {
	ID        uint64
	Category  Category
	Message   string
	TTL       time.Duration
	CreatedAt time.Time
}

// Expires reports whether the notification auto-dismisses.
func (n Notification) Expires() bool {
	return n.TTL > 0
}
