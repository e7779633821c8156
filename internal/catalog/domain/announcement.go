package domain

import (
	"errors"
	"strings"
	"time"
)

// Announcement is a notice shown to quiz hosts on the admin dashboard.
type Announcement struct {
	ID        string
	Title     string
	Body      string
	Published bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the announcement for persistence.
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}
