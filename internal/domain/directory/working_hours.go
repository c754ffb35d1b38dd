package directory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/morabaat/backend/internal/domain/shared"
)

// WorkingHours is one day's schedule out of a company's fixed 7-row week.
// Times are plain "HH:MM" strings compared lexically; there is no timezone
// handling beyond the server's local clock.
type WorkingHours struct {
	shared.BaseEntity
	CompanyID uuid.UUID
	DayOfWeek int // 0 = Sunday .. 6 = Saturday
	OpenTime  string
	CloseTime string
	IsClosed  bool
}

// ValidTime checks an "HH:MM" string
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// NewWorkingHours creates one day row
func NewWorkingHours(companyID uuid.UUID, day int, open, close string, closed bool) (*WorkingHours, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Working hours require a company")
	}
	if day < 0 || day > 6 {
		return nil, shared.NewDomainError("INVALID_DAY", "Day of week must be 0-6")
	}
	if !closed {
		if !ValidTime(open) || !ValidTime(close) {
			return nil, shared.NewDomainError("INVALID_TIME", "Times must be HH:MM")
		}
	}
	return &WorkingHours{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		DayOfWeek:  day,
		OpenTime:   open,
		CloseTime:  close,
		IsClosed:   closed,
	}, nil
}

// DefaultWeek returns the default schedule for a company: Sunday through
// Thursday 09:00-17:00, Friday and Saturday closed.
func DefaultWeek(companyID uuid.UUID) []WorkingHours {
	week := make([]WorkingHours, 0, 7)
	for day := 0; day <= 6; day++ {
		closed := day == 5 || day == 6
		wh := WorkingHours{
			BaseEntity: shared.NewBaseEntity(),
			CompanyID:  companyID,
			DayOfWeek:  day,
			OpenTime:   "09:00",
			CloseTime:  "17:00",
			IsClosed:   closed,
		}
		week = append(week, wh)
	}
	return week
}

// IsOpenAt reports whether the day row covers the given clock time. Lexical
// comparison is enough for zero-padded HH:MM strings; close at or before open
// means closed for the day (overnight spans are not modelled).
func (w *WorkingHours) IsOpenAt(t time.Time) bool {
	if w.IsClosed {
		return false
	}
	if int(t.Weekday()) != w.DayOfWeek {
		return false
	}
	now := t.Format("15:04")
	return w.OpenTime <= now && now < w.CloseTime
}
