// File: internal/prayer/model.go
package prayer

import (
	"fmt"
	"time"

	"iqamah_backend/internal/common"
	"iqamah_backend/internal/user"

	"github.com/google/uuid"
)

// Name identifies one of the five daily prayers.
type Name string

const (
	Fajr    Name = "FAJR"
	Dhuhr   Name = "DHUHR"
	Asr     Name = "ASR"
	Maghrib Name = "MAGHRIB"
	Isha    Name = "ISHA"
)

// CanonicalNames lists the five daily prayers in their fixed daily order.
var CanonicalNames = []Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

// Type records how a prayer was performed.
type Type string

const (
	Jammat Type = "JAMMAT" // with congregation
	Alone  Type = "ALONE"
	Qazah  Type = "QAZAH" // made up later
	Missed Type = "MISSED"
)

// Prayer represents one logged prayer status: at most one record per user,
// prayer name and calendar day.
type Prayer struct {
	common.BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_prayer_date,priority:1" json:"userId"`
	User       *user.User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PrayerName Name       `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_prayer_date,priority:2" json:"prayerName"`
	PrayerType Type       `gorm:"type:varchar(20);not null" json:"prayerType"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_user_prayer_date,priority:3" json:"date"`
}

// TableName specifies the table name for the Prayer model.
func (Prayer) TableName() string {
	return "prayers"
}

// NormalizeDate truncates a timestamp to its UTC calendar day. Every date
// that enters the prayers table or a query against it goes through here.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a request date. Date-only form is preferred; a full
// RFC3339 timestamp is accepted and truncated to its UTC day.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return NormalizeDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return NormalizeDate(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", value)
}

// --- DTOs ---

// CreateRequest is the payload for logging a prayer status.
type CreateRequest struct {
	PrayerName Name   `json:"prayerName" binding:"required,oneof=FAJR DHUHR ASR MAGHRIB ISHA"`
	PrayerType Type   `json:"prayerType" binding:"required,oneof=JAMMAT ALONE QAZAH MISSED"`
	Date       string `json:"date" binding:"required"`
}

// UpdateRequest changes the type of an existing record. Prayer name and
// date are immutable after creation.
type UpdateRequest struct {
	PrayerType Type `json:"prayerType" binding:"required,oneof=JAMMAT ALONE QAZAH MISSED"`
}

// ListQuery holds filters for listing prayers.
type ListQuery struct {
	Date  *time.Time
	Page  int
	Limit int
}

// DayEntry is one row of the synthesized per-day view: always present for
// each of the five prayers, with nil ID and type when nothing was recorded.
type DayEntry struct {
	ID         *uuid.UUID `json:"id"`
	PrayerName Name       `json:"prayerName"`
	PrayerType *Type      `json:"prayerType"`
	Date       time.Time  `json:"date"`
}

// Stats maps each prayer type to its record count. Types with no records
// are absent; callers default missing keys to zero.
type Stats map[Type]int64
