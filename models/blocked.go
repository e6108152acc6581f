package models

// BlockedSlot excludes a city/date (and optionally a single hour) from
// availability. An empty Time blocks the whole day.
type BlockedSlot struct {
	ID     int64  `db:"id" json:"id"`
	CityID int64  `db:"city_id" json:"cityId"`
	Date   string `db:"date" json:"date"` // "YYYY-MM-DD"
	Time   string `db:"time" json:"time,omitempty"`
	Reason string `db:"reason" json:"reason,omitempty"`
}
