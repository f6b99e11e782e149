package model

// Result is one completed quiz run. Rows are append-only.
type Result struct {
	ID    uint  `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Score int   `gorm:"column:Score;not null" json:"score"`
	Total int   `gorm:"column:Total;not null" json:"total"`
	Level Level `gorm:"column:Level;type:text;not null" json:"level"`
	// ISO-8601 UTC timestamp, stored as text.
	CreatedAtUTC string `gorm:"column:CreatedAtUtc;type:text;not null" json:"created_at_utc"`
}

func (Result) TableName() string {
	return "Results"
}
