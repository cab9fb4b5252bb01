package database

// LogEntry is one submitted calorie record.
type LogEntry struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"column:name;not null" json:"name"`
	Calories int64   `gorm:"column:calories;not null" json:"calories"`
	Proof    *string `gorm:"column:proof" json:"proof"` // base64 image, optional
	Date     string  `gorm:"column:date;not null" json:"date"`
}

func (LogEntry) TableName() string { return "logs" }

// Meta is a key/value row. The only key in use is lastReset.
type Meta struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (Meta) TableName() string { return "meta" }

const lastResetKey = "lastReset"
