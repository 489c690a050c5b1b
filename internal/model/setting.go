package model

// Setting is a key/value row with upsert semantics. Values are stored
// as strings; lowStockThreshold is the one key parsed numerically.
type Setting struct {
	Key   string `gorm:"column:setting_key;type:varchar(100);primaryKey" json:"setting_key"`
	Value string `gorm:"column:setting_value;type:text;not null" json:"setting_value"`
}

// DefaultLowStockThreshold applies when the lowStockThreshold setting
// is absent or not numeric.
const DefaultLowStockThreshold = 10
