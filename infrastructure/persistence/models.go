package persistence

import "time"

// RepositoryModel is the GORM row for a browsable repository.
type RepositoryModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Name            string    `gorm:"column:name;uniqueIndex;not null"`
	Path            string    `gorm:"column:path;not null"`
	URLPattern      string    `gorm:"column:url_pattern"`
	DefaultRevision string    `gorm:"column:default_revision;not null;default:HEAD"`
	Favorite        bool      `gorm:"column:favorite;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (RepositoryModel) TableName() string { return "repositories" }
