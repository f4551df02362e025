package repo

import (
	"github.com/KNICEX/claude-console/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.ChatEntry{})
}
