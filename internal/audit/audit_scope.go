package audit

import (
	"resto-admin/internal/shared/request"

	"gorm.io/gorm"
)

func byResource(resource string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if resource == "" {
			return db
		}
		return db.Where("resource = ?", resource)
	}
}

func byActor(actorID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actorID == "" {
			return db
		}
		return db.Where("actor_id = ?", actorID)
	}
}

func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(pageSize).Offset(request.Offset(page, pageSize))
	}
}
