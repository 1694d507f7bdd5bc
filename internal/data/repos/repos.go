package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/data/repos/study"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

type ActivityRepo = study.ActivityRepo

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return study.NewActivityRepo(db, baseLog)
}
