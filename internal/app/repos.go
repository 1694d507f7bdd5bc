package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/data/repos"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

type Repos struct {
	Activity repos.ActivityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Activity: repos.NewActivityRepo(db, log),
	}
}
