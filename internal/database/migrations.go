package database

import (
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

type listingIndex struct {
	model   any
	name    string
	columns string
}

// listingIndexes back the "owned by / contained in, newest first" queries.
var listingIndexes = []listingIndex{
	{&models.Project{}, "idx_projects_user_created", "user_id, created_at"},
	{&models.Task{}, "idx_tasks_project_created", "project_id, created_at"},
	{&models.Comment{}, "idx_comments_project_created", "project_id, created_at"},
}

// AddIndexes adds the composite listing indexes that struct tags do not
// express. Existing indexes are skipped, so it is safe to run on every start.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range listingIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			logger.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to resolve table for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info().Str("index", idx.name).Str("table", stmt.Schema.Table).Msg("created index")
	}

	return nil
}
