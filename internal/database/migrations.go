package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/opsboard/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes the board queries depend on. It goes through
// the gorm migrator so the same code runs on mysql, postgres and sqlite.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		name    string
		columns string
	}{
		// Column listing: WHERE status = ? ORDER BY position, id
		{"idx_tasks_status_position", "status, position, id"},
		{"idx_tasks_due_date", "due_date"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(log.Fields{"index": idx.name, "columns": idx.columns}).Info("Created index")
	}

	return nil
}
