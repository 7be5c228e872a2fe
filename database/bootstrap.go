// database/bootstrap.go
package database

import (
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/er-knight/leetcodedaily/entities"
)

// Open opens the sqlite catalog at path, upgrades databases written by the
// legacy scraper and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// run before AutoMigrate so existing rows are already in the UTC layout
	if err := migrateLegacyTimestamps(db); err != nil {
		return nil, fmt.Errorf("migrate legacy timestamps: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.Problem{},
		&entities.InclusionRecord{},
		&entities.ScheduleRun{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// OpenSQLite is Open for main packages: any failure is fatal.
func OpenSQLite(path string, log *zap.Logger) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatal("open database", zap.String("path", path), zap.Error(err))
	}
	return db
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// legacyTimestampColumns are the columns the legacy scraper wrote as naive
// "YYYY-MM-DD HH:MM:SS.ffffff" text. Those values were UTC.
var legacyTimestampColumns = map[string]string{
	"problems":      "last_included",
	"problem_dates": "included_at",
}

// migrateLegacyTimestamps appends an explicit +00:00 offset to naive timestamps
// so lexical comparisons against driver-written values stay correct.
func migrateLegacyTimestamps(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for table, column := range legacyTimestampColumns {
			var name string
			if err := tx.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name).Error; err != nil {
				return fmt.Errorf("check table %s: %w", table, err)
			}
			if name == "" {
				// fresh DB
				continue
			}
			if !tx.Migrator().HasColumn(table, column) {
				continue
			}
			c := column
			stmt := fmt.Sprintf(`UPDATE %s SET %s = %s || '+00:00'
WHERE typeof(%s) = 'text'
  AND substr(%s, 1, 19) GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9] [0-9][0-9]:[0-9][0-9]:[0-9][0-9]'
  AND (length(%s) = 19 OR (substr(%s, 20, 1) = '.' AND substr(%s, 21) NOT GLOB '*[^0-9]*'))`,
				table, c, c, c, c, c, c, c)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("normalize %s.%s: %w", table, column, err)
			}
		}
		return nil
	})
}
