package database

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableColumns returns the column names of table in declaration order.
func TableColumns(db *gorm.DB, table string) ([]string, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	var columns []string
	if db.Dialector.Name() == DriverSQLite {
		type pragmaColumn struct {
			Cid  int
			Name string
		}
		var cols []pragmaColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&cols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
		for _, c := range cols {
			columns = append(columns, c.Name)
		}
	} else {
		err := db.Raw("SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position", table).
			Scan(&columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns or does not exist", table)
	}
	return columns, nil
}
