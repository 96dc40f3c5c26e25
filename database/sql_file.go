package database

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/yeremiapane/table-orders/utils"
)

// ExecuteSQLFile runs every ";"-terminated statement of the file at path in one
// transaction. Lines starting with "--" are comments.
func ExecuteSQLFile(db *gorm.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sql file: %w", err)
	}

	statements := splitStatements(string(content))
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("statement %q: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error executing %s: %v", path, err)
		return err
	}

	utils.InfoLogger.Printf("Executed %d statements from %s", len(statements), path)
	return nil
}

func splitStatements(sql string) []string {
	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	var statements []string
	for _, stmt := range strings.Split(b.String(), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}
