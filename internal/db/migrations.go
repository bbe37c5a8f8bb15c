// internal/db/migrations.go
package db

import (
	"fmt"

	"gorm.io/gorm"
)

// legacyRenames: колонки ip_entries из альтернативной раскладки (static_ip/machine).
var legacyRenames = []struct{ from, to string }{
	{"static_ip", "ip_address"},
	{"machine", "device_name"},
}

// MigrateLegacyColumns переименовывает колонки старой раскладки ip_entries.
// Безопасно вызывать повторно: если новая колонка уже есть, ничего не делает.
func MigrateLegacyColumns(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	m := db.Migrator()
	if !m.HasTable("ip_entries") {
		return nil
	}
	dialect := db.Dialector.Name()

	for _, rn := range legacyRenames {
		hasOld := m.HasColumn("ip_entries", rn.from)
		hasNew := m.HasColumn("ip_entries", rn.to)
		if !hasOld || hasNew {
			continue
		}
		if err := m.RenameColumn("ip_entries", rn.from, rn.to); err != nil {
			var e error
			switch dialect {
			case "mysql":
				e = db.Exec(fmt.Sprintf("ALTER TABLE `ip_entries` CHANGE COLUMN `%s` `%s` varchar(255)", rn.from, rn.to)).Error
			case "postgres":
				e = db.Exec(fmt.Sprintf(`ALTER TABLE "ip_entries" RENAME COLUMN "%s" TO "%s"`, rn.from, rn.to)).Error
			case "sqlite":
				e = db.Exec(fmt.Sprintf(`ALTER TABLE ip_entries RENAME COLUMN %s TO %s`, rn.from, rn.to)).Error
			default:
				e = err
			}
			if e != nil {
				return fmt.Errorf("rename ip_entries.%s -> %s: %w", rn.from, rn.to, e)
			}
		}
	}
	return nil
}
