package migrations

import (
	"fmt"

	"gorm.io/gorm"

	customerspg "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/persistence/postgres"
	orderspg "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/adapters/persistence/postgres"
	returnspg "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/persistence/postgres"
)

// Run applies the schema for every bounded context in dependency order.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	steps := []struct {
		name    string
		migrate func(*gorm.DB) error
	}{
		{name: "customers", migrate: customerspg.Migrate},
		{name: "orders", migrate: orderspg.Migrate},
		{name: "returns", migrate: returnspg.Migrate},
	}
	for _, step := range steps {
		if err := step.migrate(db); err != nil {
			return fmt.Errorf("migrate %s: %w", step.name, err)
		}
	}
	return nil
}
