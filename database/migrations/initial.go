package migrations

import (
	"gorm.io/gorm"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/pkg/migration"
	"github.com/anandicecream/storefront/pkg/queue"
)

func init() {
	migration.Register("20260115000000_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260115000001_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0001: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0002: failed_jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
