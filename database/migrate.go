package database

import (
	"fmt"

	"github.com/nguyentoan1998/stockflowapp-sub002/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/tagged indexes)
// - Helpful composite indexes
// - Basic CHECK constraints for quantities and prices
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Unit{},
			&models.Product{},
			&models.ProductSpecification{},
			&models.Warehouse{},
			&models.WarehouseStock{},
			&models.Supplier{},
			&models.Customer{},
			&models.PurchaseOrder{},
			&models.PurchaseOrderItem{},
			&models.PurchaseReceive{},
			&models.PurchaseReceiveItem{},
			&models.SalesOrder{},
			&models.SalesOrderItem{},
			&models.Delivery{},
			&models.DeliveryItem{},
			&models.InventoryTransaction{},
			&models.InventoryTransactionLog{},
			&models.Warranty{},
			&models.WarrantyItem{},
			&models.ReturnOrder{},
			&models.ReturnOrderItem{},
			&models.StatusEvent{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_status_events_doc ON status_events (document_type, document_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
			`CREATE INDEX IF NOT EXISTS idx_purchase_order_items_order ON purchase_order_items (purchase_order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sales_order_items_order ON sales_order_items (sales_order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_inventory_transaction_logs_tx ON inventory_transaction_logs (transaction_id)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []struct {
			table, name, expr string
		}{
			{"purchase_order_items", "chk_po_items_quantity_pos", "quantity > 0"},
			{"purchase_order_items", "chk_po_items_cost_nonneg", "cost >= 0"},
			{"sales_order_items", "chk_so_items_quantity_pos", "quantity > 0"},
			{"sales_order_items", "chk_so_items_price_nonneg", "unit_price >= 0"},
			{"inventory_transaction_logs", "chk_itx_logs_quantity_pos", "quantity > 0"},
			{"warehouse_stocks", "chk_stock_quantity_nonneg", "quantity >= 0"},
			{"inventory_transactions", "chk_itx_distinct_warehouses", "source_warehouse_id <> destination_warehouse_id"},
		}
		for _, c := range checks {
			stmt := fmt.Sprintf(`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = '%s'::regclass
					  AND conname  = '%s'
				) THEN
					ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
				END IF;
			END $$;`, c.table, c.name, c.table, c.name, c.expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
