package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyentoan1998/stockflowapp-sub002/controllers"
	"github.com/nguyentoan1998/stockflowapp-sub002/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard before any handler runs
	protected.Use(middlewares.Idempotency())

	// Master data
	protected.Get("/masters", controllers.GetMasterData)
	protected.Post("/product", controllers.CreateProduct)
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/products/:id", controllers.UpdateProduct)
	protected.Post("/unit", controllers.CreateUnit)
	protected.Get("/units", controllers.GetUnits)
	protected.Post("/warehouse", controllers.CreateWarehouse)
	protected.Get("/warehouses", controllers.GetWarehouses)
	protected.Get("/warehouses/:id/stock", controllers.GetWarehouseStock)
	protected.Post("/supplier", controllers.CreateSupplier)
	protected.Get("/suppliers", controllers.GetSuppliers)
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)

	// Purchase orders
	protected.Post("/purchase-order", controllers.CreatePurchaseOrder)
	protected.Get("/purchase-orders", controllers.GetPurchaseOrders)
	protected.Get("/purchase-orders/:id", controllers.GetPurchaseOrder)
	protected.Put("/purchase-orders/:id", controllers.UpdatePurchaseOrder)
	protected.Delete("/purchase-orders/:id", controllers.DeletePurchaseOrder)
	protected.Put("/purchase-orders/:id/confirm", controllers.ConfirmPurchaseOrder)
	protected.Put("/purchase-orders/:id/reject", controllers.RejectPurchaseOrder)
	protected.Put("/purchase-orders/:id/cancel", controllers.CancelPurchaseOrder)

	// Purchase receives
	protected.Post("/purchase-receive", controllers.CreatePurchaseReceive)
	protected.Get("/purchase-receives", controllers.GetPurchaseReceives)
	protected.Put("/purchase-receives/:id/complete", controllers.CompletePurchaseReceive)
	protected.Put("/purchase-receives/:id/cancel", controllers.CancelPurchaseReceive)
	protected.Delete("/purchase-receives/:id", controllers.DeletePurchaseReceive)

	// Sales orders
	protected.Post("/sales-order", controllers.CreateSalesOrder)
	protected.Get("/sales-orders", controllers.GetSalesOrders)
	protected.Get("/sales-orders/:id", controllers.GetSalesOrder)
	protected.Put("/sales-orders/:id", controllers.UpdateSalesOrder)
	protected.Delete("/sales-orders/:id", controllers.DeleteSalesOrder)
	protected.Put("/sales-orders/:id/confirm", controllers.ConfirmSalesOrder)
	protected.Put("/sales-orders/:id/reject", controllers.RejectSalesOrder)
	protected.Put("/sales-orders/:id/cancel", controllers.CancelSalesOrder)

	// Deliveries
	protected.Post("/delivery", controllers.CreateDelivery)
	protected.Get("/deliveries", controllers.GetDeliveries)
	protected.Put("/deliveries/:id/confirm", controllers.ConfirmDelivery)
	protected.Put("/deliveries/:id/complete", controllers.CompleteDelivery)
	protected.Put("/deliveries/:id/cancel", controllers.CancelDelivery)
	protected.Delete("/deliveries/:id", controllers.DeleteDelivery)

	// Inventory transactions (warehouse transfers)
	protected.Post("/inventory-transaction", controllers.CreateInventoryTransaction)
	protected.Get("/inventory-transactions", controllers.GetInventoryTransactions)
	protected.Get("/inventory-transactions/:id", controllers.GetInventoryTransaction)
	protected.Put("/inventory-transactions/:id", controllers.UpdateInventoryTransaction)
	protected.Put("/inventory-transactions/:id/submit", controllers.SubmitInventoryTransaction)
	protected.Put("/inventory-transactions/:id/approve", controllers.ApproveInventoryTransaction)
	protected.Put("/inventory-transactions/:id/reject", controllers.RejectInventoryTransaction)
	protected.Put("/inventory-transactions/:id/cancel", controllers.CancelInventoryTransaction)
	protected.Put("/inventory-transactions/:id/complete", controllers.CompleteInventoryTransaction)
	protected.Delete("/inventory-transactions/:id", controllers.DeleteInventoryTransaction)

	// Warranties
	protected.Post("/warranty", controllers.CreateWarranty)
	protected.Get("/warranties", controllers.GetWarranties)
	protected.Get("/warranties/:id", controllers.GetWarranty)
	protected.Put("/warranties/:id", controllers.UpdateWarranty)
	protected.Put("/warranties/:id/confirm", controllers.ConfirmWarranty)
	protected.Put("/warranties/:id/complete", controllers.CompleteWarranty)
	protected.Put("/warranties/:id/reject", controllers.RejectWarranty)
	protected.Put("/warranties/:id/cancel", controllers.CancelWarranty)
	protected.Delete("/warranties/:id", controllers.DeleteWarranty)

	// Return orders
	protected.Post("/return-order", controllers.CreateReturnOrder)
	protected.Get("/return-orders", controllers.GetReturnOrders)
	protected.Put("/return-orders/:id/confirm", controllers.ConfirmReturnOrder)
	protected.Put("/return-orders/:id/reject", controllers.RejectReturnOrder)
	protected.Put("/return-orders/:id/cancel", controllers.CancelReturnOrder)
	protected.Put("/return-orders/:id/complete", controllers.CompleteReturnOrder)
	protected.Delete("/return-orders/:id", controllers.DeleteReturnOrder)
}
