package controllers

import (
	"github.com/nguyentoan1998/stockflowapp-sub002/database"
	"github.com/nguyentoan1998/stockflowapp-sub002/middlewares"
	"github.com/nguyentoan1998/stockflowapp-sub002/models"
	"github.com/nguyentoan1998/stockflowapp-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

// ---- Products

type productSpecificationInput struct {
	Name  string  `json:"name" validate:"required"`
	Cost  float64 `json:"cost" validate:"gte=0"`
	Price float64 `json:"price" validate:"gte=0"`
}

type productInput struct {
	Sku            string                      `json:"sku" validate:"required"`
	Name           string                      `json:"name" validate:"required"`
	Description    string                      `json:"description"`
	UnitId         uint                        `json:"unit_id" validate:"required"`
	Cost           float64                     `json:"cost" validate:"gte=0"`
	Price          float64                     `json:"price" validate:"gte=0"`
	Specifications []productSpecificationInput `json:"specifications"` // nested create
}

func CreateProduct(c *fiber.Ctx) error {
	var input productInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	specs := make([]models.ProductSpecification, 0, len(input.Specifications))
	for _, s := range input.Specifications {
		specs = append(specs, models.ProductSpecification{
			Name:  s.Name,
			Cost:  s.Cost,
			Price: s.Price,
		})
	}

	product := models.Product{
		Sku:            input.Sku,
		Name:           input.Name,
		Description:    input.Description,
		UnitId:         input.UnitId,
		Cost:           input.Cost,
		Price:          input.Price,
		Active:         true,
		Specifications: specs,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not create product", "error": err.Error()})
	}
	return c.Status(201).JSON(product)
}

func GetProducts(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var products []models.Product
	if err := database.DB.Preload("Specifications").Preload("Unit").
		Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list products", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"products": products, "message": "success"})
}

type productPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UnitId      *uint    `json:"unit_id"`
	Cost        *float64 `json:"cost"`
	Price       *float64 `json:"price"`
}

func UpdateProduct(c *fiber.Ctx) error {
	var patch productPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not update product", "error": err.Error()})
	}
	return c.JSON(product)
}

// ---- Units

func CreateUnit(c *fiber.Ctx) error {
	var unit models.Unit
	if err := middlewares.BindAndValidate(c, &unit); err != nil {
		return err
	}
	if err := database.DB.Create(&unit).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not create unit", "error": err.Error()})
	}
	return c.Status(201).JSON(unit)
}

func GetUnits(c *fiber.Ctx) error {
	var units []models.Unit
	if err := database.DB.Find(&units).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list units", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"units": units, "message": "success"})
}

// ---- Warehouses

func CreateWarehouse(c *fiber.Ctx) error {
	var warehouse models.Warehouse
	if err := middlewares.BindAndValidate(c, &warehouse); err != nil {
		return err
	}
	warehouse.Active = true
	if err := database.DB.Create(&warehouse).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not create warehouse", "error": err.Error()})
	}
	return c.Status(201).JSON(warehouse)
}

func GetWarehouses(c *fiber.Ctx) error {
	var warehouses []models.Warehouse
	if err := database.DB.Find(&warehouses).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list warehouses", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"warehouses": warehouses, "message": "success"})
}

func GetWarehouseStock(c *fiber.Ctx) error {
	var stocks []models.WarehouseStock
	if err := database.DB.Where("warehouse_id = ?", c.Params("id")).Find(&stocks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not read stock", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"stocks": stocks, "message": "success"})
}

// ---- Suppliers & customers

func CreateSupplier(c *fiber.Ctx) error {
	var supplier models.Supplier
	if err := middlewares.BindAndValidate(c, &supplier); err != nil {
		return err
	}
	supplier.Active = true
	if err := database.DB.Create(&supplier).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not create supplier", "error": err.Error()})
	}
	return c.Status(201).JSON(supplier)
}

func GetSuppliers(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := database.DB.Find(&suppliers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list suppliers", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"suppliers": suppliers, "message": "success"})
}

func CreateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := middlewares.BindAndValidate(c, &customer); err != nil {
		return err
	}
	customer.Active = true
	if err := database.DB.Create(&customer).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not create customer", "error": err.Error()})
	}
	return c.Status(201).JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	var customers []models.Customer
	if err := database.DB.Find(&customers).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not list customers", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"customers": customers, "message": "success"})
}

// GetMasterData returns the independent lists a document form loads at once:
// warehouses, products, and units. The queries have no cross-dependency.
func GetMasterData(c *fiber.Ctx) error {
	var (
		warehouses []models.Warehouse
		products   []models.Product
		units      []models.Unit
	)
	if err := database.DB.Find(&warehouses).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load master data", "error": err.Error()})
	}
	if err := database.DB.Preload("Specifications").Find(&products).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load master data", "error": err.Error()})
	}
	if err := database.DB.Find(&units).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load master data", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"warehouses": warehouses,
		"products":   products,
		"units":      units,
		"message":    "success",
	})
}
