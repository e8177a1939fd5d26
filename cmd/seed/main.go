package main

import (
	"context"
	"log"
	"os"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/implementation"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

type seedRow struct {
	name      string
	brand     string
	category  string
	costPrice float64
	salePrice float64
	stock     int
}

// A small but realistic Argentine grocery catalog. Names include the
// brand so the first-word prefix search has something to bite on.
var catalogRows = []seedRow{
	{"Aceite Girasol Marolio", "Marolio", "Almacén", 320, 450, 48},
	{"Aceite Girasol Natura", "Natura", "Almacén", 380, 520, 36},
	{"Aceite Oliva Cocinero", "Cocinero", "Almacén", 890, 1200, 20},
	{"Fideos Tallarín Matarazzo", "Matarazzo", "Almacén", 210, 310, 60},
	{"Fideos Mostachol Lucchetti", "Lucchetti", "Almacén", 190, 280, 55},
	{"Arroz Largo Fino Gallo", "Gallo", "Almacén", 250, 370, 70},
	{"Harina 000 Pureza", "Pureza", "Almacén", 150, 230, 80},
	{"Salsa de Tomate Arcor", "Arcor", "Almacén", 180, 260, 45},
	{"Puré de Tomate Marolio", "Marolio", "Almacén", 160, 240, 50},
	{"Yerba Mate Taragüi", "Taragüi", "Almacén", 980, 1350, 40},
	{"Azúcar Ledesma", "Ledesma", "Almacén", 290, 410, 65},
	{"Leche Entera La Serenísima", "La Serenísima", "Lácteos", 340, 480, 30},
	{"Yogur Bebible Frutilla Ser", "Ser", "Lácteos", 280, 390, 24},
	{"Queso Cremoso La Paulina", "La Paulina", "Lácteos", 1450, 1980, 15},
	{"Manteca Sancor", "Sancor", "Lácteos", 420, 590, 28},
	{"Huevos Blancos x12", "Avícola del Sur", "Frescos", 640, 880, 32},
	{"Carne Picada Especial", "Carnicería Propia", "Frescos", 1800, 2450, 18},
	{"Pechuga de Pollo", "Avícola del Sur", "Frescos", 1500, 2100, 22},
	{"Tomate Perita", "Huerta Propia", "Verdulería", 280, 420, 40},
	{"Cebolla", "Huerta Propia", "Verdulería", 150, 240, 50},
	{"Albahaca Fresca", "Huerta Propia", "Verdulería", 200, 320, 12},
	{"Papa Negra", "Huerta Propia", "Verdulería", 180, 290, 60},
	{"Gaseosa Cola Manaos 2.25L", "Manaos", "Bebidas", 420, 600, 36},
	{"Agua Mineral Villavicencio 2L", "Villavicencio", "Bebidas", 310, 450, 42},
	{"Cerveza Quilmes Lata 473ml", "Quilmes", "Bebidas", 520, 750, 48},
	{"Vino Tinto Malbec Toro", "Toro", "Bebidas", 680, 950, 25},
	{"Galletitas Criollitas", "Bagley", "Kiosco", 240, 350, 55},
	{"Alfajor Guaymallén Triple", "Guaymallén", "Kiosco", 120, 180, 90},
	{"Detergente Magistral 500ml", "Magistral", "Limpieza", 540, 760, 30},
	{"Lavandina Ayudín 1L", "Ayudín", "Limpieza", 280, 400, 35},
	{"Jabón en Polvo Skip 800g", "Skip", "Limpieza", 980, 1350, 26},
}

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	productRepo := implementation.NewProductRepository(db)

	color.Cyan("Seeding grocery catalog (%d products)...", len(catalogRows))

	created, skipped := 0, 0
	for _, row := range catalogRows {
		existing, err := productRepo.FindOne(ctx, specification.Filter("products.name", row.name))
		if err != nil {
			color.Red("✗ %s: lookup failed: %v", row.name, err)
			continue
		}
		if existing != nil {
			color.Yellow("- %s already exists, skipping", row.name)
			skipped++
			continue
		}

		brand, err := productRepo.EnsureBrand(ctx, row.brand)
		if err != nil {
			color.Red("✗ %s: brand: %v", row.name, err)
			continue
		}
		category, err := productRepo.EnsureCategory(ctx, row.category)
		if err != nil {
			color.Red("✗ %s: category: %v", row.name, err)
			continue
		}

		product := &entity.Product{
			Name:      row.name,
			CostPrice: row.costPrice,
			SalePrice: row.salePrice,
			Stock:     row.stock,
		}
		if err := productRepo.Create(ctx, product, brand.Id, category.Id); err != nil {
			color.Red("✗ %s: %v", row.name, err)
			continue
		}
		color.Green("✓ %s ($%.2f, %s/%s)", row.name, row.salePrice, row.brand, row.category)
		created++
	}

	color.Cyan("Catalog seeding completed: %d created, %d skipped.", created, skipped)
}
