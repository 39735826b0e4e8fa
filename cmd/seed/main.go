package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/zeez-dotcom/laundryao-sub003/config"
	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds a synthetic order ledger so the forecast engine has history to
// train on in development.
// Usage: go run cmd/seed/main.go [-days 120] [-branches 3] [-seed 42]
// This is a standalone CLI tool, not part of the main application
func main() {
	days := flag.Int("days", 120, "how many trailing days of orders to generate")
	branches := flag.Int("branches", 3, "number of branches to spread orders across")
	seed := flag.Int64("seed", 42, "rng seed, fixed by default so reruns are comparable")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("LAUNDRYAO FORECAST - Demo Ledger Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	if err := config.LedgerGorm.AutoMigrate(&models.Order{}); err != nil {
		log.Fatalf("Failed to ensure orders table: %v", err)
	}
	log.Println("✓ Orders table ready")

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC()
	created := 0

	for dayOffset := *days; dayOffset > 0; dayOffset-- {
		day := now.AddDate(0, 0, -dayOffset)

		// Weekly demand shape: busy weekends, slow midweek, plus a mild
		// upward drift so the trend model has something to find.
		weekday := day.Weekday()
		base := 14.0
		if weekday == time.Saturday || weekday == time.Sunday {
			base = 22.0
		}
		drift := float64(*days-dayOffset) * 0.05
		count := int(base + drift + rng.Float64()*6)

		batch := make([]models.Order, 0, count)
		for i := 0; i < count; i++ {
			amount := 18 + rng.Float64()*60
			// A thin tail of large commercial orders feeds the highValue cohort.
			if rng.Float64() < 0.04 {
				amount = 500 + rng.Float64()*400
			}
			amount = math.Round(amount*100) / 100

			status := "completed"
			if rng.Float64() < 0.03 {
				status = "cancelled"
			}

			placedAt := day.Add(time.Duration(8+rng.Intn(12)) * time.Hour)
			batch = append(batch, models.Order{
				ID:                uuid.Must(uuid.NewV7()).String(),
				BranchID:          fmt.Sprintf("branch-%d", 1+rng.Intn(*branches)),
				CustomerID:        uuid.Must(uuid.NewV7()).String(),
				OrderNumber:       fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), i+1),
				TotalAmount:       amount,
				Status:            status,
				PackageCreditUsed: rng.Float64() < 0.25,
				CreatedAt:         placedAt,
				UpdatedAt:         placedAt,
			})
		}

		if err := config.LedgerGorm.Create(&batch).Error; err != nil {
			log.Fatalf("Failed to insert orders for %s: %v", day.Format("2006-01-02"), err)
		}
		created += len(batch)
	}

	log.Printf("✓ Seeded %d orders across %d days and %d branches", created, *days, *branches)
	fmt.Println()
	fmt.Println("Done. Trigger a run with POST /api/v1/admin/forecasts/run")
}
