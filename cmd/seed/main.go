package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"seatsense/internal/shared/config"
	"seatsense/internal/shared/database"
	"seatsense/internal/venues"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting SeatSense Database Seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{"seats", "venues"}
	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll inserts a demo venue with a three-section seat map
func (s *Seeder) SeedAll() error {
	repo := venues.NewRepository(s.db.GetPostgreSQL())

	stageX, stageY := 500.0, 65.0
	venue := &venues.Venue{
		Name:   "Grand Hall",
		StageX: &stageX,
		StageY: &stageY,
		Seats:  buildSeatMap(),
	}

	if err := repo.Create(context.Background(), venue); err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	fmt.Printf("   Created venue %s (%s) with %d seats\n", venue.Name, venue.ID, len(venue.Seats))
	return nil
}

// buildSeatMap lays out three sections in front-to-back order. Section A sits
// closest to the stage and costs the most; section C is cheapest and carries a
// few seats behind a pillar.
func buildSeatMap() []venues.Seat {
	type sectionSpec struct {
		name      string
		rows      int
		perRow    int
		baseY     float64
		basePrice float64
	}

	specs := []sectionSpec{
		{name: "A", rows: 3, perRow: 10, baseY: 140, basePrice: 180},
		{name: "B", rows: 4, perRow: 12, baseY: 280, basePrice: 110},
		{name: "C", rows: 4, perRow: 12, baseY: 460, basePrice: 55},
	}

	var seats []venues.Seat
	for _, spec := range specs {
		for row := 1; row <= spec.rows; row++ {
			for num := 1; num <= spec.perRow; num++ {
				price := spec.basePrice - float64(row-1)*5
				seat := venues.Seat{
					Section:    spec.name,
					Row:        fmt.Sprintf("%d", row),
					SeatNumber: fmt.Sprintf("%d", num),
					Price:      &price,
					X:          200 + float64(num-1)*float64(600/spec.perRow),
					Y:          spec.baseY + float64(row-1)*35,
					Status:     venues.SeatStatusAvailable,
				}

				if num == 1 || num == spec.perRow {
					seat.Tags = "aisle"
				}

				// Pillar shadow in the back corner
				if spec.name == "C" && row >= 3 && num <= 2 {
					if seat.Tags != "" {
						seat.Tags += ",obstructed"
					} else {
						seat.Tags = "obstructed"
					}
				}

				// A few sold seats keep availability realistic
				if (row+num)%7 == 0 {
					seat.Status = venues.SeatStatusSold
				}

				seats = append(seats, seat)
			}
		}
	}
	return seats
}
