package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/logger"
	"shareit/internal/models"

	"github.com/google/uuid"
)

var (
	userCount    = flag.Int("users", 20, "Number of users to generate")
	itemsPerUser = flag.Int("items", 3, "Maximum number of items per user")
	clearData    = flag.Bool("clear", false, "Clear existing data before seeding")
	dryRun       = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

var itemNames = []string{
	"Дрель", "Перфоратор", "Шуруповерт", "Лобзик", "Велосипед",
	"Палатка", "Спальник", "Проектор", "Штатив", "Гитара",
	"Лестница", "Пылесос", "Газонокосилка", "Самокат", "Швейная машинка",
}

type DataSeeder struct {
	db  *database.DB
	rng *rand.Rand
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting data seeder...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &DataSeeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := seeder.Seed(); err != nil {
		slog.Error("Failed to seed data", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *DataSeeder) Seed() error {
	if *dryRun {
		slog.Info("[DRY RUN] Would generate data",
			"users", *userCount, "max_items_per_user", *itemsPerUser)
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if *clearData {
		if err := s.clearExisting(tx); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	userIDs, err := s.seedUsers(tx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	itemsByOwner, err := s.seedItems(tx, userIDs)
	if err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}

	bookings, err := s.seedBookings(tx, userIDs, itemsByOwner)
	if err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Seeded data", "users", len(userIDs), "bookings", bookings)
	return nil
}

func (s *DataSeeder) clearExisting(tx *sql.Tx) error {
	// Order matters because of foreign keys.
	for _, table := range []string{"comments", "bookings", "items", "requests", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	slog.Info("Cleared existing data")
	return nil
}

func (s *DataSeeder) seedUsers(tx *sql.Tx) ([]int64, error) {
	ids := make([]int64, 0, *userCount)

	for i := 0; i < *userCount; i++ {
		email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
		name := fmt.Sprintf("Пользователь %d", i+1)

		var id int64
		err := tx.QueryRow(
			"INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id",
			name, email,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

type seededItem struct {
	id      int64
	ownerID int64
}

func (s *DataSeeder) seedItems(tx *sql.Tx, userIDs []int64) ([]seededItem, error) {
	var items []seededItem

	for _, ownerID := range userIDs {
		count := s.rng.Intn(*itemsPerUser + 1)
		for i := 0; i < count; i++ {
			name := itemNames[s.rng.Intn(len(itemNames))]
			description := fmt.Sprintf("%s в хорошем состоянии", name)
			available := s.rng.Intn(10) > 1

			var id int64
			err := tx.QueryRow(
				"INSERT INTO items (owner_id, name, description, available) VALUES ($1, $2, $3, $4) RETURNING id",
				ownerID, name, description, available,
			).Scan(&id)
			if err != nil {
				return nil, err
			}
			items = append(items, seededItem{id: id, ownerID: ownerID})
		}
	}

	return items, nil
}

func (s *DataSeeder) seedBookings(tx *sql.Tx, userIDs []int64, items []seededItem) (int, error) {
	if len(items) == 0 || len(userIDs) < 2 {
		return 0, nil
	}

	statuses := []models.BookingStatus{
		models.StatusWaiting, models.StatusApproved, models.StatusRejected,
	}

	created := 0
	for _, item := range items {
		count := s.rng.Intn(3)
		for i := 0; i < count; i++ {
			bookerID := userIDs[s.rng.Intn(len(userIDs))]
			if bookerID == item.ownerID {
				continue
			}

			// Spread bookings across past and future so temporal
			// filters have something to return.
			offset := time.Duration(s.rng.Intn(336)-168) * time.Hour
			start := time.Now().Add(offset)
			end := start.Add(time.Duration(s.rng.Intn(48)+1) * time.Hour)
			status := statuses[s.rng.Intn(len(statuses))]

			_, err := tx.Exec(
				"INSERT INTO bookings (item_id, booker_id, start_date, end_date, status) VALUES ($1, $2, $3, $4, $5)",
				item.id, bookerID, start, end, status,
			)
			if err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}
