// Package seed ensures the demo schema exists and holds the fixed sample rows.
//
// The original services ran a read-check-then-insert on every request, which
// races under concurrent cold starts and can double-insert the sample data.
// This version keeps the on-every-request contract but closes the race: the
// count check and insert run inside one transaction that holds a Postgres
// advisory lock, and a process-level flag skips the work after the first
// successful run.
package seed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/whoismarios/sa-gateway-demo/internal/database"
	"github.com/whoismarios/sa-gateway-demo/internal/middleware"
	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"gorm.io/gorm"
)

// seedLockID keys the Postgres advisory lock serializing concurrent seeders.
const seedLockID = 722_100_143

// SampleUsers returns the fixed, deterministic user seed set.
func SampleUsers() []models.User {
	return []models.User{
		{Name: "Max Mustermann", Email: "max@example.com"},
		{Name: "Anna Schmidt", Email: "anna@example.com"},
		{Name: "Tom Weber", Email: "tom@example.com"},
		{Name: "Lisa Müller", Email: "lisa@example.com"},
		{Name: "Paul Fischer", Email: "paul@example.com"},
		{Name: "Sarah Wagner", Email: "sarah@example.com"},
		{Name: "Michael Schulz", Email: "michael@example.com"},
		{Name: "Julia Becker", Email: "julia@example.com"},
	}
}

// sampleOrders builds the fixed order seed set against the created users. The
// index pairs are 1-based user positions from the original sample data.
func sampleOrders(users []models.User) []models.Order {
	rows := []struct {
		user     int
		product  string
		quantity int
	}{
		{1, "Laptop", 1},
		{1, "Mouse", 2},
		{2, "Keyboard", 1},
		{2, "Monitor", 1},
		{3, "Headphones", 1},
		{4, "USB Cable", 5},
		{5, "Webcam", 1},
		{6, "Tablet", 1},
		{7, "Printer", 1},
		{8, "Speakers", 2},
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, models.Order{
			UserID:   users[row.user-1].ID,
			Product:  row.product,
			Quantity: row.quantity,
		})
	}
	return orders
}

// Initializer ensures schema and seed data exist for one database handle.
type Initializer struct {
	db   *gorm.DB
	mu   sync.Mutex
	done bool
}

// NewInitializer returns an Initializer bound to the given database.
func NewInitializer(db *gorm.DB) *Initializer {
	return &Initializer{db: db}
}

// Ensure creates the users and orders tables if absent and inserts the sample
// rows when the tables are empty. It is invoked on every request and is
// idempotent; after the first successful run it is a no-op for this process.
func (i *Initializer) Ensure(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.done {
		return nil
	}

	if err := i.db.WithContext(ctx).AutoMigrate(database.PersistentModels()...); err != nil {
		return models.NewDatabaseError(err)
	}

	seeded := false
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent first-requests across processes. SQLite (used
		// in tests) has no advisory locks; its writer lock covers the gap.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockID).Error; err != nil {
				return err
			}
		}

		var userCount int64
		if err := tx.Model(&models.User{}).Count(&userCount).Error; err != nil {
			return err
		}

		users := SampleUsers()
		if userCount == 0 {
			if err := tx.Create(&users).Error; err != nil {
				return err
			}
			seeded = true
		} else {
			if err := tx.Order("id").Limit(len(users)).Find(&users).Error; err != nil {
				return err
			}
		}

		var orderCount int64
		if err := tx.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			return err
		}
		if orderCount == 0 && len(users) >= 8 {
			orders := sampleOrders(users)
			if err := tx.Create(&orders).Error; err != nil {
				return err
			}
			seeded = true
		}
		return nil
	})
	if err != nil {
		middleware.SeedRuns.WithLabelValues("error").Inc()
		return models.NewDatabaseError(err)
	}

	if seeded {
		middleware.SeedRuns.WithLabelValues("seeded").Inc()
		middleware.Logger.Info("Seeded sample data",
			slog.Int("users", len(SampleUsers())),
		)
	} else {
		middleware.SeedRuns.WithLabelValues("noop").Inc()
	}

	i.done = true
	return nil
}
