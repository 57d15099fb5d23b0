// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/warehouse-backend/internal/config"
	"github.com/your-org/warehouse-backend/internal/domain/document"
	"github.com/your-org/warehouse-backend/internal/domain/user"
	"github.com/your-org/warehouse-backend/internal/domain/warehouse"
	"github.com/your-org/warehouse-backend/internal/domain/wave"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	config *config.Config
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, cfg *config.Config) *Migration {
	return &Migration{
		db:     db,
		config: cfg,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// User domain - Base tables
		&user.User{},

		// Warehouse catalog
		&warehouse.Stock{},
		&warehouse.Zone{},
		&warehouse.Place{},
		&warehouse.Item{},
		&warehouse.PlaceItem{},

		// Wave domain - Dependent tables
		&wave.Wave{},
		&wave.WaveItem{},
		&wave.WaveSequence{},
		&wave.WaveStatusHistory{},

		// Document domain
		&document.Document{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_username_active ON users(username, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_items_part_number ON items(part_number)",
		"CREATE INDEX IF NOT EXISTS idx_places_name ON places(name)",
		"CREATE INDEX IF NOT EXISTS idx_place_items_place ON place_items(place_id)",
		"CREATE INDEX IF NOT EXISTS idx_place_items_item ON place_items(item_id)",
		"CREATE INDEX IF NOT EXISTS idx_place_items_status ON place_items(status)",

		// Wave indexes
		"CREATE INDEX IF NOT EXISTS idx_waves_kind_status ON waves(kind, status)",
		"CREATE INDEX IF NOT EXISTS idx_waves_number ON waves(number)",
		"CREATE INDEX IF NOT EXISTS idx_waves_counterparty ON waves(counterparty)",
		"CREATE INDEX IF NOT EXISTS idx_waves_planned_date ON waves(planned_date)",
		"CREATE INDEX IF NOT EXISTS idx_waves_created_at ON waves(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_wave_items_wave ON wave_items(wave_id)",
		"CREATE INDEX IF NOT EXISTS idx_wave_items_item ON wave_items(item_id)",

		// Status history indexes
		"CREATE INDEX IF NOT EXISTS idx_wave_status_history_wave ON wave_status_history(wave_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_wave_status_history_changed_by ON wave_status_history(changed_by)",

		// Document indexes
		"CREATE INDEX IF NOT EXISTS idx_wave_documents_wave ON wave_documents(wave_id)",
		"CREATE INDEX IF NOT EXISTS idx_wave_documents_created_at ON wave_documents(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedTopology(); err != nil {
		return fmt.Errorf("failed to seed warehouse topology: %w", err)
	}

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedTopology creates the default stock and the reserved staging and
// storage places the transition engine depends on.
func (m *Migration) seedTopology() error {
	log.Println("🏭 Seeding warehouse topology...")

	var stock warehouse.Stock
	result := m.db.Where("name = ?", "MAIN").First(&stock)
	if result.Error != nil {
		stock = warehouse.Stock{Name: "MAIN", Address: "Main warehouse", IsActive: true}
		if err := m.db.Create(&stock).Error; err != nil {
			return err
		}
		log.Println("✅ Created stock: MAIN")
	}

	var zone warehouse.Zone
	result = m.db.Where("stock_id = ? AND name = ?", stock.ID, "SYSTEM").First(&zone)
	if result.Error != nil {
		zone = warehouse.Zone{StockID: stock.ID, Name: "SYSTEM"}
		if err := m.db.Create(&zone).Error; err != nil {
			return err
		}
		log.Println("✅ Created zone: SYSTEM")
	}

	reserved := []string{
		m.config.Warehouse.StagingPlace,
		m.config.Warehouse.StoragePlace,
	}
	for _, name := range reserved {
		var place warehouse.Place
		result := m.db.Where("name = ?", name).First(&place)
		if result.Error != nil {
			place = warehouse.Place{ZoneID: zone.ID, Name: name}
			if err := m.db.Create(&place).Error; err != nil {
				return err
			}
			log.Printf("✅ Created reserved place: %s", name)
		} else {
			log.Printf("⏭️ Reserved place already exists: %s", name)
		}
	}

	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("username = ?", "admin").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123"), m.config.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Username: "admin",
		Password: string(hashedPassword),
		FullName: "Administrator",
		Role:     user.RoleAdmin,
		IsActive: true,
	}
	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin (change the password immediately)")
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Define tables in reverse dependency order
	tables := []string{
		"wave_documents",
		"wave_status_history",
		"wave_items",
		"wave_sequences",
		"waves",
		"place_items",
		"items",
		"places",
		"zones",
		"stocks",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
