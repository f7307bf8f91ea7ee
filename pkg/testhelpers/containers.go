package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/database"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

// PostgresTestImage is the stock PostgreSQL image used for integration tests.
const PostgresTestImage = "postgres:16-alpine"

// TestDB holds a shared test database container with migrations applied.
type TestDB struct {
	Container testcontainers.Container
	DB        *database.DB
	ConnStr   string
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared PostgreSQL container for integration tests.
// The container is created once and reused across all tests in the run.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        PostgresTestImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "plant_catalog_test",
			"POSTGRES_USER":     "plants",
			"POSTGRES_PASSWORD": "test_password",
		},
		// The server logs readiness twice: once for the init run, once for real.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	connStr := fmt.Sprintf("postgres://plants:test_password@%s:%s/plant_catalog_test?sslmode=disable",
		host, port.Port())

	// Run migrations using database/sql (required by golang-migrate)
	sqlDB, err := database.OpenSQL(connStr)
	if err != nil {
		return nil, err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Writable so tests can seed plants.
	db, err := database.NewConnection(ctx, &database.Config{
		URL:      connStr,
		Settings: config.DatabaseConfig{MaxConnections: 5},
		Writable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDB{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

// ResetPlants empties the plants table and restarts its id sequence.
func (tdb *TestDB) ResetPlants(t *testing.T) {
	t.Helper()
	if _, err := tdb.DB.Pool.Exec(context.Background(), "TRUNCATE plants RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to truncate plants: %v", err)
	}
}

// InsertPlant stores p and returns the id the database assigned.
// p.ID is ignored.
func (tdb *TestDB) InsertPlant(t *testing.T, p *models.Plant) string {
	t.Helper()

	var id string
	err := tdb.DB.Pool.QueryRow(context.Background(), `
		INSERT INTO plants (
			common_name, scientific_name, category, date_of_planting,
			max_height, origin, water_requirement, seasonal_flowering,
			medicinal_value, quantitative_data, geo_location, additional_info, image_urls
		) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id::text`,
		p.CommonName, p.ScientificName, p.Category, p.DateOfPlanting,
		p.MaxHeight, p.Origin, p.WaterRequirement, p.SeasonalFlowering,
		p.MedicinalValue, p.QuantitativeData, p.GeoLocation, p.AdditionalInfo, p.ImageURLs,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert plant: %v", err)
	}
	return id
}
