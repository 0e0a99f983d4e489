package sqlite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSQLiteConfig(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{
			name:     "env variable",
			envValue: "/tmp/env.db",
			want:     "/tmp/env.db",
		},
		{
			name: "default path",
			want: "./gallery.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv("SQLITE_DB_PATH", tt.envValue)
				defer os.Unsetenv("SQLITE_DB_PATH")
			} else {
				os.Unsetenv("SQLITE_DB_PATH")
			}

			cfg := NewSQLiteConfig()
			database := NewSQLiteDB(cfg)

			if database.dbPath != tt.want {
				t.Errorf("dbPath = %v, want %v", database.dbPath, tt.want)
			}
		})
	}
}

func TestSQLiteDB_Connect(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})

	// Test successful connection
	err := database.Connect()
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	// Verify DB() returns non-nil
	if database.DB() == nil {
		t.Error("DB() returned nil after Connect()")
	}

	// Test that connecting again returns an error
	err = database.Connect()
	if err == nil {
		t.Error("Connect() should return error when already connected")
	}
}

func TestSQLiteDB_Close(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})

	// Close without connecting should not error
	err := database.Close()
	if err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Connect and close
	err = database.Connect()
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	err = database.Close()
	if err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Verify DB() returns nil after close
	if database.DB() != nil {
		t.Error("DB() should return nil after Close()")
	}
}

func TestSQLiteDB_MigrationsApplied(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	sqlDB := database.DB()

	// The images table should exist after connecting
	_, err := sqlDB.Exec(`
		INSERT INTO images (id, image_url, file_name, tags, created_at)
		VALUES ('abc', 'http://example.com/a.jpg', 'a.jpg', '["CAT"]', CURRENT_TIMESTAMP)
	`)
	if err != nil {
		t.Fatalf("Failed to insert into images table: %v", err)
	}

	var count int
	err = sqlDB.QueryRow("SELECT COUNT(*) FROM images").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count images: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 image, got %d", count)
	}

	// Migration version should be recorded
	var version int
	err = sqlDB.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected schema version 1, got %d", version)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	// Running migrations a second time must be a no-op
	if err := runMigrations(database.DB()); err != nil {
		t.Fatalf("Second runMigrations() error = %v", err)
	}

	var applied int
	err := database.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
	if err != nil {
		t.Fatalf("Failed to count applied migrations: %v", err)
	}
	if applied != len(migrations) {
		t.Errorf("Applied migrations = %d, want %d", applied, len(migrations))
	}
}
