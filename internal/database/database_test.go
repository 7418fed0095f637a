// Integration tests for the catalog schema. They need a PostgreSQL
// instance and skip when none is reachable.
package database

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// migratedDB connects with the POSTGRES_* settings, applies the
// migrations and returns the pool. It skips the test without a database.
func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	dsn := "postgres://" + get("POSTGRES_USER", "factorysite") + ":" + get("POSTGRES_PASSWORD", "changeme") +
		"@" + get("POSTGRES_HOST", "localhost") + ":" + get("POSTGRES_PORT", "5432") +
		"/" + get("POSTGRES_DB", "factorysite") + "?sslmode=disable"

	db, err := Connect(dsn)
	if err != nil {
		t.Skipf("skipping: PostgreSQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// inTx runs fn in a transaction that is always rolled back, so schema
// checks leave no rows behind in a shared database.
func inTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	fn(tx)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func TestConnectUnreachable(t *testing.T) {
	_, err := Connect("postgres://factorysite:x@localhost:1/factorysite?sslmode=disable&connect_timeout=1")
	if err == nil {
		t.Error("Connect to a closed port should fail")
	}
}

func TestMigrationsCreateSchema(t *testing.T) {
	db := migratedDB(t)

	if got := db.Stats().MaxOpenConnections; got != 25 {
		t.Errorf("MaxOpenConnections = %d, want 25", got)
	}

	groups := map[string][]string{
		"admin":       {"users"},
		"catalog":     {"services", "subservices", "categories", "products"},
		"options":     {"config_option_types", "config_option_values", "product_config_options"},
		"content":     {"story_types", "stories", "hero_slides", "partners", "company_info", "social_links", "homepage_settings"},
		"submissions": {"contact_submissions", "quote_submissions"},
	}
	for group, tables := range groups {
		t.Run(group, func(t *testing.T) {
			for _, table := range tables {
				var exists bool
				err := db.QueryRow(
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
				).Scan(&exists)
				if err != nil {
					t.Fatalf("look up %s: %v", table, err)
				}
				if !exists {
					t.Errorf("table %s missing after migration", table)
				}
			}
		})
	}

	// Running again is a no-op.
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate: %v", err)
	}
}

func TestOptionsDefaultToActive(t *testing.T) {
	db := migratedDB(t)

	inTx(t, db, func(tx *sql.Tx) {
		typeID, valueID := uuid.New(), uuid.New()
		if _, err := tx.Exec(
			`INSERT INTO config_option_types (id, slug, name_en, input_type) VALUES ($1, $2, 'Hinge Side', 'button_group')`,
			typeID, "hinge-side-"+typeID.String()[:8],
		); err != nil {
			t.Fatalf("insert option type: %v", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO config_option_values (id, option_type_id, slug, label_en) VALUES ($1, $2, 'left', 'Left')`,
			valueID, typeID,
		); err != nil {
			t.Fatalf("insert option value: %v", err)
		}

		var typeActive, valueActive bool
		var price string
		if err := tx.QueryRow(`SELECT is_active FROM config_option_types WHERE id = $1`, typeID).Scan(&typeActive); err != nil {
			t.Fatalf("read option type: %v", err)
		}
		if err := tx.QueryRow(`SELECT is_active, price_modifier::text FROM config_option_values WHERE id = $1`, valueID).Scan(&valueActive, &price); err != nil {
			t.Fatalf("read option value: %v", err)
		}
		if !typeActive || !valueActive {
			t.Errorf("is_active defaults = %v/%v, want true/true", typeActive, valueActive)
		}
		if price != "0.00" {
			t.Errorf("price_modifier default = %q, want 0.00", price)
		}
	})
}

func TestCatalogConstraints(t *testing.T) {
	db := migratedDB(t)

	inTx(t, db, func(tx *sql.Tx) {
		svc, sub := uuid.New(), uuid.New()
		slug := "svc-" + svc.String()[:8]
		if _, err := tx.Exec(`INSERT INTO services (id, slug, title_en) VALUES ($1, $2, 'Cabinets')`, svc, slug); err != nil {
			t.Fatalf("insert service: %v", err)
		}
		if _, err := tx.Exec(`INSERT INTO subservices (id, service_id, slug, title_en) VALUES ($1, $2, 'kitchen', 'Kitchen')`, sub, svc); err != nil {
			t.Fatalf("insert subservice: %v", err)
		}

		// Statement failures abort a transaction, so each attempt runs
		// behind a savepoint.
		attempt := func(name, query string, args ...any) string {
			t.Helper()
			if _, err := tx.Exec("SAVEPOINT attempt"); err != nil {
				t.Fatalf("savepoint: %v", err)
			}
			_, err := tx.Exec(query, args...)
			if _, rbErr := tx.Exec("ROLLBACK TO SAVEPOINT attempt"); rbErr != nil {
				t.Fatalf("rollback to savepoint after %s: %v", name, rbErr)
			}
			return pgCode(err)
		}

		if code := attempt("duplicate service slug",
			`INSERT INTO services (id, slug, title_en) VALUES ($1, $2, 'Again')`, uuid.New(), slug); code != "23505" {
			t.Errorf("duplicate service slug: code %q, want 23505", code)
		}
		if code := attempt("category out of stock",
			`INSERT INTO categories (id, subservice_id, slug, title_en, visibility_status) VALUES ($1, $2, 'doors', 'Doors', 'not_in_stock')`,
			uuid.New(), sub); code != "23514" {
			t.Errorf("category with not_in_stock: code %q, want 23514", code)
		}
		if code := attempt("orphan subservice",
			`INSERT INTO subservices (id, service_id, slug, title_en) VALUES ($1, $2, 'bath', 'Bath')`,
			uuid.New(), uuid.New()); code != "23503" {
			t.Errorf("subservice without service: code %q, want 23503", code)
		}

		if _, err := tx.Exec(`DELETE FROM services WHERE id = $1`, svc); err != nil {
			t.Fatalf("delete service: %v", err)
		}
		var left int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM subservices WHERE service_id = $1`, svc).Scan(&left); err != nil {
			t.Fatalf("count subservices: %v", err)
		}
		if left != 0 {
			t.Errorf("subservices left after service delete = %d, want cascade", left)
		}
	})
}
