package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and
// empties the payroll tables. The test is skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, truncateAllTables(ctx, db))
	return db
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	tables := []string{"salary_records", "payroll_runs", "attendances", "employees"}
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func seedEmployee(t *testing.T, db *database.DB, employeeID, name, basic, status string) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO employees (employee_id, full_name, department, designation, basic_salary, is_metro_city, state, status)
		VALUES ($1, $2, 'Engineering', 'Engineer', $3::numeric, TRUE, 'Karnataka', $4)
	`, employeeID, name, basic, status)
	require.NoError(t, err)
}
