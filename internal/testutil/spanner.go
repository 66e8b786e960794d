package testutil

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
)

// DefaultTestSpannerDB is the emulator database used by integration tests.
const DefaultTestSpannerDB = "projects/test-project/instances/test-instance/databases/perfume-catalog-test"

// SetupSpannerTest creates a Spanner client on an emptied test database and
// returns a cleanup function.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	client, err := spanner.NewClient(context.Background(), GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}
	return client, cleanup
}

// GetTestSpannerDB returns the test database path, overridable with TEST_SPANNER_DATABASE.
func GetTestSpannerDB() string {
	if db := os.Getenv("TEST_SPANNER_DATABASE"); db != "" {
		return db
	}
	return DefaultTestSpannerDB
}

// CleanDatabase deletes every row for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete("storage_objects", spanner.AllKeys()),
		spanner.Delete("storage_buckets", spanner.AllKeys()),
		spanner.Delete("products", spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}
