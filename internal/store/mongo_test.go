package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestMongoStore runs against a live server when IQFIELDBOT_TEST_MONGO_URI
// is set, e.g. mongodb://localhost:27017.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("IQFIELDBOT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("IQFIELDBOT_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := OpenMongo(ctx, MongoConfig{
		URI:        uri,
		Database:   "iqfieldbot_test",
		Collection: "sessions_" + uuid.NewString()[:8],
		TTL:        time.Hour,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		s.col.Drop(context.Background())
		s.Close()
	})

	testStoreContract(t, s)
}
