package storage

import (
	"aurora/internal/structures"
	"aurora/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *structures.Config {
	t.Helper()
	return &structures.Config{
		Storage: structures.StorageConfig{
			DataDir:       t.TempDir(),
			UsersFile:     "users.json",
			AlertsFile:    "alerts.log",
			CounterFile:   "alerts.counter",
			AlertsFormat:  FormatNDJSON,
			QuarantineDir: "quarantine",
		},
		Contacts: structures.ContactsConfig{MaxTrusted: 3},
		Auth: structures.AuthConfig{
			DefaultAdminUser:     "admin",
			DefaultAdminPassword: "admin123",
			DefaultAdminName:     "Admin Aurora",
			BcryptCost:           bcrypt.MinCost,
			SessionTTL:           time.Hour,
		},
	}
}

func testQuarantine(t *testing.T, conf *structures.Config) *Quarantine {
	t.Helper()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	q := NewQuarantine(conf, compressor, &testutil.MockLogger{})
	t.Cleanup(q.Close)
	return q
}
