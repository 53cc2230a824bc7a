package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	identityModels "github.com/alexmenard/e2ee-api/internal/identity/model"
	models "github.com/alexmenard/e2ee-api/internal/keys/model"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var testDB *bun.DB

const (
	testPublicKey = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="
	testSignature = "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8gISIjJCUmJygpKissLS4vMDEyMzQ1Njc4OTo7PD0+Pw=="
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("e2ee"),
		postgres.WithUsername("e2ee"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
		return
	}

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*identityModels.User)(nil),
		(*identityModels.Device)(nil),
		(*models.SignedPreKey)(nil),
		(*models.OneTimePreKey)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func truncateKeyTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"one_time_pre_keys", "signed_pre_keys", "devices", "users"} {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE `+table+` RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}
}

func seedDevice(t *testing.T, deviceID string) {
	t.Helper()
	u := &identityModels.User{
		UUID:         uuid.New(),
		Email:        deviceID + "@example.com",
		PasswordHash: "hash",
	}
	_, err := testDB.NewInsert().Model(u).Exec(t.Context())
	require.NoError(t, err)

	d := &identityModels.Device{
		UserID:      u.ID,
		DeviceID:    deviceID,
		IdentityKey: testPublicKey,
	}
	_, err = testDB.NewInsert().Model(d).Exec(t.Context())
	require.NoError(t, err)
}

func makeOTPKs(deviceID string, n int) []models.OneTimePreKey {
	otpks := make([]models.OneTimePreKey, n)
	for i := range otpks {
		otpks[i] = models.OneTimePreKey{
			DeviceID:  deviceID,
			KeyID:     int32(i + 1),
			PublicKey: testPublicKey,
		}
	}
	return otpks
}

func Test_SaveKeys(t *testing.T) {
	repo := NewKeysRepository(testDB, logger.Logger{})

	t.Run("insert then upsert signed prekey", func(t *testing.T) {
		defer truncateKeyTables(t)
		seedDevice(t, "dev-a")

		spk := &models.SignedPreKey{
			DeviceID:  "dev-a",
			KeyID:     1,
			PublicKey: testPublicKey,
			Signature: testSignature,
		}
		require.NoError(t, repo.SaveKeys(t.Context(), spk, makeOTPKs("dev-a", 3)))

		count, err := repo.CountUnusedOneTimePreKeys(t.Context(), "dev-a")
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		// Same (device, key_id) again replaces the key material instead of
		// conflicting.
		again := &models.SignedPreKey{
			DeviceID:  "dev-a",
			KeyID:     1,
			PublicKey: testPublicKey,
			Signature: testSignature,
		}
		require.NoError(t, repo.SaveKeys(t.Context(), again, nil))

		n, err := testDB.NewSelect().Model((*models.SignedPreKey)(nil)).
			Where("device_id = ?", "dev-a").Count(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("duplicate one-time prekey ids are skipped", func(t *testing.T) {
		defer truncateKeyTables(t)
		seedDevice(t, "dev-a")

		spk := &models.SignedPreKey{DeviceID: "dev-a", KeyID: 1, PublicKey: testPublicKey, Signature: testSignature}
		require.NoError(t, repo.SaveKeys(t.Context(), spk, makeOTPKs("dev-a", 3)))

		spk2 := &models.SignedPreKey{DeviceID: "dev-a", KeyID: 2, PublicKey: testPublicKey, Signature: testSignature}
		require.NoError(t, repo.SaveKeys(t.Context(), spk2, makeOTPKs("dev-a", 3)))

		count, err := repo.CountUnusedOneTimePreKeys(t.Context(), "dev-a")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func Test_PruneSignedPreKeys(t *testing.T) {
	defer truncateKeyTables(t)
	seedDevice(t, "dev-a")
	repo := NewKeysRepository(testDB, logger.Logger{})

	for keyID := int32(1); keyID <= 4; keyID++ {
		spk := &models.SignedPreKey{
			DeviceID:  "dev-a",
			KeyID:     keyID,
			PublicKey: testPublicKey,
			Signature: testSignature,
		}
		require.NoError(t, repo.SaveKeys(t.Context(), spk, nil))
	}

	require.NoError(t, repo.PruneSignedPreKeys(t.Context(), "dev-a", 2))

	var kept []models.SignedPreKey
	err := testDB.NewSelect().Model(&kept).
		Where("device_id = ?", "dev-a").
		Order("key_id ASC").
		Scan(t.Context())
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, int32(3), kept[0].KeyID)
	assert.Equal(t, int32(4), kept[1].KeyID)

	latest, err := repo.LatestSignedPreKey(t.Context(), "dev-a")
	require.NoError(t, err)
	assert.Equal(t, int32(4), latest.KeyID)
}

func Test_ClaimBundle(t *testing.T) {
	repo := NewKeysRepository(testDB, logger.Logger{})

	t.Run("unknown device", func(t *testing.T) {
		defer truncateKeyTables(t)

		_, err := repo.ClaimBundle(t.Context(), "nope")
		assert.ErrorIs(t, err, ErrDeviceNotFound)
	})

	t.Run("device without signed prekey", func(t *testing.T) {
		defer truncateKeyTables(t)
		seedDevice(t, "dev-a")

		_, err := repo.ClaimBundle(t.Context(), "dev-a")
		assert.ErrorIs(t, err, ErrNoSignedPreKey)
	})

	t.Run("claims oldest prekey first, then degrades to null", func(t *testing.T) {
		defer truncateKeyTables(t)
		seedDevice(t, "dev-a")

		spk := &models.SignedPreKey{DeviceID: "dev-a", KeyID: 7, PublicKey: testPublicKey, Signature: testSignature}
		require.NoError(t, repo.SaveKeys(t.Context(), spk, makeOTPKs("dev-a", 2)))

		first, err := repo.ClaimBundle(t.Context(), "dev-a")
		require.NoError(t, err)
		require.NotNil(t, first.OneTimePreKey)
		assert.Equal(t, int32(1), first.OneTimePreKey.KeyID)
		assert.NotNil(t, first.OneTimePreKey.UsedAt)
		assert.Equal(t, testPublicKey, first.IdentityKey)
		assert.Equal(t, int32(7), first.SignedPreKey.KeyID)

		second, err := repo.ClaimBundle(t.Context(), "dev-a")
		require.NoError(t, err)
		require.NotNil(t, second.OneTimePreKey)
		assert.Equal(t, int32(2), second.OneTimePreKey.KeyID)

		drained, err := repo.ClaimBundle(t.Context(), "dev-a")
		require.NoError(t, err)
		assert.Nil(t, drained.OneTimePreKey)
		assert.Equal(t, int32(7), drained.SignedPreKey.KeyID)
	})
}

func Test_ClaimBundle_Concurrent(t *testing.T) {
	defer truncateKeyTables(t)
	seedDevice(t, "dev-a")
	repo := NewKeysRepository(testDB, logger.Logger{})

	spk := &models.SignedPreKey{DeviceID: "dev-a", KeyID: 1, PublicKey: testPublicKey, Signature: testSignature}
	require.NoError(t, repo.SaveKeys(t.Context(), spk, makeOTPKs("dev-a", 10)))

	const claimers = 50

	var wg sync.WaitGroup
	results := make([]*models.PreKeyBundle, claimers)
	errs := make([]error, claimers)

	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.ClaimBundle(context.Background(), "dev-a")
		}(i)
	}
	wg.Wait()

	seen := make(map[int32]int)
	nonNull := 0
	for i := 0; i < claimers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		if results[i].OneTimePreKey != nil {
			nonNull++
			seen[results[i].OneTimePreKey.KeyID]++
		}
	}

	// Every prekey is handed out exactly once; the rest of the claimers get
	// a bundle without one.
	assert.Equal(t, 10, nonNull)
	assert.Len(t, seen, 10)
	for keyID, n := range seen {
		assert.Equalf(t, 1, n, "prekey %d claimed more than once", keyID)
	}

	count, err := repo.CountUnusedOneTimePreKeys(t.Context(), "dev-a")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
