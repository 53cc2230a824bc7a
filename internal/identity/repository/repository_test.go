package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	models "github.com/alexmenard/e2ee-api/internal/identity/model"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var testDB *bun.DB

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
		(*models.User)(nil),
		(*models.Device)(nil),
		(*models.Session)(nil),
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

func truncateIdentityTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"sessions", "devices", "users"} {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE `+table+` RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}
}

func newTestUser(t *testing.T, repo *IdentityRepository, email string) *models.User {
	t.Helper()
	u := &models.User{
		UUID:         uuid.New(),
		Email:        email,
		PasswordHash: "argon2-hash",
	}
	require.NoError(t, repo.CreateUser(t.Context(), u))
	return u
}

func Test_CreateAndGetUser(t *testing.T) {
	t.Cleanup(func() { truncateIdentityTables(t) })
	repo := NewIdentityRepository(testDB, logger.Logger{})

	u := newTestUser(t, repo, "alice@example.com")
	require.NotZero(t, u.ID)

	byID, err := repo.GetUserByID(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, u.UUID, byID.UUID)

	byEmail, err := repo.GetUserByEmail(t.Context(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byUUID, err := repo.GetUserByUUID(t.Context(), u.UUID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byUUID.ID)

	_, err = repo.GetUserByEmail(t.Context(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func Test_EmailExists(t *testing.T) {
	t.Cleanup(func() { truncateIdentityTables(t) })
	repo := NewIdentityRepository(testDB, logger.Logger{})

	newTestUser(t, repo, "alice@example.com")

	exists, err := repo.EmailExists(t.Context(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(t.Context(), "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_Devices(t *testing.T) {
	t.Cleanup(func() { truncateIdentityTables(t) })
	repo := NewIdentityRepository(testDB, logger.Logger{})

	u := newTestUser(t, repo, "alice@example.com")

	d := &models.Device{
		UserID:      u.ID,
		DeviceID:    "dev-a",
		IdentityKey: "aWRlbnRpdHkta2V5LWJ5dGVzLTMyLWxvbmchIQ==",
	}
	require.NoError(t, repo.CreateDevice(t.Context(), d))

	fetched, err := repo.GetDeviceByDeviceID(t.Context(), "dev-a")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.UserID)
	assert.Equal(t, d.IdentityKey, fetched.IdentityKey)

	exists, err := repo.DeviceIDExists(t.Context(), "dev-a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.DeviceIDExists(t.Context(), "dev-b")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetDeviceByDeviceID(t.Context(), "dev-b")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func Test_ListDeviceIDs(t *testing.T) {
	t.Cleanup(func() { truncateIdentityTables(t) })
	repo := NewIdentityRepository(testDB, logger.Logger{})

	u := newTestUser(t, repo, "alice@example.com")
	other := newTestUser(t, repo, "bob@example.com")

	for _, deviceID := range []string{"dev-a1", "dev-a2"} {
		require.NoError(t, repo.CreateDevice(t.Context(), &models.Device{
			UserID:      u.ID,
			DeviceID:    deviceID,
			IdentityKey: "aWRlbnRpdHkta2V5LWJ5dGVzLTMyLWxvbmchIQ==",
		}))
	}
	require.NoError(t, repo.CreateDevice(t.Context(), &models.Device{
		UserID:      other.ID,
		DeviceID:    "dev-b1",
		IdentityKey: "aWRlbnRpdHkta2V5LWJ5dGVzLTMyLWxvbmchIQ==",
	}))

	ids, err := repo.ListDeviceIDs(t.Context(), u.UUID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev-a1", "dev-a2"}, ids)

	ids, err = repo.ListDeviceIDs(t.Context(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func Test_Sessions(t *testing.T) {
	t.Cleanup(func() { truncateIdentityTables(t) })
	repo := NewIdentityRepository(testDB, logger.Logger{})

	u := newTestUser(t, repo, "alice@example.com")
	now := time.Now()

	t.Run("active session resolves", func(t *testing.T) {
		s := &models.Session{
			Token:     "token-active",
			UserID:    u.ID,
			DeviceID:  "dev-a",
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, repo.CreateSession(t.Context(), s))

		fetched, err := repo.GetActiveSession(t.Context(), "token-active", now)
		require.NoError(t, err)
		assert.Equal(t, u.ID, fetched.UserID)
		assert.Equal(t, "dev-a", fetched.DeviceID)
	})

	t.Run("expired session is treated as unknown", func(t *testing.T) {
		s := &models.Session{
			Token:     "token-expired",
			UserID:    u.ID,
			DeviceID:  "dev-a",
			ExpiresAt: now.Add(-time.Minute),
		}
		require.NoError(t, repo.CreateSession(t.Context(), s))

		_, err := repo.GetActiveSession(t.Context(), "token-expired", now)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := repo.GetActiveSession(t.Context(), "no-such-token", now)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
