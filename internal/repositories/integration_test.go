package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Migrate(db.DB))
	return db
}

func setupRedisContainer(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", host, port.Int())})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestIntegration_UserRepositories(t *testing.T) {
	db := setupPostgresContainer(t)
	ctx := context.Background()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)

	require.NoError(t, writeRepo.Save(ctx, "alice", "hash", "alice@example.com"))

	t.Run("DuplicateUsername", func(t *testing.T) {
		err := writeRepo.Save(ctx, "alice", "other", "other@example.com")
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		err := writeRepo.Save(ctx, "alice2", "other", "alice@example.com")
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("ByUsername", func(t *testing.T) {
		username := "alice"
		user, err := readRepo.GetByUsernameAndEmail(ctx, &username, nil)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.False(t, user.Disabled)
	})

	t.Run("UsernameMatchesEmailDoesNot", func(t *testing.T) {
		username := "alice"
		email := "nobody@example.com"
		user, err := readRepo.GetByUsernameAndEmail(ctx, &username, &email)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("NotFound", func(t *testing.T) {
		username := "nonexistent"
		user, err := readRepo.GetByUsernameAndEmail(ctx, &username, nil)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestIntegration_PostRepositories(t *testing.T) {
	db := setupPostgresContainer(t)
	ctx := context.Background()

	users := NewUserWriteRepository(db, nil)
	require.NoError(t, users.Save(ctx, "alice", "hash", "alice@example.com"))
	username := "alice"
	alice, err := NewUserReadRepository(db, nil).GetByUsernameAndEmail(ctx, &username, nil)
	require.NoError(t, err)
	require.NotNil(t, alice)

	writer := NewPostWriteRepository(db, nil)
	reader := NewPostReadRepository(db)

	post, err := writer.Save(ctx, alice.UserID, "T", "C")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, post.UserID)

	_, err = writer.Update(ctx, post.PostID, uuid.New(), "hijack", "hijack")
	assert.ErrorIs(t, err, ErrPostNotFound)

	updated, err := writer.Update(ctx, post.PostID, alice.UserID, "T2", "C2")
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, alice.UserID, updated.UserID)

	mine, err := reader.ListByUserID(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, writer.Delete(ctx, post.PostID, uuid.New()), ErrPostNotFound)
	assert.NoError(t, writer.Delete(ctx, post.PostID, alice.UserID))
	assert.ErrorIs(t, writer.Delete(ctx, post.PostID, alice.UserID), ErrPostNotFound)

	gone, err := reader.GetByID(ctx, post.PostID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIntegration_PostCacheRepository(t *testing.T) {
	client := setupRedisContainer(t)
	ctx := context.Background()

	repo := NewPostCacheRepository(client, time.Minute)

	_, err := repo.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrCacheMiss)

	post := &models.PostDB{PostID: 1, Title: "T", Content: "C", UserID: uuid.New()}
	require.NoError(t, repo.Set(ctx, post))

	cached, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, post.Title, cached.Title)
	assert.Equal(t, post.UserID, cached.UserID)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, repo.Delete(ctx, 42))
}
