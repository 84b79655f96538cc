package integration

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/http/cookiejar"
	"sync/atomic"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	migrations "gatehouse/db"
	"gatehouse/pkg/server"
	"gatehouse/pkg/server/endpoints"
	"gatehouse/pkg/server/middleware"
	gormstore "gatehouse/pkg/server/store/gorm"
	"gatehouse/pkg/session"
)

// portCounter is used to allocate unique ports for each test server
var portCounter int32 = 19000

// testLockoutPolicy keeps lockout expiry testable without waiting
// five minutes.
var testLockoutPolicy = session.LockoutPolicy{
	AttemptLimit: 3,
	Duration:     2 * time.Second,
}

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	ServerURL   string
	DatabaseURL string
	server      *server.Server
}

// NewTestContext starts a PostgreSQL testcontainer, migrates and seeds
// the database, and runs an in-process Gatehouse server against it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("gatehouse_test"),
		tcpostgres.WithUsername("gatehouse"),
		tcpostgres.WithPassword("gatehouse"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://gatehouse:gatehouse@%s:%s/gatehouse_test?sslmode=disable", host, port.Port())

	if err := runMigrations(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := gormstore.Seed(db); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	tc := &TestContext{
		DB:          db,
		Container:   pgContainer,
		DatabaseURL: connStr,
	}

	if err := tc.startServer(db); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	return tc, nil
}

func runMigrations(dbURL string) error {
	migrationsFS, err := fs.Sub(migrations.Migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", d, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func (tc *TestContext) startServer(db *gorm.DB) error {
	port := int(atomic.AddInt32(&portCounter, 1))

	sessions := session.NewManager(
		[]byte("0123456789abcdef0123456789abcdef"),
		"gatehouse_session",
		testLockoutPolicy,
	)
	tokens := middleware.NewTokenAuthenticator(
		[]byte("fedcba9876543210fedcba9876543210"),
		time.Minute,
	)

	s := server.NewServer(sessions, db, "127.0.0.1", fmt.Sprintf("%d", port))
	if err := endpoints.RegisterAll(s, tokens); err != nil {
		return fmt.Errorf("failed to register endpoints: %w", err)
	}

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("test server exited: %v", err)
		}
	}()

	tc.server = s
	tc.ServerURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	return waitForServer(tc.ServerURL)
}

func waitForServer(url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < 50; i++ {
		resp, err := client.Get(url + "/login")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 500 {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become ready", url)
}

// NewClient returns an HTTP client with a fresh cookie jar, simulating
// a new browser session.
func (tc *TestContext) NewClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
	}
}

// Close releases all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
