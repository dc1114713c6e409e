package database_test

import (
	"context"
	"flag"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tpg "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database"
	"github.com/mrlokans/smartlibrary/internal/library"
)

var runIntegrationTests = flag.Bool("integration", false, "run integration tests")

func startPostgres(t *testing.T) config.Database {
	t.Helper()
	if !*runIntegrationTests {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	pgc, err := tpg.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tpg.WithDatabase("smartlibrary"),
		tpg.WithUsername("library"),
		tpg.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgc.Terminate(ctx) })

	host, err := pgc.Host(ctx)
	require.NoError(t, err)
	port, err := pgc.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.Database{
		Driver:   config.DriverPostgres,
		Host:     host,
		Port:     port.Int(),
		User:     "library",
		Password: "password",
		Name:     "smartlibrary",
		SSLMode:  "disable",
		LogLevel: "silent",
	}
}

func TestPostgres_BorrowLifecycle_Integration(t *testing.T) {
	db, err := database.NewDatabase(startPostgres(t), nil)
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := library.NewService(db, config.Library{LoanPeriodDays: 7, BorrowLimit: 3},
		library.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err = svc.AddBook(ctx, library.NewBook{ISBN: "111", Title: "Dune", AuthorName: "Frank Herbert", Copies: 1})
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, library.NewBook{ISBN: "111", Title: "Dune", AuthorName: "Frank Herbert", Copies: 1})
	assert.ErrorIs(t, err, library.ErrAlreadyExists)

	books, err := svc.SearchBooks(ctx, "100%")
	require.NoError(t, err)
	assert.Empty(t, books)

	for i, id := range []string{"M001", "M002", "M003", "M004"} {
		_, err := svc.AddMember(ctx, library.NewMember{MemberID: id, Name: "Reader " + string(rune('A'+i))})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 4)
	for _, id := range []string{"M001", "M002", "M003", "M004"} {
		wg.Add(1)
		go func(memberID string) {
			defer wg.Done()
			_, err := svc.Borrow(ctx, memberID, "111")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, library.ErrOutOfStock)
	}
	assert.Equal(t, 1, succeeded, "exactly one member gets the last copy")

	book, err := svc.GetBook(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 0, book.AvailableCopies)
}
