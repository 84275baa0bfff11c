package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/ebookrequests"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/ebooks"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/sections"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/stats"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)
	m := NewPostgresRepositoryManager()

	if _, ok := m.Users(db).(*users.PostgresRepository); !ok {
		t.Fatal("Users() is not postgres")
	}
	if _, ok := m.Sections(db).(*sections.PostgresRepository); !ok {
		t.Fatal("Sections() is not postgres")
	}
	if _, ok := m.Ebooks(db).(*ebooks.PostgresRepository); !ok {
		t.Fatal("Ebooks() is not postgres")
	}
	if _, ok := m.EbookRequests(db).(*ebookrequests.PostgresRepository); !ok {
		t.Fatal("EbookRequests() is not postgres")
	}
	if _, ok := m.Feedback(db).(*feedback.PostgresRepository); !ok {
		t.Fatal("Feedback() is not postgres")
	}
	if _, ok := m.Stats(db).(*stats.PostgresRepository); !ok {
		t.Fatal("Stats() is not postgres")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)
	boom := errors.New("boom")

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}
	defer func() { gooseUpContext = orig }()

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	if _, err := Open(context.Background(), "postgres://u:p@127.0.0.1:1/none?connect_timeout=1"); err == nil {
		t.Fatal("expected ping error for unreachable database")
	}
}
