package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libkeeper/internal/dbx"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/ebookrequests"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/ebooks"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/sections"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/stats"
	"github.com/dmitrijs2005/libkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sections(db dbx.DBTX) sections.Repository
	Ebooks(db dbx.DBTX) ebooks.Repository
	EbookRequests(db dbx.DBTX) ebookrequests.Repository
	Feedback(db dbx.DBTX) feedback.Repository
	Stats(db dbx.DBTX) stats.Repository
}
