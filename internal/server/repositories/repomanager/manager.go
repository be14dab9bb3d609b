package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/breathing"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/journal"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/moods"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/questionnaires"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, so services decide the transactional scope.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Moods(db dbx.DBTX) moods.Repository
	Questionnaires(db dbx.DBTX) questionnaires.Repository
	Preferences(db dbx.DBTX) preferences.Repository
	Journal(db dbx.DBTX) journal.Repository
	Breathing(db dbx.DBTX) breathing.Repository
}
