// Package dashboards keeps the last dashboard the server returned for each
// user in the local SQLite cache, so the CLI can show it while offline.
//
// A user has at most one cached row; Save replaces it. Load returns
// common.ErrorNotFound when nothing has been cached yet.
//
//	repo := dashboards.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, "alice", d, time.Now())
//	cached, err := repo.Load(ctx, "alice")
package dashboards
