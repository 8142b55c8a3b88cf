// Package store persists batch runs.
//
// # Overview
//
// Each run is stored as one row in a runs table holding its summary, plus
// one row per parsed clause in a results table. SQLiteStore keeps both in a
// single SQLite file using the pure Go modernc.org/sqlite driver.
//
// # Usage
//
//	s, err := store.Open("demystify.db")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.SaveRun(ctx, run)
//	latest, err := s.LatestRun(ctx)
//	failures, err := s.Failures(ctx, latest.Summary.RunID)
//
// # Thread Safety
//
// SQLiteStore serializes writes and uses a single database connection.
package store
