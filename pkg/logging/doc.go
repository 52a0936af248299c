// Package logging provides structured logging for sheetlog with unified
// log handling and level filtering.
//
// The package is a thin wrapper over Go's standard slog package. All log
// entries carry a subsystem identifier so that log aggregation systems can
// filter by component:
//
//   - **Session**: cookie session reads, commits, and destruction
//   - **OAuth**: authorization URL generation, code exchange, token refresh
//   - **Gate**: guard decisions and redirect targets
//   - **HTTP**: server lifecycle and request handling
//   - **Config**: configuration loading and validation
//   - **UserStore**: account creation and lookup
//   - **Sheets**: spreadsheet reads and writes
//
// Usage:
//
//	logging.Init(logging.LevelInfo, os.Stdout)
//	logging.Info("HTTP", "Listening on %s", addr)
//	logging.Error("OAuth", err, "Token refresh failed")
//
// User identifiers should be passed through TruncateUserID before logging
// for privacy.
package logging
