// Package sheets is the Google Sheets collaborator. It wraps the v4
// Values and metadata APIs behind a small Service interface, parses
// pasted spreadsheet links, and applies header seeding as an explicit
// batch whose per-write outcomes are reported to the caller.
package sheets
