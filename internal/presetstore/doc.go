// Package presetstore persists named encoding presets in SQLite.
//
// A preset is a settings document under a user-chosen name; the catalog
// supports upsert, lookup, listing, and deletion. Settings are stored as the
// same TOML the file-based presets use, so a catalog entry and an exported
// file stay interchangeable. Run history is deliberately not recorded here.
package presetstore
