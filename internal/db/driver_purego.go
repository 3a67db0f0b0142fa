//go:build purego

package db

// Pure Go build, no C compiler required:
//
//	CGO_ENABLED=0 go build -tags purego ./...

import (
	_ "modernc.org/sqlite"
)

const (
	// SQLiteDriverName is the database/sql name of the SQLite driver in this build.
	SQLiteDriverName = "sqlite"

	// BuildMode describes the current build configuration.
	BuildMode = "purego"
)
