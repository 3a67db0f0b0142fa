//go:build !purego

package db

// Default build: cgo SQLite driver.
//
//	CGO_ENABLED=1 go build ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// SQLiteDriverName is the database/sql name of the SQLite driver in this build.
	SQLiteDriverName = "sqlite3"

	// BuildMode describes the current build configuration.
	BuildMode = "cgo"
)
