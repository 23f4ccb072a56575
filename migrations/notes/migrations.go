// Package notes содержит SQL-миграции сервиса заметок.
package notes

import "embed"

// FS содержит файлы миграций для golang-migrate.
//
//go:embed *.sql
var FS embed.FS
