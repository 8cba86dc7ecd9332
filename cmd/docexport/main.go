package main

import (
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/go-data-exporter/docexport/internal/cli"
)

func main() {
	cli.Execute()
}
