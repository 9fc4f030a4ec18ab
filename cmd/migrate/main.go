package main

import (
	"enemauth/internal/db"
	"flag"
	"fmt"
	"os"
)

func main() {
	path := flag.String("path", "migrations", "directory with SQL migrations")
	flag.Parse()

	postgresqlURL := os.Getenv("POSTGRESQL_URL")
	if postgresqlURL == "" {
		fmt.Fprintln(os.Stderr, "error: POSTGRESQL_URL must be set")
		os.Exit(1)
	}

	if err := db.ApplyMigrations(*path, postgresqlURL); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied.")
}
