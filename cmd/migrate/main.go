package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"hearth.homes/internal/migrate"
)

func main() {
	var (
		dsn    = flag.String("dsn", os.Getenv("HEARTH_PG_DSN"), "PostgreSQL DSN (defaults to HEARTH_PG_DSN)")
		status = flag.Bool("status", false, "print applied migrations instead of applying")
	)
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "migrate: a DSN is required (flag -dsn or HEARTH_PG_DSN)")
		os.Exit(2)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mgr := migrate.NewManager(db, migrate.Registry())
	if *status {
		applied, err := mgr.Status(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "migrate: status: %v\n", err)
			os.Exit(1)
		}
		if len(applied) == 0 {
			fmt.Println("no migrations applied")
			return
		}
		for _, name := range applied {
			fmt.Println(name)
		}
		return
	}

	if err := mgr.Up(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied")
}
