// Command accounts-backup exports, imports or wipes the configured backend
// from the command line, using the same backup file format as the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/backend"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/config"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/impexp"
	applog "github.com/msmraqeeb/Euro-IT-Accounts/internal/log"
)

func main() {
	exportPath := flag.String("export", "", "write a backup of the backend to this file")
	importPath := flag.String("import", "", "load a backup file into the backend")
	clear := flag.Bool("clear", false, "delete every record in the backend")
	yes := flag.Bool("yes", false, "skip the confirmation prompt for -clear")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := applog.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration: %v", err)
	}

	modes := 0
	for _, on := range []bool{*exportPath != "", *importPath != "", *clear} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "usage: accounts-backup -export FILE | -import FILE | -clear [-yes]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := backend.NewFactory(logger).Create(ctx, cfg.BackendConfig())
	if err != nil {
		fatal("failed to initialize backend: %v", err)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	switch {
	case *exportPath != "":
		runExport(ctx, result, *exportPath)
	case *importPath != "":
		runImport(ctx, result, *importPath)
	case *clear:
		runClear(ctx, result, *yes)
	}
}

func runExport(ctx context.Context, result *backend.Result, path string) {
	l, err := result.Backend.FetchAll(ctx)
	if err != nil {
		fatal("cannot load data: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		fatal("create %s: %v", path, err)
	}
	defer f.Close()
	if err := impexp.Encode(f, impexp.FromLedger(l)); err != nil {
		fatal("write backup: %v", err)
	}
	fmt.Printf("exported %d clients, %d payments, %d expenses to %s\n",
		len(l.Clients), len(l.Payments), len(l.Expenses), path)
}

func runImport(ctx context.Context, result *backend.Result, path string) {
	f, err := os.Open(path)
	if err != nil {
		fatal("open %s: %v", path, err)
	}
	defer f.Close()
	b, err := impexp.Decode(f)
	if err != nil {
		fatal("read backup: %v", err)
	}
	if err := result.Backend.UpsertAll(ctx, b.Clients, b.Payments, b.Expenses); err != nil {
		fatal("import failed: %v", err)
	}
	fmt.Printf("imported %d clients, %d payments, %d expenses from %s\n",
		len(b.Clients), len(b.Payments), len(b.Expenses), path)
}

func runClear(ctx context.Context, result *backend.Result, yes bool) {
	if !yes {
		fmt.Printf("this deletes every record in the %s backend; re-run with -yes to confirm\n", result.Type)
		os.Exit(2)
	}
	if err := result.Backend.ClearAll(ctx); err != nil {
		fatal("clear failed: %v", err)
	}
	fmt.Println("all data cleared")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
