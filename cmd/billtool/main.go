package main

import (
	"os"

	"github.com/splittab/splittab-backend/internal/cli"
	"github.com/splittab/splittab-backend/internal/infrastructure/config"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

func main() {
	opts := cli.ParseFlags()

	cfg := config.LoadOrEnvWithPath(opts.ConfigFile)

	dbPath := cfg.Storage.DatabasePath
	if opts.DBPath != "" {
		dbPath = opts.DBPath
	}

	store, err := storage.NewStorage(dbPath)
	if err != nil {
		cli.Fatalf("failed to open database %s: %v", dbPath, err)
	}
	defer store.Close()

	if opts.List {
		result, err := store.ListBills(storage.BillFilters{Limit: 100})
		if err != nil {
			cli.Fatalf("failed to list bills: %v", err)
		}
		cli.PrintBillList(os.Stdout, result)
		return
	}

	if opts.BillID == "" {
		cli.Fatalf("either -bill or -list is required")
	}

	b, err := store.GetBill(opts.BillID)
	if err != nil {
		cli.Fatalf("failed to load bill %s: %v", opts.BillID, err)
	}

	if err := cli.PrintBill(os.Stdout, b, opts.Format); err != nil {
		cli.Fatalf("%v", err)
	}
}
