// Package cli holds the flag parsing and terminal output for the billtool
// command.
package cli

import "flag"

// Options are the parsed command-line options for billtool.
type Options struct {
	ConfigFile string
	DBPath     string
	BillID     string
	Format     string
	List       bool
}

// ParseFlags parses command-line flags into Options.
func ParseFlags() *Options {
	opts := &Options{}

	flag.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&opts.DBPath, "db", "", "Database path (overrides config)")
	flag.StringVar(&opts.BillID, "bill", "", "Bill ID to summarize")
	flag.StringVar(&opts.Format, "format", "text", "Output format: text or csv")
	flag.BoolVar(&opts.List, "list", false, "List stored bills instead of summarizing one")

	flag.Parse()
	return opts
}
