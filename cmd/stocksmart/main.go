package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"stocksmart/utils"
)

func main() {
	var (
		billsFile = flag.String("bills", "", "Path to the bills JSON export")
		asOf      = flag.String("as-of", "", "Forecast as of this date, YYYY-MM-DD (default today)")
		format    = flag.String("format", "text", "Output format: text, json, xlsx")
		out       = flag.String("out", "", "Output file (default stdout; required for xlsx)")
		top       = flag.Int("top", 3, "Number of top products in the sales analysis")
		workers   = flag.Int("workers", 4, "Products forecast in parallel")
	)
	flag.Parse()

	cfg := Config{
		BillsFile: *billsFile,
		Format:    *format,
		Out:       *out,
		Top:       *top,
		Workers:   *workers,
		AsOf:      time.Now(),
	}
	if *asOf != "" {
		t, err := utils.ParseDate(*asOf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -as-of %q: %v\n", *asOf, err)
			os.Exit(2)
		}
		cfg.AsOf = t
	}

	if err := Run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
