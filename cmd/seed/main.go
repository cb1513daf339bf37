// Command seed writes a demo workbook JSON file the server can load via
// WORKBOOK_FILE. It produces the conventional tab layout with a handful of
// submission rows and AI feed rows so every endpoint has data at boot.
//
// Usage:
//
//	go run ./cmd/seed -out data/workbook.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/store"
)

var submissions = []domain.AlertRow{
	{PhoneNumber: "9876543210", Area: "Ranjit Avenue", City: "Amritsar", AlertType: domain.AlertTypeRed, Description: "Water entering ground floors"},
	{PhoneNumber: "9876500001", Area: "Model Town", City: "Ludhiana", AlertType: domain.AlertTypeYellow, Description: "Street flooding near the market"},
	{PhoneNumber: "9876500002", Area: "Civil Lines", City: "Jalandhar", AlertType: domain.AlertTypeYellow, Description: "Power lines down after the storm"},
	{PhoneNumber: "9876500003", Area: "Tripuri", City: "Patiala", AlertType: domain.AlertTypeRed, Description: "Embankment seepage reported"},
}

// aiRow is (pub date, risk percentage, title).
var aiRows = [][]string{
	{"2024-04-25", "85", "Flash Flood Risk - Beas Catchment"},
	{"2024-04-25", "62", "Thunderstorm Cell Approaching Ludhiana"},
	{"2024-04-26", "44", "Moderate Heat Stress Advisory"},
	{"2024-04-26", "15", "Light Rain Expected"},
}

func main() {
	out := flag.String("out", "workbook.json", "output path for the workbook JSON")
	flag.Parse()

	m := store.Seeded()
	ctx := context.Background()

	for _, row := range submissions {
		if err := m.Append(ctx, store.TabSubmissions, row.Cells()); err != nil {
			fatal("append submission: %v", err)
		}
	}
	for i, row := range aiRows {
		if err := m.Append(ctx, store.TabAIFeed, row); err != nil {
			fatal("append feed row %d: %v", i, err)
		}
		risk, _ := strconv.ParseFloat(row[1], 64)
		if err := m.Append(ctx, store.TabAlerts, []string{
			fmt.Sprintf("alert-%d", i+1), row[0], row[2], "weather",
			fmt.Sprintf("%.2f", risk/100), "open", "feed", "",
		}); err != nil {
			fatal("append alert row %d: %v", i, err)
		}
	}

	if err := store.SaveFile(*out, m); err != nil {
		fatal("write workbook: %v", err)
	}

	snapshot := m.Snapshot()
	fmt.Printf("wrote %s\n", *out)
	for _, tab := range []string{store.TabSubmissions, store.TabAlerts, store.TabAIFeed} {
		fmt.Printf("  %-12s %d data rows\n", tab, len(snapshot[tab])-1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
