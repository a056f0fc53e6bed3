package main

import (
	"fmt"
	"log"
	"os"

	"aadhaar-records/core/config"
	"aadhaar-records/core/table"
	"aadhaar-records/feature/records"

	"go.uber.org/zap"
)

// Prints the identifiers of the first enrolment rows next to their key tuple,
// and flags identifiers that repeat for different tuples.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	dir := cfg.Pipeline.EnrolmentDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	fmt.Printf("Loading %s...\n", dir)
	t, _ := table.ReadDir(dir, zap.NewNop())
	fmt.Printf("Loaded %d rows\n", t.Len())

	seen := make(map[string]string)
	collisions := 0
	for i, row := range t.Rows {
		id := records.GenerateRecordID(row)
		tuple := fmt.Sprintf("%s|%s|%s|%s", row["date"], row["state"], row["district"], row["pincode"])

		if prev, ok := seen[id]; ok && prev != tuple {
			collisions++
			fmt.Printf("  ⚠️  %s shared by %q and %q\n", id, prev, tuple)
		}
		seen[id] = tuple

		if i < 10 {
			fmt.Printf("%-32s %s\n", id, tuple)
		}
	}

	fmt.Printf("\n%d distinct identifiers, %d collisions\n", len(seen), collisions)
}
