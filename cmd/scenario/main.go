package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"leoroute/internal/scenario"
)

func main() {
	reportPath := flag.String("report", "scenario_report.csv", "path to write the CSV pass/fail report")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	results := make([]scenario.Result, 0)
	failures := 0
	for _, s := range scenario.All() {
		r := s.Run()
		results = append(results, r)
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			failures++
		}
		fmt.Printf("[%s] %-40s %s\n", status, r.Name, r.Detail)
	}

	if err := scenario.WriteCSVReport(*reportPath, results); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	fmt.Printf("\n%d/%d scenarios passed; report written to %s\n", len(results)-failures, len(results), *reportPath)

	if failures > 0 {
		os.Exit(1)
	}
}
