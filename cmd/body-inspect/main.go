// body-inspect runs the classification engine over a measurement entry
// stored as JSON and prints a human-readable report. Useful for checking
// how an entry classifies without deploying anything.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/physiq/physiq-server/pkg/domain/anthropometry"
)

func main() {
	inputPath := flag.String("input", "", "Path to measurement entry JSON")
	asJSON := flag.Bool("json", false, "Print the raw report as JSON")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Please provide input file with -input")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	var entry anthropometry.MeasurementEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		fmt.Printf("Failed to parse entry: %v\n", err)
		os.Exit(1)
	}

	report := anthropometry.Classify(&entry)

	if *asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Printf("Failed to marshal report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printReport(report)
}

func printReport(report *anthropometry.Report) {
	if s := report.Sanitized; s != nil {
		fmt.Printf("Profile: %s", s.Gender)
		if s.Age > 0 {
			fmt.Printf(", age %d", s.Age)
		}
		fmt.Println()
		if s.HeightCm > 0 && s.WeightKg > 0 {
			fmt.Printf("Height: %.1f cm  Weight: %.1f kg  BMI: %.1f\n", s.HeightCm, s.WeightKg, s.BMI)
		}
	}

	for _, w := range report.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	for _, e := range report.Errors {
		fmt.Printf("Error: %s\n", e)
	}

	if len(report.Ratios) > 0 {
		fmt.Println("\nRatios:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Ratio\tValue")
		fmt.Fprintln(w, "-----\t-----")
		for _, name := range []string{
			anthropometry.RatioWHR,
			anthropometry.RatioWHtR,
			anthropometry.RatioSHR,
			anthropometry.RatioBHR,
			anthropometry.RatioSWR,
		} {
			if v, ok := report.Ratios[name]; ok {
				fmt.Fprintf(w, "%s\t%.3f\n", name, v)
			}
		}
		w.Flush()
	}

	fmt.Println("\nBody shape:")
	if report.Shape.Available {
		fmt.Printf("  %s (%.0f%% confidence)\n", report.Shape.Primary, report.Shape.Confidence*100)
		fmt.Printf("  %s\n", report.Shape.Reason)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "  Shape\tProbability")
		for _, r := range report.Shape.Ranked {
			fmt.Fprintf(w, "  %s\t%.1f%%\n", r.Label, r.Probability*100)
		}
		w.Flush()
	} else {
		fmt.Printf("  unavailable: %s\n", report.Shape.Reason)
	}

	if st := report.Somatotype; st != nil {
		fmt.Printf("\nSomatotype (%s): %s\n", st.Method, st.Dominant)
		if st.Triplet != nil {
			fmt.Printf("  Endo %.1f / Meso %.1f / Ecto %.1f\n",
				st.Triplet.Endomorphy, st.Triplet.Mesomorphy, st.Triplet.Ectomorphy)
		}
		fmt.Printf("  %s\n", st.Reason)
	}

	if len(report.Tips) > 0 {
		fmt.Println("\nTips:")
		for _, tip := range report.Tips {
			fmt.Printf("  - %s\n", tip)
		}
	}

	if len(report.Errors) > 0 {
		fmt.Println("\n" + strings.Repeat("-", 40))
		fmt.Println("Classification incomplete, fix the errors above and retry.")
		os.Exit(1)
	}
}
