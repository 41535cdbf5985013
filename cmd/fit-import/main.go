// fit-import extracts body stats from a FIT file (user profile and weight
// scale messages) and emits a measurement entry JSON ready for body-inspect
// or the ingestion API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/physiq/physiq-server/pkg/domain/anthropometry"
)

func main() {
	inputPath := flag.String("input", "", "Path to FIT file")
	outputPath := flag.String("output", "", "Path to write entry JSON (default stdout)")
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

	fitDec := decoder.New(bytes.NewReader(data))
	fitData, err := fitDec.Decode()
	if err != nil {
		fmt.Printf("Failed to decode FIT file: %v\n", err)
		os.Exit(1)
	}

	entry := &anthropometry.MeasurementEntry{
		ID:         uuid.NewString(),
		RecordedAt: time.Now().UTC(),
	}

	for i := range fitData.Messages {
		msg := &fitData.Messages[i]
		switch msg.Num {
		case typedef.MesgNumUserProfile:
			up := mesgdef.NewUserProfile(msg)
			switch up.Gender {
			case typedef.GenderFemale:
				entry.Profile.Gender = anthropometry.GenderFemale
			case typedef.GenderMale:
				entry.Profile.Gender = anthropometry.GenderMale
			default:
				entry.Profile.Gender = anthropometry.GenderUnspecified
			}
			if up.Age != 0xFF {
				entry.Profile.Age = int(up.Age)
			}
			// Height arrives in metres, weight in kilograms
			if h := up.HeightScaled(); !math.IsNaN(h) && h > 0 {
				entry.BodyStats.HeightCm = h * 100
			}
			if w := up.WeightScaled(); !math.IsNaN(w) && w > 0 {
				entry.BodyStats.WeightKg = w
			}
		case typedef.MesgNumWeightScale:
			// Prefer an actual scale reading over the static profile weight
			ws := mesgdef.NewWeightScale(msg)
			if w := ws.WeightScaled(); !math.IsNaN(w) && w > 0 {
				entry.BodyStats.WeightKg = w
			}
		}
	}

	if entry.BodyStats.HeightCm == 0 && entry.BodyStats.WeightKg == 0 {
		fmt.Println("No user profile or weight scale data found in FIT file")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		fmt.Printf("Failed to marshal entry: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(*outputPath, out, 0o644); err != nil {
		fmt.Printf("Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (height %.1f cm, weight %.1f kg)\n",
		*outputPath, entry.BodyStats.HeightCm, entry.BodyStats.WeightKg)
}
