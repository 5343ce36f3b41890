package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// sampleArea anchors generated coordinates so records cluster the way real
// city data does.
type sampleArea struct {
	name string
	lat  float64
	lon  float64
}

var sampleAreas = []sampleArea{
	{"Whitefield", 12.9698, 77.7500},
	{"Hebbal", 13.0358, 77.5970},
	{"Indiranagar", 12.9719, 77.6412},
	{"Koramangala", 12.9352, 77.6245},
	{"Jayanagar", 12.9308, 77.5838},
	{"Electronic City", 12.8399, 77.6770},
	{"Marathahalli", 12.9569, 77.7011},
	{"Yeshwanthpur", 13.0280, 77.5400},
	{"Majestic", 12.9767, 77.5713},
	{"Banashankari", 12.9250, 77.5460},
}

var sampleCauses = []string{
	"Overspeeding",
	"Drunk Driving",
	"Signal jumping",
	"Distracted driving",
	"Jaywalking",
	"Rash overtaking",
	"Poor visibility",
	"Vehicle malfunction",
}

var (
	sampleWeather = []string{"Clear", "Clear", "Cloudy", "Rain", "Fog"}
	sampleRoad    = []string{"Dry", "Dry", "Wet", "Under construction"}
	sampleLight   = []string{"Daylight", "Dusk", "Night - lit", "Night - unlit"}

	// Bottom-heavy on purpose so percentile classification has a spread
	// to cut.
	sampleSeverities = []string{"Minor", "Minor", "Minor", "Moderate", "Moderate", "Severe", "Fatal"}
)

var generateBase = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// generateCmd writes a synthetic accident CSV in the column layout the
// ingest command expects.
func generateCmd() *cobra.Command {
	var (
		count  int
		output string
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample accident CSV",
		Long: `generate writes a synthetic dataset in the column layout riskctl ingest
expects. The same seed always produces the same file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}

			rng := rand.New(rand.NewSource(seed))
			if err := writeSampleCSV(f, rng, count); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Printf("wrote %d records to %s\n", count, output)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 500, "number of records to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "accidents.csv", "output CSV path")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

// writeSampleCSV emits count synthetic accident rows. Formats vary on
// purpose: times mix 12- and 24-hour clocks, some areas are blank, and some
// response times are missing, matching the rough shape of field data.
func writeSampleCSV(w io.Writer, rng *rand.Rand, count int) error {
	cw := csv.NewWriter(w)

	header := []string{
		"accident_no", "date", "time", "day_of_week", "area",
		"latitude", "longitude", "severity", "fatalities", "injuries",
		"persons_involved", "cause", "weather", "road_condition",
		"light_condition", "police_response_min", "ambulance_response_min",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		area := sampleAreas[rng.Intn(len(sampleAreas))]
		date := generateBase.AddDate(0, 0, rng.Intn(365))
		severity := sampleSeverities[rng.Intn(len(sampleSeverities))]

		fatalities := 0
		injuries := rng.Intn(3)
		switch severity {
		case "Fatal":
			fatalities = 1 + rng.Intn(2)
			injuries = rng.Intn(4)
		case "Severe":
			injuries = 1 + rng.Intn(4)
		}

		areaName := area.name
		if rng.Intn(25) == 0 {
			areaName = "" // admitted under the Unknown sentinel
		}

		row := []string{
			fmt.Sprintf("ACC-%d-%05d", date.Year(), i+1),
			date.Format("2006-01-02"),
			clockString(rng.Intn(2) == 0, rng.Intn(24), rng.Intn(60)),
			date.Weekday().String(),
			areaName,
			fmt.Sprintf("%.6f", area.lat+jitter(rng)),
			fmt.Sprintf("%.6f", area.lon+jitter(rng)),
			severity,
			strconv.Itoa(fatalities),
			strconv.Itoa(injuries),
			strconv.Itoa(1 + fatalities + injuries + rng.Intn(3)),
			sampleCauses[rng.Intn(len(sampleCauses))],
			sampleWeather[rng.Intn(len(sampleWeather))],
			sampleRoad[rng.Intn(len(sampleRoad))],
			sampleLight[rng.Intn(len(sampleLight))],
			responseMinutes(rng),
			responseMinutes(rng),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// clockString renders the time in a 24-hour or a 12-hour AM/PM form.
func clockString(use24 bool, hour, minute int) string {
	if use24 {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	suffix := "AM"
	h := hour
	if h >= 12 {
		suffix = "PM"
		if h > 12 {
			h -= 12
		}
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}

func jitter(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 0.03
}

// responseMinutes is empty roughly one time in five, which keeps the null
// handling in response-time averages exercised.
func responseMinutes(rng *rand.Rand) string {
	if rng.Intn(5) == 0 {
		return ""
	}
	return strconv.Itoa(4 + rng.Intn(26))
}
