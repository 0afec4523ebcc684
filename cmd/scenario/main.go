// Command scenario runs a detonation scenario offline and prints per-zone
// safety tables and response protocols to stdout. It is a development and
// calibration tool; no network or Kafka involved.
//
// Usage:
//
//	go run ./cmd/scenario -zones 5 -ground-zero 2 -yield 5 \
//	  -wind-speed 8 -wind-direction 90 -step 0.5 -duration 6
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/couchcryptid/fallout-sim-service/internal/domain"
	"github.com/couchcryptid/fallout-sim-service/internal/simulation"
)

func main() {
	zones := flag.Int("zones", 5, "number of city zones")
	groundZero := flag.Int("ground-zero", 2, "zone index of the detonation")
	yieldKT := flag.Float64("yield", 5, "detonation yield in kilotons")
	windSpeed := flag.Float64("wind-speed", 0, "wind speed in m/s")
	windDirection := flag.Float64("wind-direction", 0, "wind direction in degrees")
	step := flag.Float64("step", 0.5, "simulated hours per step (must be <= 1)")
	duration := flag.Float64("duration", 6, "total simulated hours")
	flag.Parse()

	if code := run(*zones, *groundZero, *yieldKT, *windSpeed, *windDirection, *step, *duration); code != 0 {
		os.Exit(code)
	}
}

func run(zones, groundZero int, yieldKT, windSpeed, windDirection, step, duration float64) int {
	if step <= 0 || step > 1 {
		fmt.Fprintln(os.Stderr, "FATAL: -step must be in (0, 1]")
		return 1
	}

	sim, err := simulation.New(zones)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: create simulator: %v\n", err)
		return 1
	}
	sim.SetWind(windSpeed, windDirection)

	summary, err := sim.Trigger(groundZero, yieldKT)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: trigger incident: %v\n", err)
		return 1
	}

	fmt.Println("=== Detonation Scenario ===")
	fmt.Printf("incident:     %s\n", summary.IncidentID)
	fmt.Printf("ground zero:  zone %d\n", summary.GroundZero)
	fmt.Printf("yield:        %g kt\n", summary.YieldKT)
	fmt.Printf("wind:         %g m/s at %g°\n", windSpeed, windDirection)
	fmt.Printf("threat level: %s\n", summary.ThreatLevel)
	fmt.Println()

	printZoneTable(sim)
	printProtocols(sim.Protocols())

	for elapsed := step; elapsed <= duration+step/2; elapsed += step {
		snapshot, err := sim.Advance(step)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: advance: %v\n", err)
			return 1
		}

		fmt.Printf("--- t+%.1fh  threat=%s  evacuated=%v ---\n",
			snapshot.ElapsedHours, snapshot.ThreatLevel, snapshot.EvacuationZones)
		printZoneTable(sim)
	}

	fmt.Println("=== Final Protocols ===")
	printProtocols(sim.Protocols())
	return 0
}

func printZoneTable(sim *simulation.Simulator) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "zone\tradiation (Sv/h)\tstatus\tevacuated\tmedical\tshelter\trecommendation")
	for zone := 0; zone < sim.Zones(); zone++ {
		status, err := sim.ZoneStatus(zone)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%t\t%.1f\t%.0f\t%s\n",
			status.Zone, status.RadiationLevel, status.SafetyStatus,
			status.IsEvacuated, status.MedicalResources, status.ShelterCapacity,
			status.Recommendation)
	}
	w.Flush()
	fmt.Println()
}

func printProtocols(protocols map[string][]string) {
	categories := []string{
		domain.CategoryPublicSafety,
		domain.CategoryMedicalResponse,
		domain.CategoryInfrastructure,
		domain.CategoryCommunication,
	}

	for _, category := range categories {
		actions := protocols[category]
		if len(actions) == 0 {
			fmt.Printf("%s: (no actions)\n", category)
			continue
		}
		fmt.Printf("%s:\n", category)
		for _, action := range actions {
			fmt.Printf("  - %s\n", action)
		}
	}
	fmt.Println()
}
