// Stress test comparing sweep-and-prune against brute-force broad-phase
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"impulse3d/internal/physics"
	"impulse3d/internal/scene"

	flag "github.com/ogier/pflag"
)

func main() {
	counts := flag.StringP("counts", "c", "100,500,1000,2000,5000", "comma-separated body counts")
	seed := flag.Int64P("seed", "s", 42, "random seed")
	iterations := flag.IntP("iterations", "i", 10, "timed iterations per count")
	steps := flag.IntP("steps", "n", 0, "full pipeline steps to time after the broad-phase table")
	flag.Parse()

	testCounts, err := parseCounts(*counts)
	if err != nil {
		log.Fatalf("counts: %v", err)
	}

	failed := false
	for _, count := range testCounts {
		if !testBroadPhase(count, *seed, *iterations) {
			failed = true
		}
	}

	if *steps > 0 {
		for _, count := range testCounts {
			testPipeline(count, *seed, *steps)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func parseCounts(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative count %d", n)
		}
		out = append(out, n)
	}
	return out, nil
}

// spawnRain builds a world whose density stays reasonable as count grows.
func spawnRain(count int, seed int64) *physics.World {
	spawnSize := float32(50.0) + float32(count)/100.0

	w := physics.NewWorld()
	w.Logger = nil
	if _, err := scene.Rain(count, spawnSize, seed).Spawn(w); err != nil {
		log.Fatalf("spawn: %v", err)
	}
	return w
}

func testBroadPhase(count int, seed int64, iterations int) bool {
	w := spawnRain(count, seed)
	sap := physics.NewSweepAndPrune(count + 1)
	bounds := append([]physics.Bounds(nil), sap.Collect(w.Bodies)...)

	// Warm up
	sap.FindPairs(append([]physics.Bounds(nil), bounds...))

	sapStart := time.Now()
	var sapPairs []physics.BroadPair
	for i := 0; i < iterations; i++ {
		sapPairs = sap.FindPairs(sap.Collect(w.Bodies))
	}
	sapTime := time.Since(sapStart) / time.Duration(iterations)

	bruteStart := time.Now()
	var brutePairs []physics.BroadPair
	for i := 0; i < iterations; i++ {
		brutePairs = physics.BruteForcePairs(bounds)
	}
	bruteTime := time.Since(bruteStart) / time.Duration(iterations)

	speedup := float64(bruteTime) / float64(sapTime)
	match := samePairs(sapPairs, brutePairs)
	status := "ok"
	if !match {
		status = "MISMATCH"
	}

	fmt.Printf("%5d bodies: SAP %10v (%5d pairs) | brute %12v (%5d pairs) | %6.1fx speedup | %s\n",
		count, sapTime.Round(time.Microsecond), len(sapPairs),
		bruteTime.Round(time.Microsecond), len(brutePairs), speedup, status)
	return match
}

func samePairs(a, b []physics.BroadPair) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[physics.BroadPair]int, len(a))
	for _, p := range a {
		seen[p]++
		seen[physics.BroadPair{A: p.B, B: p.A}]++
	}
	for _, p := range b {
		if seen[p] == 0 {
			return false
		}
	}
	return true
}

func testPipeline(count int, seed int64, steps int) {
	w := spawnRain(count, seed)
	cfg := physics.DefaultConfig()
	cfg.Debug = false

	var total time.Duration
	var last physics.Report
	for i := 0; i < steps; i++ {
		frame := w.Step(1.0/60, cfg)
		total += frame.Report.Time
		last = frame.Report
	}
	fmt.Printf("%5d bodies: %d steps, avg %v/step, last frame %s\n",
		count, steps, (total / time.Duration(steps)).Round(time.Microsecond), last)
}
