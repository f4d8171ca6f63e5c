// Package main provides a performance benchmarking tool for the Timelane CLI.
// It generates synthetic roadmaps of increasing size, lays each one out several
// times, treats the first successful cached run as cold and averages the rest
// as warm, and writes the timings to a CSV file for performance analysis.
//
// Prerequisites:
// - timelane binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated roadmaps (default: a temp directory)
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Roadmap     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Sizes       map[string]int
	Order       []string
	Teams       int
}

func main() {
	if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	os.Exit(run())
}

// run executes the benchmark and returns the process exit code. A temporary
// work dir is removed before run returns.
func run() int {
	workDir := ""
	if len(os.Args) == 2 {
		workDir = os.Args[1]
	} else {
		dir, err := os.MkdirTemp("", "timelane-bench-")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			return 1
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	}

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes: map[string]int{
			"small":  500,
			"medium": 5000,
			"large":  50000,
			"huge":   200000,
		},
		Order: []string{"small", "medium", "large", "huge"},
		Teams: 12,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		return 1
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("timelane", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		return 1
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		return 1
	}

	printSummary(results)
	return 0
}

// checkPrerequisites verifies that the timelane binary exists and the work dir is usable.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("timelane"); err != nil {
		return fmt.Errorf("timelane binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("work dir %s is not usable: %w", config.WorkDir, err)
	}
	return nil
}

// generateRoadmap writes a CSV roadmap with n items spread over three years.
// The seed is fixed so that every run lays out the same data.
func generateRoadmap(path string, n, teams int) error {
	rng := rand.New(rand.NewPCG(42, uint64(n)))
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	var b strings.Builder
	b.WriteString("id,name,start,end,team,status\n")
	statuses := []string{"planned", "active", "done"}
	for i := range n {
		start := base.AddDate(0, 0, rng.IntN(3*365))
		end := start.AddDate(0, 0, rng.IntN(90))
		team := ""
		if rng.IntN(20) > 0 {
			team = fmt.Sprintf("team-%02d", rng.IntN(teams))
		}
		fmt.Fprintf(&b, "item-%06d,Item %d,%s,%s,%s,%s\n",
			i, i, start.Format("2006-01-02"), end.Format("2006-01-02"), team, statuses[rng.IntN(len(statuses))])
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// runBenchmarks executes all benchmark tests across the configured roadmap sizes
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d roadmaps, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Order), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, name := range config.Order {
		size := config.Sizes[name]
		path := filepath.Join(config.WorkDir, fmt.Sprintf("roadmap_%s.csv", name))
		if err := generateRoadmap(path, size, config.Teams); err != nil {
			return nil, fmt.Errorf("failed to generate %s roadmap: %w", name, err)
		}
		fmt.Printf("Benchmarking %s (%d items)\n", name, size)

		results = append(results, runBenchmarkSuite(config, name, path, "layout", "layout by team", ""))
		results = append(results, runBenchmarkSuite(config, name, path, "groups", "groups by status", "--group-by status"))
	}

	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, roadmap, itemsFile, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, roadmap)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, itemsFile, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Roadmap:     roadmap,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a timelane command multiple times with the given cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, itemsFile, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, itemsFile, "--cache-backend", cacheBackend}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("timelane", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Layout completed in") &&
		strings.Contains(outputStr, "Cache backend")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/timelane_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"roadmap", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Roadmap, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "layout", "Layout:")
	printCommandSummary(results, "groups", "Groups:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Roadmap, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
