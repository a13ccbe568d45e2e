package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Geometry    string // sub-benchmark name, "" for benchmarks without one
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonRow is one report line: a benchmark result with its speed
// relative to the baseline geometry for the same operation.
type ComparisonRow struct {
	Operation   string
	Geometry    string
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
	Relative    float64 // baseline ns / this ns; 0 when no baseline applies
	HasBaseline bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	baseline   = flag.String("baseline", "general", "Baseline geometry for relative speed")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	// Parse benchmarks
	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	// Compare each geometry against the baseline
	rows := generateComparisons(results, *baseline)

	// Generate markdown report
	report := generateMarkdownReport(rows, *baseline)

	// Write output
	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	// Close input file if opened
	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkAllocateReleaseCascade/general-8    10000    1245 ns/op    0 B/op    0 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		// Parse benchmark line
		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		operation, geometry := splitBenchmarkName(name)
		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Geometry:    geometry,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// splitBenchmarkName breaks a benchmark name into operation and geometry.
// Format: Benchmark<Operation>/<geometry>-<procs> for per-geometry runs,
// Benchmark<Operation>-<procs> for the rest.
func splitBenchmarkName(name string) (string, string) {
	parts := strings.Split(name, "/")
	operation := strings.TrimPrefix(parts[0], "Benchmark")

	if len(parts) < 2 {
		// No sub-benchmark: strip the -N procs suffix from the operation
		if dashIdx := strings.LastIndex(operation, "-"); dashIdx > 0 {
			operation = operation[:dashIdx]
		}
		return operation, ""
	}

	geometry := parts[len(parts)-1]
	if dashIdx := strings.LastIndex(geometry, "-"); dashIdx > 0 {
		geometry = geometry[:dashIdx]
	}
	return operation, geometry
}

func generateComparisons(results []BenchmarkResult, baseline string) []ComparisonRow {
	// Baseline ns/op per operation
	baselineNs := make(map[string]float64)
	for _, result := range results {
		if result.Geometry == baseline {
			baselineNs[result.Operation] = result.NsPerOp
		}
	}

	var rows []ComparisonRow
	for _, result := range results {
		row := ComparisonRow{
			Operation:   result.Operation,
			Geometry:    result.Geometry,
			NsPerOp:     result.NsPerOp,
			BytesPerOp:  result.BytesPerOp,
			AllocsPerOp: result.AllocsPerOp,
		}
		if base, ok := baselineNs[result.Operation]; ok && result.Geometry != "" && result.NsPerOp > 0 {
			row.Relative = base / result.NsPerOp
			row.HasBaseline = true
		}
		rows = append(rows, row)
	}

	// Sort by operation then geometry
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Operation != rows[j].Operation {
			return rows[i].Operation < rows[j].Operation
		}
		return rows[i].Geometry < rows[j].Geometry
	})

	return rows
}

func generateMarkdownReport(rows []ComparisonRow, baseline string) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Summary statistics
	perGeometry := make(map[string][]float64)
	for _, row := range rows {
		if row.HasBaseline && row.Geometry != baseline {
			perGeometry[row.Geometry] = append(perGeometry[row.Geometry], row.Relative)
		}
	}

	geometries := make([]string, 0, len(perGeometry))
	for geo := range perGeometry {
		geometries = append(geometries, geo)
	}
	sort.Strings(geometries)

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(rows)))
	sb.WriteString(fmt.Sprintf("- **Baseline geometry**: %s\n", baseline))
	for _, geo := range geometries {
		speeds := perGeometry[geo]
		total := 0.0
		for _, s := range speeds {
			total += s
		}
		sb.WriteString(fmt.Sprintf("  - %s vs %s: **%.2fx** average over %d operations\n",
			geo, baseline, total/float64(len(speeds)), len(speeds)))
	}
	sb.WriteString("\n")

	// Detailed results table
	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Geometry | ns/op | B/op | allocs/op | vs " + baseline + " |\n")
	sb.WriteString("|-----------|----------|-------|------|-----------|------------|\n")

	for _, row := range rows {
		geometry := row.Geometry
		if geometry == "" {
			geometry = "-"
		}

		relative := "*n/a*"
		if row.HasBaseline {
			if row.Geometry == baseline {
				relative = "baseline"
			} else {
				indicator := "✓"
				if row.Relative < 1.0 {
					indicator = "✗"
				}
				relative = fmt.Sprintf("%.2fx %s", row.Relative, indicator)
			}
		}

		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			row.Operation,
			geometry,
			formatNumber(row.NsPerOp),
			formatBytes(row.BytesPerOp),
			formatNumber(float64(row.AllocsPerOp)),
			relative,
		))
	}

	sb.WriteString("\n")

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString(fmt.Sprintf("- **vs %s > 1.0**: this geometry is faster ✓\n", baseline))
	sb.WriteString(fmt.Sprintf("- **vs %s < 1.0**: this geometry is slower ✗\n", baseline))
	sb.WriteString("- **B/op and allocs/op**: Go-side allocations only; granted blocks live in the mapped heap\n")
	sb.WriteString("- Collect input with: `go test -bench=. -benchmem ./... | tee bench.txt`\n")

	return sb.String()
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
