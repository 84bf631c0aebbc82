package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/coremg"
	"chess-core/fen"
)

func main() {
	fenStr := flag.String("fen", fen.StartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	moves := flag.String("moves", "", "Space-separated coordinate moves (e2e4 e7e5) played before counting")
	verify := flag.Bool("verify", false, "Cross-check every root move against a reference engine; exit 1 on mismatch")
	engine := flag.String("engine", "dragontooth", "Reference engine for -verify: dragontooth or goose")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}
	reference, ok := referenceEngines[*engine]
	if !ok {
		fmt.Fprintf(os.Stderr, "-engine must be dragontooth or goose, got %q\n", *engine)
		os.Exit(2)
	}
	if *repeat <= 0 {
		fmt.Fprintln(os.Stderr, "-repeat must be > 0")
		os.Exit(2)
	}

	board, err := fen.Parse(*fenStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fen.Parse error: %v\n", err)
		os.Exit(2)
	}
	gen := coremg.NewGenerator(nil)
	for _, text := range strings.Fields(*moves) {
		m, err := gen.ParseMove(board, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "-moves: %v\n", err)
			os.Exit(2)
		}
		gen.MakeMove(board, m, coremg.AllMoves)
	}

	if *verify {
		os.Exit(runVerify(gen, board, *depth, *engine, reference))
	}

	// Optional divide output
	if *divide {
		counts := divideByText(gen, board, *depth)
		keys := maps.Keys(counts)
		slices.Sort(keys)
		var sum uint64
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
			sum += counts[k]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += gen.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func divideByText(gen *coremg.Generator, b *coremg.Board, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	for m, n := range gen.PerftDivide(b, depth) {
		counts[m.String()] = n
	}
	return counts
}

// referenceDivide returns the per-root-move counts of an independent
// generator for the position in fenStr.
type referenceDivide func(fenStr string, depth int) (map[string]uint64, error)

var referenceEngines = map[string]referenceDivide{
	"dragontooth": dragontoothDivide,
	"goose":       gooseDivide,
}

func dragontoothDivide(fenStr string, depth int) (map[string]uint64, error) {
	ref := dragontoothmg.ParseFen(fenStr)
	out := make(map[string]uint64)
	for _, m := range ref.GenerateLegalMoves() {
		m := m
		undo := ref.Apply(m)
		out[m.String()] = dragontoothPerft(&ref, depth-1)
		undo()
	}
	return out, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

func gooseDivide(fenStr string, depth int) (map[string]uint64, error) {
	ref, err := goosemg.ParseFEN(fenStr)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64)
	for m, n := range goosemg.PerftDivide(ref, depth) {
		out[m.String()] = n
	}
	return out, nil
}

// runVerify compares the divide of board against the reference engine and
// prints every root move whose count or presence differs.
func runVerify(gen *coremg.Generator, board *coremg.Board, depth int, name string, reference referenceDivide) int {
	got := divideByText(gen, board, depth)
	want, err := reference(fen.Format(board), depth)
	if err != nil {
		log.Printf("perft: %s: %v", name, err)
		return 2
	}

	keys := maps.Keys(want)
	for k := range got {
		if _, ok := want[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	mismatches := 0
	var total uint64
	for _, k := range keys {
		g, inGot := got[k]
		w, inWant := want[k]
		total += g
		switch {
		case !inWant:
			fmt.Printf("%s: %d (not legal for %s)\n", k, g, name)
			mismatches++
		case !inGot:
			fmt.Printf("%s: missing (%s %d)\n", k, name, w)
			mismatches++
		case g != w:
			fmt.Printf("%s: %d want %d\n", k, g, w)
			mismatches++
		}
	}
	fmt.Printf("Total: %d, %d root moves, %d mismatches\n", total, len(keys), mismatches)
	if mismatches > 0 {
		return 1
	}
	return 0
}
