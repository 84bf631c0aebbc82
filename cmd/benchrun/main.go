package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// run prints the combined output of a command and returns its exit code.
// Failing to start the command counts as exit code 1.
func run(name string, args ...string) int {
	out, err := exec.Command(name, args...).CombinedOutput()
	os.Stdout.Write(out)
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "benchrun: %s: %v\n", name, err)
	return 1
}

func main() {
	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, depth := range []string{"3", "4", "5", "6"} {
		run("go", "run", "./cmd/perft", "-depth", depth, "-label", "Initial")
	}
	run("go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete")
	run("go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "4", "-label", "Kiwipete")

	// Correctness gate against dragontoothmg on the busiest position.
	fmt.Println("\nVerify:")
	code = 0
	for _, engine := range []string{"dragontooth", "goose"} {
		if c := run("go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-verify", "-engine", engine); c != 0 {
			code = c
		}
	}
	os.Exit(code)
}
