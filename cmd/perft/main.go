// Command perft counts move-generation leaf nodes for a position, optionally
// printing per-root-move counts and cross-checking against dragontoothmg.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"github.com/dehidehidehi-org/kairuku-chess/bitboard"
)

func main() {
	fen := flag.String("fen", bitboard.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check node counts against dragontoothmg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := bitboard.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := bitboard.PerftDivide(board, *depth)
		keys := make([]string, 0, len(div))
		byName := make(map[string]uint64, len(div))
		var sum uint64
		for m, n := range div {
			keys = append(keys, m.String())
			byName[m.String()] = n
			sum += n
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, byName[k])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += bitboard.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		reference := dragontoothmg.ParseFen(*fen)
		want := uint64(0)
		for i := 0; i < *repeat; i++ {
			want += uint64(dragontoothmg.Perft(&reference, *depth))
		}
		if totalNodes != want {
			fmt.Fprintf(os.Stderr, "MISMATCH: dragontoothmg counts %d nodes\n", want)
			os.Exit(1)
		}
		fmt.Printf("verified against dragontoothmg (%d nodes)\n", want)
	}
}
