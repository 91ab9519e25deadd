// Package main prints the seed hash, leading RNG draws and permutation table
// for a seed, for cross-checking other implementations.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pthm-cable/heightgen/noise"
	"github.com/pthm-cable/heightgen/rng"
	"github.com/pthm-cable/heightgen/seed"
)

func main() {
	seedFlag := flag.String("seed", "my-world-seed", "Seed, text or integer")
	draws := flag.Int("n", 8, "Number of RNG draws to print")
	perm := flag.Bool("perm", true, "Print the noise permutation table")
	points := flag.String("points", "0.5,0.5;10.25,3.75", "Noise probe points as x,y pairs separated by ';'")
	flag.Parse()

	s := seed.Parse(*seedFlag)
	fmt.Printf("seed: %q (%T)\n", *seedFlag, s)
	fmt.Printf("hash: %d\n", s.Hash())

	r := rng.FromSeed(s)
	fmt.Println("draws:")
	for i := 0; i < *draws; i++ {
		fmt.Printf("  %d: %.17g\n", i, r.Next())
	}

	// The permutation shuffle uses a fresh generator, as in the kernel.
	sx := noise.NewSimplex(rng.FromSeed(s))
	if *perm {
		p := sx.Permutation()
		fmt.Println("perm:")
		for row := 0; row < len(p); row += 16 {
			vals := make([]string, 16)
			for i := range vals {
				vals[i] = strconv.Itoa(int(p[row+i]))
			}
			fmt.Printf("  %s\n", strings.Join(vals, " "))
		}
	}

	if *points == "" {
		return
	}
	fmt.Println("noise:")
	for _, pt := range strings.Split(*points, ";") {
		xy := strings.Split(pt, ",")
		if len(xy) != 2 {
			log.Fatalf("bad point %q", pt)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			log.Fatalf("bad point %q: %v", pt, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			log.Fatalf("bad point %q: %v", pt, err)
		}
		fmt.Printf("  (%g, %g): %.17g\n", x, y, sx.Noise2D(x, y))
	}
}
