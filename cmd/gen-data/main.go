// Command gen-data writes a synthetic campus data set for local runs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/campuspulse/campuspulse/internal/devdata"
)

func main() {
	var (
		buildings = flag.Int("buildings", 40, "Number of building records to generate")
		date      = flag.String("date", "2025-03-03", "Date of the generated occupancy day (YYYY-MM-DD)")
		seed      = flag.Int64("seed", 42, "Random seed")
		outDir    = flag.String("out", "data", "Output directory")
	)
	flag.Parse()

	cfg := devdata.NewConfig(
		devdata.WithBuildings(*buildings),
		devdata.WithDate(*date),
		devdata.WithSeed(*seed),
		devdata.WithOutDir(*outDir),
	)

	buildingsPath, occupancyPath, err := devdata.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate failed:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", buildingsPath)
	fmt.Println("wrote", occupancyPath)
}
