package devdata_test

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/campuspulse/campuspulse/internal/adapters/loader"
	"github.com/campuspulse/campuspulse/internal/devdata"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generator configured for a small campus", t, func() {
		cfg := devdata.NewConfig(
			devdata.WithBuildings(8),
			devdata.WithDate("2025-03-03"),
			devdata.WithSeed(1),
			devdata.WithOutDir(t.TempDir()),
		)

		Convey("When generating", func() {
			buildingsPath, occupancyPath, err := devdata.Generate(cfg)
			So(err, ShouldBeNil)

			Convey("Then the buildings file loads through the production loader", func() {
				records, err := loader.LoadBuildings(buildingsPath)
				So(err, ShouldBeNil)
				So(len(records), ShouldBeGreaterThanOrEqualTo, 8)

				wings := 0
				for _, r := range records {
					So(r.DisplayCode, ShouldNotBeEmpty)
					So(r.Name, ShouldNotBeEmpty)
					last := r.DisplayCode[len(r.DisplayCode)-1]
					if last == 'N' || last == 'S' {
						wings++
					}
				}

				Convey("And some buildings are split into wings", func() {
					So(wings, ShouldBeGreaterThan, 0)
				})
			})

			Convey("Then the occupancy file loads through the production loader", func() {
				obs, err := loader.LoadOccupancy(occupancyPath, nil)
				So(err, ShouldBeNil)
				So(obs, ShouldNotBeEmpty)
				So(obs[0].Date, ShouldEqual, "2025-03-03")

				Convey("And the day covers every ten-minute bin", func() {
					bins := map[string]bool{}
					for _, o := range obs {
						bins[o.Date] = true
						So(o.Minute%10, ShouldEqual, 0)
						So(o.Count, ShouldBeGreaterThanOrEqualTo, 0)
					}
					So(bins, ShouldHaveLength, 1)
				})
			})
		})
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestGenerateDeterminism(t *testing.T) {
	Convey("Given two runs with the same seed", t, func() {
		first := devdata.NewConfig(devdata.WithBuildings(6), devdata.WithSeed(7), devdata.WithOutDir(t.TempDir()))
		second := devdata.NewConfig(devdata.WithBuildings(6), devdata.WithSeed(7), devdata.WithOutDir(t.TempDir()))

		Convey("When generating both", func() {
			fb, fo, err := devdata.Generate(first)
			So(err, ShouldBeNil)
			sb, so, err := devdata.Generate(second)
			So(err, ShouldBeNil)

			Convey("Then the outputs are identical", func() {
				So(readFile(t, fb), ShouldEqual, readFile(t, sb))
				So(readFile(t, fo), ShouldEqual, readFile(t, so))
			})
		})
	})
}
