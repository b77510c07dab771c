package repository_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/campuspulse/campuspulse/internal/adapters/repository"
	"github.com/campuspulse/campuspulse/internal/domain/model"
)

func testRecords() []model.BuildingRecord {
	return []model.BuildingRecord{
		{DisplayCode: "191N", SensorCode: "191", Name: "North Avenue Hall North Wing", Category: model.CategoryResidential},
		{DisplayCode: "191S", SensorCode: "191", Name: "North Avenue Hall South Wing", Category: model.CategoryResidential},
		{DisplayCode: "050", SensorCode: "50", Name: "Gilbert Memorial Library", Category: model.CategoryNonResidential},
	}
}

func testObservations() []model.OccupancyObservation {
	return []model.OccupancyObservation{
		{Date: "2025-03-04", Hour: 9, Minute: 0, SensorCode: "191", Count: 30},
		{Date: "2025-03-03", Hour: 9, Minute: 0, SensorCode: "50", Count: 55},
		{Date: "2025-03-03", Hour: 9, Minute: 10, SensorCode: "50", Count: 60},
	}
}

func TestSnapshotIndexes(t *testing.T) {
	Convey("Given a snapshot built from records and observations", t, func() {
		snap := repository.NewSnapshot(testRecords(), testObservations())

		Convey("When reading the time-slice index", func() {
			slice := snap.Slice("2025-03-03", 9, 10)

			Convey("Then only that bucket's observations come back", func() {
				So(slice, ShouldHaveLength, 1)
				So(slice[0].Count, ShouldEqual, 60)
			})
		})

		Convey("When reading a bucket with no data", func() {
			So(snap.Slice("2025-03-03", 23, 50), ShouldBeNil)
		})

		Convey("When reading a full day", func() {
			So(snap.Day("2025-03-03"), ShouldHaveLength, 2)
			So(snap.Day("2025-03-05"), ShouldBeEmpty)
		})

		Convey("When reading the date list", func() {
			Convey("Then dates are sorted and de-duplicated", func() {
				So(snap.Dates(), ShouldResemble, []string{"2025-03-03", "2025-03-04"})
			})
		})

		Convey("When reading the categories", func() {
			So(snap.Categories(), ShouldResemble, []string{"Non-Residential", "Residential"})
		})

		Convey("When reading the category lookup", func() {
			So(snap.CategoryByDisplay()["191N"], ShouldEqual, model.CategoryResidential)
			So(snap.CategoryByDisplay()["050"], ShouldEqual, model.CategoryNonResidential)
		})

		Convey("When reading the derived bridge", func() {
			Convey("Then it pairs with this snapshot's records", func() {
				So(snap.Bridge().Expand("191"), ShouldResemble, []string{"191N", "191S"})
			})
		})

		Convey("When reading the counts", func() {
			So(snap.RecordCount(), ShouldEqual, 3)
			So(snap.ObservationCount(), ShouldEqual, 3)
		})
	})
}

func TestStorePublication(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := repository.NewStore()

		Convey("When reading before any publish", func() {
			snap, err := store.Current()

			Convey("Then it should report not loaded", func() {
				So(snap, ShouldBeNil)
				So(err, ShouldEqual, repository.ErrNotLoaded)
				So(store.Loaded(), ShouldBeFalse)
			})
		})

		Convey("When publishing a snapshot", func() {
			first := repository.NewSnapshot(testRecords(), testObservations())
			store.Replace(first)

			Convey("Then readers should see it", func() {
				snap, err := store.Current()
				So(err, ShouldBeNil)
				So(snap, ShouldEqual, first)
				So(store.Loaded(), ShouldBeTrue)
			})

			Convey("And when replacing it wholesale", func() {
				second := repository.NewSnapshot(nil, nil)
				store.Replace(second)

				snap, err := store.Current()
				So(err, ShouldBeNil)
				So(snap, ShouldEqual, second)
				So(snap.RecordCount(), ShouldEqual, 0)
			})
		})
	})
}
