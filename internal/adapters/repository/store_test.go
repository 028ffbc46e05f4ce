package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaxTheDreaded/player-manager/internal/adapters/repository"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
)

func result(participant uuid.UUID, rating float64) model.RatingResult {
	return model.RatingResult{
		ParticipantID: participant,
		MatchID:       uuid.New(),
		Rating:        rating,
		Involvement:   model.NormalInvolvement,
	}
}

func TestRecordAndLookup(t *testing.T) {
	Convey("Given a memory store", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()
		pid := uuid.New()

		Convey("An unknown participant yields not found", func() {
			_, err := store.Latest(ctx, pid)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = store.Form(ctx, pid)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Recording makes the result the latest", func() {
			So(store.Record(ctx, result(pid, 7.2)), ShouldBeNil)
			latest, err := store.Latest(ctx, pid)
			So(err, ShouldBeNil)
			So(latest.Rating, ShouldEqual, 7.2)
			So(store.Count(ctx), ShouldEqual, 1)
		})

		Convey("A result without identifiers is rejected", func() {
			err := store.Record(ctx, model.RatingResult{MatchID: uuid.New()})
			So(errors.Is(err, repository.ErrInvalidResult), ShouldBeTrue)
			err = store.Record(ctx, model.RatingResult{ParticipantID: pid})
			So(errors.Is(err, repository.ErrInvalidResult), ShouldBeTrue)
		})

		Convey("History comes back most recent first", func() {
			for _, r := range []float64{6.0, 6.5, 7.0} {
				So(store.Record(ctx, result(pid, r)), ShouldBeNil)
			}
			h, err := store.History(ctx, pid, 2)
			So(err, ShouldBeNil)
			So(h, ShouldHaveLength, 2)
			So(h[0].Rating, ShouldEqual, 7.0)
			So(h[1].Rating, ShouldEqual, 6.5)
		})

		Convey("A non-positive history limit is rejected", func() {
			_, err := store.History(ctx, pid, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}

func TestFormWindow(t *testing.T) {
	Convey("Given a store with the default five-match window", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()
		pid := uuid.New()

		Convey("A short history averages what exists", func() {
			So(store.Record(ctx, result(pid, 6.0)), ShouldBeNil)
			So(store.Record(ctx, result(pid, 8.0)), ShouldBeNil)
			form, err := store.Form(ctx, pid)
			So(err, ShouldBeNil)
			So(form, ShouldAlmostEqual, 7.0, 1e-9)
		})

		Convey("Older matches fall out of the window", func() {
			ratings := []float64{4.5, 9.0, 7.0, 6.0, 8.0, 7.5, 6.5}
			for _, r := range ratings {
				So(store.Record(ctx, result(pid, r)), ShouldBeNil)
			}
			form, err := store.Form(ctx, pid)
			So(err, ShouldBeNil)
			// mean of the last five: 7.0, 6.0, 8.0, 7.5, 6.5
			So(form, ShouldAlmostEqual, 7.0, 1e-9)
		})
	})

	Convey("Given a custom three-match window", t, func() {
		store := repository.NewMemoryStore(repository.WithFormWindow(3))
		ctx := context.Background()
		pid := uuid.New()
		for _, r := range []float64{5.0, 7.0, 7.0, 7.0} {
			So(store.Record(ctx, result(pid, r)), ShouldBeNil)
		}
		form, err := store.Form(ctx, pid)
		So(err, ShouldBeNil)
		So(form, ShouldAlmostEqual, 7.0, 1e-9)
	})
}

func TestConcurrentRecording(t *testing.T) {
	Convey("Given many workers recording across shards", t, func() {
		store := repository.NewMemoryStore(repository.WithShardCount(8))
		ctx := context.Background()

		const participants = 50
		const matchesEach = 10
		ids := make([]uuid.UUID, participants)
		for i := range ids {
			ids[i] = uuid.New()
		}

		var wg sync.WaitGroup
		for _, pid := range ids {
			wg.Add(1)
			go func(pid uuid.UUID) {
				defer wg.Done()
				for m := 0; m < matchesEach; m++ {
					if err := store.Record(ctx, result(pid, 6.0+float64(m)*0.1)); err != nil {
						panic(fmt.Sprintf("record: %v", err))
					}
				}
			}(pid)
		}
		wg.Wait()

		Convey("Every participant keeps a full, ordered history", func() {
			So(store.Count(ctx), ShouldEqual, participants)
			for _, pid := range ids {
				h, err := store.History(ctx, pid, matchesEach)
				So(err, ShouldBeNil)
				So(h, ShouldHaveLength, matchesEach)
				So(h[0].Rating, ShouldAlmostEqual, 6.9, 1e-9)
			}
		})
	})
}
