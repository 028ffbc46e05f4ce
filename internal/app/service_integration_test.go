package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/MaxTheDreaded/player-manager/internal/adapters/repository"
	service "github.com/MaxTheDreaded/player-manager/internal/app"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/internal/domain/ratingcurve"
	"github.com/MaxTheDreaded/player-manager/internal/engine"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a running matchday service", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When simulating a full matchday end-to-end", func() {
			const squad = 11
			snaps := make([]model.ParticipantSnapshot, squad)
			mc := validContext()
			for i := range snaps {
				snaps[i] = validSnapshot()
				So(svc.SubmitFixture(ctx, snaps[i], mc, int64(i)), ShouldBeTrue)
			}

			So(svc.Drain(ctx), ShouldBeNil)

			Convey("Then every participant has a recorded, bounded rating", func() {
				for _, snap := range snaps {
					result, err := svc.Latest(ctx, snap.ID)
					So(err, ShouldBeNil)
					So(result.MatchID, ShouldEqual, mc.MatchID)
					So(result.Rating, ShouldBeBetweenOrEqual, ratingcurve.Floor, ratingcurve.Ceiling)
				}
			})

			Convey("And form equals the single recorded rating", func() {
				result, err := svc.Latest(ctx, snaps[0].ID)
				So(err, ShouldBeNil)
				form, err := svc.Form(ctx, snaps[0].ID)
				So(err, ShouldBeNil)
				So(form, ShouldAlmostEqual, result.Rating, 1e-9)
			})

			Convey("And the recorded rating matches a direct engine run with the same seed", func() {
				result, err := svc.Latest(ctx, snaps[3].ID)
				So(err, ShouldBeNil)
				rep, err := engine.New().Simulate(ctx, snaps[3], mc, 3)
				So(err, ShouldBeNil)
				So(result.Rating, ShouldEqual, rep.Result.Rating)
				So(result.Events, ShouldResemble, rep.Result.Events)
			})
		})

		Convey("When the same fixture is submitted twice", func() {
			snap := validSnapshot()
			mc := validContext()
			So(svc.SubmitFixture(ctx, snap, mc, 10), ShouldBeTrue)
			So(svc.SubmitFixture(ctx, snap, mc, 99), ShouldBeTrue)
			So(svc.Drain(ctx), ShouldBeNil)

			Convey("Then only the first run is recorded", func() {
				history, err := svc.History(ctx, snap.ID, 10)
				So(err, ShouldBeNil)
				So(history, ShouldHaveLength, 1)

				rep, err := engine.New().Simulate(ctx, snap, mc, 10)
				So(err, ShouldBeNil)
				So(history[0].Rating, ShouldEqual, rep.Result.Rating)
			})
		})

		Convey("When querying a participant that never played", func() {
			_, err := svc.Latest(ctx, uuid.New())
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestServiceMultiMatchForm(t *testing.T) {
	Convey("Given one participant across several matchdays", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithFormWindow(3),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		snap := validSnapshot()
		const matches = 5
		for i := 0; i < matches; i++ {
			mc := validContext()
			So(svc.SubmitFixture(ctx, snap, mc, int64(100+i)), ShouldBeTrue)
		}
		So(svc.Drain(ctx), ShouldBeNil)

		Convey("The full history is retained", func() {
			history, err := svc.History(ctx, snap.ID, matches)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, matches)
		})

		Convey("Form averages only the window-most-recent ratings", func() {
			history, err := svc.History(ctx, snap.ID, 3)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 3)
			want := (history[0].Rating + history[1].Rating + history[2].Rating) / 3
			form, err := svc.Form(ctx, snap.ID)
			So(err, ShouldBeNil)
			So(form, ShouldAlmostEqual, want, 1e-9)
		})
	})
}
