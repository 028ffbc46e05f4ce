package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/MaxTheDreaded/player-manager/internal/app"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func validSnapshot() model.ParticipantSnapshot {
	return model.ParticipantSnapshot{
		ID:   uuid.New(),
		Role: model.RoleCentreMid,
		Technical: model.TechnicalAttributes{
			Dribbling: 60, Passing: 65, Shooting: 55, FirstTouch: 62, Tackling: 58, Crossing: 50,
		},
		Physical: model.PhysicalAttributes{
			Pace: 64, Stamina: 70, Strength: 61, Agility: 60, Jumping: 56,
		},
		Mental: model.MentalAttributes{
			Composure: 60, Vision: 63, WorkRate: 68, Determination: 62, Positioning: 59, Teamwork: 66,
		},
		Hidden: model.HiddenAttributes{
			Consistency: 58, Professionalism: 70, BigMatchTrait: 52, InjuryProneness: 20,
		},
		Form:    55,
		Fitness: 90,
		Fatigue: 15,
		Morale:  62,
	}
}

func validContext() model.MatchContext {
	return model.MatchContext{
		MatchID:           uuid.New(),
		Importance:        model.League,
		RegulationMinutes: 90,
		OppositionQuality: 50,
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()
		So(svc, ShouldNotBeNil)
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(5_000),
			service.WithDedupeSize(2_500),
			service.WithShardCount(4),
			service.WithFormWindow(3),
		)
		So(svc, ShouldNotBeNil)
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			Convey("Then it is marked as started", func() {
				So(svc.Stats()["started"], ShouldEqual, true)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.Stats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_SubmitFixture(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("A valid fixture is accepted", func() {
			So(svc.SubmitFixture(ctx, validSnapshot(), validContext(), 1), ShouldBeTrue)
		})

		Convey("A duplicate fixture is dropped but reported accepted", func() {
			snap := validSnapshot()
			mc := validContext()
			So(svc.SubmitFixture(ctx, snap, mc, 1), ShouldBeTrue)
			So(svc.SubmitFixture(ctx, snap, mc, 2), ShouldBeTrue)
		})

		Convey("An invalid snapshot is rejected", func() {
			snap := validSnapshot()
			snap.Fitness = 200
			So(svc.SubmitFixture(ctx, snap, validContext(), 1), ShouldBeFalse)
		})

		Convey("An invalid context is rejected", func() {
			mc := validContext()
			mc.RegulationMinutes = 0
			So(svc.SubmitFixture(ctx, validSnapshot(), mc, 1), ShouldBeFalse)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()
		So(svc.SubmitFixture(context.Background(), validSnapshot(), validContext(), 1), ShouldBeFalse)
	})
}

func TestService_Stats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("Stats before starting report the stopped state", func() {
			stats := svc.Stats()
			So(stats, ShouldNotBeNil)
			So(stats["started"], ShouldEqual, false)
		})
	})
}
