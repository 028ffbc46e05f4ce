package main

import (
	"context"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	app "github.com/MaxTheDreaded/player-manager/internal/app"
	"github.com/MaxTheDreaded/player-manager/internal/config"
	"github.com/MaxTheDreaded/player-manager/internal/domain/model"
	"github.com/MaxTheDreaded/player-manager/pkg/metrics"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MATCHDAY_METRICS_ADDR", ":8080")
			_ = os.Setenv("MATCHDAY_QUEUE_SIZE", "1000")
			_ = os.Setenv("MATCHDAY_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("MATCHDAY_METRICS_ADDR")
				_ = os.Unsetenv("MATCHDAY_QUEUE_SIZE")
				_ = os.Unsetenv("MATCHDAY_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithWorkerCount(8),
					app.WithQueueSize(2000),
					app.WithDedupeSize(1000),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestGenerateRoster(t *testing.T) {
	convey.Convey("Given the roster generator", t, func() {
		convey.Convey("When generating a full matchday roster", func() {
			rng := rand.New(rand.NewSource(7))
			roster := generateRoster(rng, 22)

			convey.Convey("Then every snapshot should be valid", func() {
				convey.So(roster, convey.ShouldHaveLength, 22)
				for _, snap := range roster {
					convey.So(snap.Validate(), convey.ShouldBeNil)
				}
			})

			convey.Convey("And roles should cycle goalkeeper first", func() {
				convey.So(roster[0].Role, convey.ShouldEqual, model.RoleGoalkeeper)
				convey.So(roster[9].Role, convey.ShouldEqual, model.RoleGoalkeeper)
				convey.So(roster[1].Role, convey.ShouldEqual, model.RoleCentreBack)
			})

			convey.Convey("And participant IDs should be distinct", func() {
				seen := make(map[string]struct{}, len(roster))
				for _, snap := range roster {
					seen[snap.ID.String()] = struct{}{}
				}
				convey.So(seen, convey.ShouldHaveLength, 22)
			})
		})

		convey.Convey("When generating an empty roster", func() {
			rng := rand.New(rand.NewSource(7))
			roster := generateRoster(rng, 0)

			convey.Convey("Then it should be empty", func() {
				convey.So(roster, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing service metrics updater", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then it should run until its context expires", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics update", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateServiceMetrics(svc)
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("MATCHDAY_METRICS_ADDR", "")
			defer func() { _ = os.Unsetenv("MATCHDAY_METRICS_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing service creation with invalid options", func() {
			convey.Convey("Then service should fall back to defaults", func() {
				svc := app.New(
					app.WithWorkerCount(0),
					app.WithQueueSize(0),
					app.WithDedupeSize(0),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				stats := svc.Stats()
				convey.So(stats["workerCount"], convey.ShouldBeGreaterThan, 0)
			})
		})
	})
}
