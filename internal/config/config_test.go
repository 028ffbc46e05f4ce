package config_test

import (
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/MaxTheDreaded/player-manager/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.ShardCount, convey.ShouldEqual, 16)
			convey.So(cfg.FormWindow, convey.ShouldEqual, 5)
			convey.So(cfg.Fixtures, convey.ShouldEqual, 22)
		})

		convey.Convey("And the tuning overrides default to zero, meaning engine defaults", func() {
			convey.So(cfg.GoalWeight, convey.ShouldEqual, 0)
			convey.So(cfg.NegativeWeight, convey.ShouldEqual, 0)
			convey.So(cfg.BaseEventRate, convey.ShouldEqual, 0)
		})
	})
}
