package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given logger options", t, func() {
		Convey("When initializing with defaults", func() {
			So(Init(), ShouldBeNil)
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})

		Convey("When initializing with an unknown format", func() {
			So(Init(WithFormat("xml")), ShouldNotBeNil)
		})

		Convey("When initializing with an unknown level", func() {
			So(Init(WithLevel("loud")), ShouldNotBeNil)
		})
	})
}

func TestLoggerText(t *testing.T) {
	Convey("Given a text logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)

		Convey("When logging with fields", func() {
			Get().Info(context.Background(), "ranked", String("hero", "Axe"), Int("n", 3), Bool("cached", false))

			Convey("Then the record should carry fields and source", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "msg=ranked")
				So(out, ShouldContainSubstring, "hero=Axe")
				So(out, ShouldContainSubstring, "n=3")
				So(out, ShouldContainSubstring, "cached=false")
				So(out, ShouldContainSubstring, "source=")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When debug is below the level", func() {
			Get().Debug(context.Background(), "hidden")
			So(buf.String(), ShouldBeEmpty)

			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(context.Background(), "shown")
			So(buf.String(), ShouldContainSubstring, "shown")
			So(SetLevelString("info"), ShouldBeNil)
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithFormat(FormatJSON)), ShouldBeNil)

		Convey("When a named logger with bound fields logs an error", func() {
			l := Named("ranker").With(String("run", "r1"))
			l.Error(context.Background(), "failed", Error(errors.New("boom")), Duration("took", time.Second), Strings("team", []string{"Axe"}))

			Convey("Then the record should be valid JSON with grouped fields", func() {
				var rec map[string]any
				So(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec), ShouldBeNil)
				So(rec["level"], ShouldEqual, "ERROR")
				group, ok := rec["ranker"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(group["run"], ShouldEqual, "r1")
				So(group["error"], ShouldEqual, "boom")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		So(SetLevelString("info"), ShouldBeNil)
	})
}
