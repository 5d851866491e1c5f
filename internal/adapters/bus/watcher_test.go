package bus_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/adapters/bus"
	"github.com/thebeat/pipeline/internal/adapters/storage"
	"github.com/thebeat/pipeline/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// collectKeys drains changes until the wanted key arrives or the deadline
// passes, returning every key seen.
func collectKeys(ch <-chan bus.Change, want string, deadline time.Duration) map[string]bus.Change {
	seen := make(map[string]bus.Change)
	timeout := time.After(deadline)
	for {
		select {
		case c := <-ch:
			seen[c.Key] = c
			if c.Key == want {
				return seen
			}
		case <-timeout:
			return seen
		}
	}
}

func TestWatcher(t *testing.T) {
	Convey("Given a watcher over a shared store file", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		path := filepath.Join(t.TempDir(), "store.json")
		local, err := storage.NewFileBackend(path)
		So(err, ShouldBeNil)

		b := bus.New(bus.WithSubscriberBuffer(64))
		w, err := bus.NewWatcher(path, storage.AllKeys(), local.Reload, b)
		So(err, ShouldBeNil)
		go w.Run(ctx)

		ch, unsubscribe := b.Subscribe(ctx)
		defer unsubscribe()

		Convey("When this process saves through its own backend", func() {
			So(local.Set(ctx, storage.KeyLeads, `[]`), ShouldBeNil)

			Convey("Then no external change is republished", func() {
				select {
				case c := <-ch:
					So(c, ShouldBeZeroValue) // fails with the unexpected change
				case <-time.After(300 * time.Millisecond):
				}
			})
		})

		Convey("When another process rewrites the file", func() {
			So(local.Set(ctx, storage.KeyLeads, `[]`), ShouldBeNil)

			other, err := storage.NewFileBackend(path)
			So(err, ShouldBeNil)
			So(other.Set(ctx, storage.KeyShowPageProgress, "3"), ShouldBeNil)

			Convey("Then every key is announced, scalar settings included", func() {
				seen := collectKeys(ch, storage.KeyShowPageProgress, 2*time.Second)

				change, ok := seen[storage.KeyShowPageProgress]
				So(ok, ShouldBeTrue)
				So(change.External, ShouldBeTrue)

				_, ok = seen[storage.KeyLeads]
				So(ok, ShouldBeTrue)

				v, found, err := local.Get(ctx, storage.KeyShowPageProgress)
				So(err, ShouldBeNil)
				So(found, ShouldBeTrue)
				So(v, ShouldEqual, "3")
			})
		})
	})
}
