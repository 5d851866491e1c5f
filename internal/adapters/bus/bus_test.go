package bus_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/adapters/bus"
)

func receiveOne(ch <-chan bus.Change) (bus.Change, bool) {
	select {
	case c, ok := <-ch:
		return c, ok
	case <-time.After(time.Second):
		return bus.Change{}, false
	}
}

func TestBus(t *testing.T) {
	Convey("Given a bus with two subscribers", t, func() {
		b := bus.New()
		ctx := context.Background()
		ch1, cancel1 := b.Subscribe(ctx)
		ch2, cancel2 := b.Subscribe(ctx)
		defer cancel1()
		defer cancel2()

		Convey("When a change is published", func() {
			b.Publish(bus.Change{Key: "thebeat_leads"})

			Convey("Then both subscribers see it", func() {
				c1, ok1 := receiveOne(ch1)
				c2, ok2 := receiveOne(ch2)
				So(ok1, ShouldBeTrue)
				So(ok2, ShouldBeTrue)
				So(c1.Key, ShouldEqual, "thebeat_leads")
				So(c2.Key, ShouldEqual, "thebeat_leads")
				So(c1.External, ShouldBeFalse)
			})
		})

		Convey("When a subscriber cancels", func() {
			cancel1()

			Convey("Then its channel closes and the other keeps receiving", func() {
				_, open := receiveOne(ch1)
				So(open, ShouldBeFalse)

				b.Publish(bus.Change{Key: "thebeat_events"})
				c, ok := receiveOne(ch2)
				So(ok, ShouldBeTrue)
				So(c.Key, ShouldEqual, "thebeat_events")
				So(b.Len(), ShouldEqual, 1)
			})
		})

		Convey("When a subscriber's buffer is full", func() {
			small := bus.New(bus.WithSubscriberBuffer(1))
			ch, cancel := small.Subscribe(ctx)
			defer cancel()

			small.Publish(bus.Change{Key: "a"})
			small.Publish(bus.Change{Key: "b"}) // dropped, buffer of one

			Convey("Then publishing never blocks and the first change is delivered", func() {
				c, ok := receiveOne(ch)
				So(ok, ShouldBeTrue)
				So(c.Key, ShouldEqual, "a")
			})
		})

		Convey("When the bus closes", func() {
			b.Close()

			Convey("Then subscriber channels close and later subscriptions are dead on arrival", func() {
				_, open := receiveOne(ch1)
				So(open, ShouldBeFalse)

				late, cancelLate := b.Subscribe(ctx)
				defer cancelLate()
				_, open = receiveOne(late)
				So(open, ShouldBeFalse)
			})
		})
	})
}
