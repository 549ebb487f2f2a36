package queue_test

import (
	"context"
	"testing"

	queue "github.com/praticodes/litloom/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a queue with capacity two", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When enqueuing within capacity", func() {
			So(q.Enqueue(ctx, queue.Job{JobID: "a", URL: "/book/show/1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{JobID: "b", URL: "/book/show/2"}), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)

			Convey("Then a third enqueue hits backpressure", func() {
				So(q.Enqueue(ctx, queue.Job{JobID: "c", URL: "/book/show/3"}), ShouldBeFalse)
			})

			Convey("And dequeue yields jobs in order", func() {
				jobs := q.Dequeue(ctx)
				So((<-jobs).JobID, ShouldEqual, "a")
				So((<-jobs).JobID, ShouldEqual, "b")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Enqueue(ctx, queue.Job{JobID: "a"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then further enqueues are rejected", func() {
				So(q.Enqueue(ctx, queue.Job{JobID: "b"}), ShouldBeFalse)
				So(q.IsClosed(), ShouldBeTrue)
			})

			Convey("And buffered jobs drain before the channel closes", func() {
				jobs := q.Dequeue(ctx)
				j, ok := <-jobs
				So(ok, ShouldBeTrue)
				So(j.JobID, ShouldEqual, "a")
				_, ok = <-jobs
				So(ok, ShouldBeFalse)
			})

			Convey("And closing twice reports the sentinel", func() {
				So(q.Close(), ShouldEqual, queue.ErrClosed)
			})
		})
	})
}
