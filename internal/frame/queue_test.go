package frame_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellview/internal/frame"
)

var _ = Describe("Queue", func() {
	var (
		q   *frame.Queue
		now time.Time
	)

	BeforeEach(func() {
		q = frame.NewQueue()
		now = time.Unix(0, 0)
	})

	It("never issues the zero ID", func() {
		Expect(q.Request(func(time.Time) {})).NotTo(Equal(frame.ID(0)))
	})

	It("runs callbacks in request order with the flush time", func() {
		var order []int
		var seen time.Time
		q.Request(func(time.Time) { order = append(order, 1) })
		q.Request(func(t time.Time) { order = append(order, 2); seen = t })

		Expect(q.Flush(now)).To(Equal(2))
		Expect(order).To(Equal([]int{1, 2}))
		Expect(seen).To(Equal(now))
		Expect(q.Pending()).To(BeZero())
	})

	It("defers callbacks requested during a flush to the next flush", func() {
		fired := 0
		var again frame.Callback
		again = func(time.Time) {
			fired++
			q.Request(again)
		}
		q.Request(again)

		Expect(q.Flush(now)).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))
		Expect(q.Flush(now)).To(Equal(1))
		Expect(fired).To(Equal(2))
	})

	It("skips cancelled callbacks", func() {
		fired := false
		id := q.Request(func(time.Time) { fired = true })
		q.Cancel(id)

		Expect(q.Flush(now)).To(BeZero())
		Expect(fired).To(BeFalse())
	})

	It("honours cancellation issued by an earlier callback in the same flush", func() {
		fired := false
		var victim frame.ID
		q.Request(func(time.Time) { q.Cancel(victim) })
		victim = q.Request(func(time.Time) { fired = true })

		Expect(q.Flush(now)).To(Equal(1))
		Expect(fired).To(BeFalse())
	})

	It("ignores unknown and already-fired IDs", func() {
		id := q.Request(func(time.Time) {})
		q.Flush(now)

		Expect(func() { q.Cancel(id) }).NotTo(Panic())
		Expect(func() { q.Cancel(9999) }).NotTo(Panic())
	})
})
