package frame_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellview/internal/frame"
)

var _ = Describe("Scheduler", func() {
	var (
		q      *frame.Queue
		s      *frame.Scheduler
		faults []error
		now    time.Time
	)

	BeforeEach(func() {
		q = frame.NewQueue()
		faults = nil
		s = frame.New(q, frame.WithFaultHandler(func(err error) { faults = append(faults, err) }))
		now = time.Unix(0, 0)
	})

	flush := func(n int) {
		for i := 0; i < n; i++ {
			now = now.Add(16 * time.Millisecond)
			q.Flush(now)
		}
	}

	Describe("Start", func() {
		It("schedules exactly one callback", func() {
			Expect(s.Start(func(time.Time) error { return nil })).To(BeTrue())
			Expect(s.Running()).To(BeTrue())
			Expect(s.Pending()).To(BeTrue())
			Expect(q.Pending()).To(Equal(1))
		})

		It("rejects a second start without an intervening stop", func() {
			calls := 0
			step := func(time.Time) error { calls++; return nil }

			Expect(s.Start(step)).To(BeTrue())
			Expect(s.Start(step)).To(BeFalse())
			Expect(q.Pending()).To(Equal(1))

			flush(1)
			Expect(calls).To(Equal(1))
			Expect(q.Pending()).To(Equal(1))
		})

		It("rejects a nil step", func() {
			Expect(s.Start(nil)).To(BeFalse())
			Expect(s.Running()).To(BeFalse())
		})
	})

	Describe("Stop", func() {
		It("is idempotent", func() {
			s.Start(func(time.Time) error { return nil })
			s.Stop()
			s.Stop()

			Expect(s.Running()).To(BeFalse())
			Expect(s.Pending()).To(BeFalse())
			Expect(q.Pending()).To(BeZero())
		})

		It("is a no-op when idle", func() {
			Expect(func() { s.Stop() }).NotTo(Panic())
			Expect(s.Running()).To(BeFalse())
		})

		It("stops the chain when called from inside a frame", func() {
			calls := 0
			s.Start(func(time.Time) error {
				calls++
				s.Stop()
				return nil
			})

			flush(3)
			Expect(calls).To(Equal(1))
			Expect(q.Pending()).To(BeZero())
		})

		It("keeps a single pending callback when restarted from inside a frame", func() {
			var step frame.Step
			step = func(time.Time) error {
				s.Stop()
				s.Start(step)
				return nil
			}
			s.Start(step)

			flush(2)
			Expect(q.Pending()).To(Equal(1))
			Expect(s.Running()).To(BeTrue())
		})
	})

	It("keeps the handle set only while running", func() {
		Expect(s.Pending()).To(Equal(s.Running()))
		s.Start(func(time.Time) error { return nil })
		Expect(s.Pending()).To(Equal(s.Running()))
		flush(2)
		Expect(s.Pending()).To(Equal(s.Running()))
		s.Stop()
		Expect(s.Pending()).To(Equal(s.Running()))
	})

	It("runs exactly three frames when stopped before the fourth", func() {
		var ticks, draws int
		s.Start(func(time.Time) error {
			ticks++
			draws++
			return nil
		})

		flush(3)
		s.Stop()
		flush(2)

		Expect(ticks).To(Equal(3))
		Expect(draws).To(Equal(3))
		Expect(s.Frames()).To(Equal(uint64(3)))
	})

	Describe("faults", func() {
		boom := errors.New("boom")

		It("goes idle and surfaces a returned error", func() {
			calls := 0
			s.Start(func(time.Time) error {
				calls++
				if calls == 2 {
					return boom
				}
				return nil
			})

			flush(5)
			Expect(calls).To(Equal(2))
			Expect(s.Running()).To(BeFalse())
			Expect(q.Pending()).To(BeZero())
			Expect(s.Err()).To(MatchError(frame.ErrFrameFault))
			Expect(s.Err()).To(MatchError(boom))
			Expect(faults).To(HaveLen(1))

			var fe *frame.FaultError
			Expect(errors.As(s.Err(), &fe)).To(BeTrue())
			Expect(fe.Frame).To(Equal(uint64(2)))
		})

		It("recovers a panicking frame without rescheduling", func() {
			s.Start(func(time.Time) error { panic("corrupt buffer") })

			Expect(func() { flush(1) }).NotTo(Panic())
			Expect(s.Running()).To(BeFalse())
			Expect(s.Err()).To(MatchError(ContainSubstring("corrupt buffer")))
			flush(2)
			Expect(faults).To(HaveLen(1))
		})

		It("clears the fault on the next start", func() {
			s.Start(func(time.Time) error { return boom })
			flush(1)
			Expect(s.Err()).To(HaveOccurred())

			Expect(s.Start(func(time.Time) error { return nil })).To(BeTrue())
			Expect(s.Err()).NotTo(HaveOccurred())
		})
	})
})
