// This file is part of RARS-Go.
//
// RARS-Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// RARS-Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RARS-Go.  If not, see <https://www.gnu.org/licenses/>.

package timer

import (
	"testing"
	"time"

	"github.com/FrBrGeorge/rars/emulation"
	"github.com/FrBrGeorge/rars/hardware/csr"
	"github.com/FrBrGeorge/rars/hardware/interrupts"
	"github.com/FrBrGeorge/rars/hardware/memory"
	"github.com/FrBrGeorge/rars/hardware/memory/addresses"
	"github.com/FrBrGeorge/rars/test"
)

// a wall clock under test control.
type fakeClock struct {
	instant time.Time
}

func (clk *fakeClock) now() time.Time {
	return clk.instant
}

func (clk *fakeClock) advance(d time.Duration) {
	clk.instant = clk.instant.Add(d)
}

// harness assembles a timer whose wall clock is controllable and whose ticks
// are driven by hand, rather than by the tick goroutine, for determinism.
type harness struct {
	tmr *Timer
	mem *memory.Memory
	csr *csr.File
	irq *interrupts.Controller
	clk *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		mem: memory.NewMemory(),
		csr: csr.NewFile(),
		irq: interrupts.NewController(),
		clk: &fakeClock{instant: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	h.tmr = NewTimer(h.mem, h.mem, h.csr, h.irq)
	h.tmr.now = h.clk.now
	h.tmr.syncPoint = h.clk.now()

	// the watcher is created directly, without Start(), so that no tick
	// goroutine is running behind the test's back
	tc, err := newTimeCmp(h.mem)
	test.ExpectedSuccess(t, err)
	h.tmr.timeCmp = tc
	h.tmr.state = emulation.Paused

	return h
}

func (h *harness) enableInterrupts(t *testing.T) {
	t.Helper()
	test.ExpectedSuccess(t, h.csr.SetBit("uie", csr.TimerInterrupt))
	test.ExpectedSuccess(t, h.csr.SetBit("ustatus", csr.InterruptEnable))
}

func (h *harness) peek(t *testing.T, address uint32) uint32 {
	t.Helper()
	v, err := h.mem.PeekWord(address)
	test.ExpectedSuccess(t, err)
	return v
}

func TestPlayPauseAccumulation(t *testing.T) {
	h := newHarness(t)

	// time does not progress while paused
	h.clk.advance(100 * time.Millisecond)
	test.Equate(t, h.tmr.Elapsed(), 0)

	h.tmr.Play()
	h.clk.advance(10 * time.Millisecond)
	h.tmr.Pause()
	test.Equate(t, h.tmr.Elapsed(), 10)

	// wall clock time passing while paused is not accumulated
	h.clk.advance(500 * time.Millisecond)
	test.Equate(t, h.tmr.Elapsed(), 10)

	// elapsed time is the sum of all played intervals
	h.tmr.Play()
	h.clk.advance(7 * time.Millisecond)
	h.tmr.Pause()
	test.Equate(t, h.tmr.Elapsed(), 17)
}

func TestIdempotentLifecycle(t *testing.T) {
	h := newHarness(t)

	// repeated Play() does not re-anchor the synchronisation point
	h.tmr.Play()
	h.clk.advance(5 * time.Millisecond)
	h.tmr.Play()
	h.clk.advance(5 * time.Millisecond)
	test.Equate(t, h.tmr.Elapsed(), 10)

	// repeated Pause() does not accumulate anything twice
	h.tmr.Pause()
	h.tmr.Pause()
	h.clk.advance(5 * time.Millisecond)
	h.tmr.Pause()
	test.Equate(t, h.tmr.Elapsed(), 10)

	test.Equate(t, h.tmr.State().String(), "paused")
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.tmr.Play()
	h.clk.advance(42 * time.Millisecond)
	h.tmr.tick()

	test.Equate(t, h.peek(t, addresses.Time), 42)

	h.tmr.Reset()
	test.Equate(t, h.tmr.Elapsed(), 0)
	test.Equate(t, h.peek(t, addresses.Time), 0)
	test.Equate(t, h.peek(t, addresses.TimeHi), 0)

	// reset does not change the running state. time progresses again from
	// zero
	test.Equate(t, h.tmr.State().String(), "running")
	h.clk.advance(5 * time.Millisecond)
	test.Equate(t, h.tmr.Elapsed(), 5)
}

func TestTickPublishesTime(t *testing.T) {
	h := newHarness(t)

	h.tmr.Play()
	h.clk.advance(12 * time.Millisecond)
	h.tmr.tick()
	test.Equate(t, h.peek(t, addresses.Time), 12)
	test.Equate(t, h.peek(t, addresses.TimeHi), 0)

	// a value that does not fit the low word is split across both words
	h.clk.advance((1<<32 + 5 - 12) * time.Millisecond)
	h.tmr.tick()
	test.Equate(t, h.peek(t, addresses.Time), 5)
	test.Equate(t, h.peek(t, addresses.TimeHi), 1)

	// ticks while paused leave the registers alone
	h.tmr.Pause()
	h.tmr.Reset()
	h.tmr.tick()
	test.Equate(t, h.peek(t, addresses.Time), 0)
	test.Equate(t, h.peek(t, addresses.TimeHi), 0)
}

func TestInterruptRaisedOncePerWrite(t *testing.T) {
	h := newHarness(t)
	h.enableInterrupts(t)

	h.tmr.Play()

	// deadline 10ms from now
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 10))
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmpHi, 0))

	// not there yet
	h.clk.advance(5 * time.Millisecond)
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), false)

	// deadline passed
	h.clk.advance(10 * time.Millisecond)
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), true)

	_, ok := h.irq.AcknowledgeTimer()
	test.ExpectedSuccess(t, ok)

	// the condition is still true but the raise consumed the armed flag, so
	// no further interrupt until timecmp is written again
	h.clk.advance(50 * time.Millisecond)
	h.tmr.tick()
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), false)
	test.Equate(t, h.irq.RaisedTimer(), 1)

	// a fresh write re-arms
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 20))
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), true)
	test.Equate(t, h.irq.RaisedTimer(), 2)
}

func TestEnableBitsGateTheRaise(t *testing.T) {
	h := newHarness(t)
	h.tmr.Play()

	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 1))
	h.clk.advance(10 * time.Millisecond)

	// both bits clear: no raise
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), false)

	// timer enable alone is not enough
	test.ExpectedSuccess(t, h.csr.SetBit("uie", csr.TimerInterrupt))
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), false)

	// the armed flag survived the gated ticks: enabling the global bit now
	// raises without a fresh timecmp write
	test.ExpectedSuccess(t, h.csr.SetBit("ustatus", csr.InterruptEnable))
	h.tmr.tick()
	test.Equate(t, h.irq.TimerPending(), true)
	test.Equate(t, h.irq.RaisedTimer(), 1)
}

func TestRaiseTimerInterrupt(t *testing.T) {
	// the decision is a pure predicate over its inputs
	test.Equate(t, raiseTimerInterrupt(10, 10, true, true, true), true)
	test.Equate(t, raiseTimerInterrupt(11, 10, true, true, true), true)
	test.Equate(t, raiseTimerInterrupt(9, 10, true, true, true), false)
	test.Equate(t, raiseTimerInterrupt(10, 10, false, true, true), false)
	test.Equate(t, raiseTimerInterrupt(10, 10, true, false, true), false)
	test.Equate(t, raiseTimerInterrupt(10, 10, true, true, false), false)
}

func TestStopStartPreservesWatcher(t *testing.T) {
	mem := memory.NewMemory()
	tmr := NewTimer(mem, mem, csr.NewFile(), interrupts.NewController())

	test.ExpectedSuccess(t, tmr.Start())
	watcher := tmr.timeCmp

	// a second Start() is a no-op
	test.ExpectedSuccess(t, tmr.Start())
	test.Equate(t, tmr.timeCmp == watcher, true)

	tmr.Stop()
	test.Equate(t, tmr.State().String(), "stopped")

	// writes between Stop() and Start() are still observed
	test.ExpectedSuccess(t, mem.WriteWord(addresses.TimeCmpHi, 0x2))

	test.ExpectedSuccess(t, tmr.Start())
	test.Equate(t, tmr.timeCmp == watcher, true)

	cmp, armed := tmr.timeCmp.state()
	test.Equate(t, cmp, uint64(0x2)<<32)
	test.Equate(t, armed, true)

	tmr.Stop()

	// Stop() on a stopped timer is a no-op
	tmr.Stop()
}
