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
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/FrBrGeorge/rars/emulation"
	"github.com/FrBrGeorge/rars/hardware/csr"
	"github.com/FrBrGeorge/rars/hardware/interrupts"
	"github.com/FrBrGeorge/rars/hardware/memory/addresses"
	"github.com/FrBrGeorge/rars/hardware/memory/bus"
	"github.com/FrBrGeorge/rars/logger"
)

// Timer implements the memory mapped millisecond timer of the machine.
type Timer struct {
	mem      bus.WordBus
	notifier bus.Notifier
	csr      *csr.File
	irq      *interrupts.Controller

	// crit guards the fields below. it is in-process state, deliberately
	// distinct from the memory lock
	crit sync.Mutex

	state emulation.State

	// accumulated is the number of milliseconds played before syncPoint.
	// while playing, the reported time is accumulated plus the wall-clock
	// duration since syncPoint; while paused it is accumulated alone
	accumulated uint64
	syncPoint   time.Time

	// the timecmp watcher. created by the first Start() and deliberately kept
	// across Stop()/Start() cycles: re-subscribing would risk duplicate
	// subscriptions and writes made while stopped must still be observed
	timeCmp *timeCmp

	// quit is closed by Stop() to halt the tick goroutine; done is closed by
	// the goroutine itself once its final tick has completed
	quit chan struct{}
	done chan struct{}

	// wall clock. replaced in tests
	now func() time.Time
}

// NewTimer is the preferred method of initialisation for the Timer type. The
// timer is created stopped; nothing happens until Start() is called.
func NewTimer(mem bus.WordBus, notifier bus.Notifier, csrFile *csr.File, irq *interrupts.Controller) *Timer {
	return &Timer{
		mem:       mem,
		notifier:  notifier,
		csr:       csrFile,
		irq:       irq,
		state:     emulation.Stopped,
		syncPoint: time.Now(),
		now:       time.Now,
	}
}

func (tmr *Timer) String() string {
	tmr.crit.Lock()
	state := tmr.state
	elapsed := tmr.elapsed()
	tmr.crit.Unlock()

	cmp := uint64(0)
	armed := false
	if tmr.timeCmp != nil {
		cmp, armed = tmr.timeCmp.state()
	}

	return fmt.Sprintf("time=%dms state=%s timecmp=%#016x armed=%v", elapsed, state, cmp, armed)
}

// Start creates the timecmp watcher (on the first call only) and begins the
// millisecond tick. Calling Start() on a machine that is already started is a
// no-op. The machine starts paused; call Play() to set time running.
//
// The returned error can only be a memory address error, meaning the timer
// has been wired to addresses outside the memory area. There is no recovery
// from that.
func (tmr *Timer) Start() error {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()

	if tmr.state != emulation.Stopped {
		return nil
	}

	if tmr.timeCmp == nil {
		tc, err := newTimeCmp(tmr.notifier)
		if err != nil {
			return err
		}
		tmr.timeCmp = tc
	}

	tmr.quit = make(chan struct{})
	tmr.done = make(chan struct{})
	go tmr.tickLoop(tmr.quit, tmr.done)

	tmr.state = emulation.Paused
	logger.Log("timer", "started")

	return nil
}

// Play resumes the progress of time. The synchronisation point is re-anchored
// to the current wall-clock instant so time continues from where it was
// frozen. Calling Play() while already playing is a no-op.
func (tmr *Timer) Play() {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()

	// guard against multiple plays
	if tmr.state != emulation.Paused {
		return
	}

	tmr.syncPoint = tmr.now()
	tmr.state = emulation.Running
	logger.Log("timer", "playing")
}

// Pause freezes the progress of time. The duration played since the last
// Play() is folded into the accumulator so that later reads are stable.
// Calling Pause() while already paused is a no-op.
func (tmr *Timer) Pause() {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()

	// guard against multiple pauses
	if tmr.state != emulation.Running {
		return
	}

	tmr.accumulated += uint64(tmr.now().Sub(tmr.syncPoint).Milliseconds())
	tmr.state = emulation.Paused
	logger.Logf("timer", "paused at %dms", tmr.accumulated)
}

// Reset zeroes the accumulator, re-anchors the synchronisation point and
// zeroes both time registers. It can be called in any state and does not
// change the state. The compare register and the armed flag are unaffected.
func (tmr *Timer) Reset() {
	tmr.crit.Lock()
	tmr.accumulated = 0
	tmr.syncPoint = tmr.now()
	tmr.crit.Unlock()

	tmr.chipWriteWord(addresses.Time, 0)
	tmr.chipWriteWord(addresses.TimeHi, 0)

	logger.Log("timer", "reset")
}

// Stop halts the tick goroutine and performs a Reset(). Calling Stop() on a
// stopped machine is a no-op.
//
// The timecmp watcher is not torn down: compare register writes made between
// Stop() and a later Start() are still observed.
func (tmr *Timer) Stop() {
	tmr.crit.Lock()

	if tmr.state == emulation.Stopped {
		tmr.crit.Unlock()
		return
	}

	if tmr.quit != nil {
		close(tmr.quit)
		tmr.quit = nil
	}
	done := tmr.done
	tmr.done = nil

	tmr.state = emulation.Stopped
	tmr.accumulated = 0
	tmr.syncPoint = tmr.now()
	tmr.crit.Unlock()

	// a tick already in flight must finish before the registers are zeroed,
	// otherwise it would rewrite a stale time value over the zeroes
	if done != nil {
		<-done
	}

	tmr.chipWriteWord(addresses.Time, 0)
	tmr.chipWriteWord(addresses.TimeHi, 0)

	logger.Log("timer", "stopped")
}

// State returns the current lifecycle state of the timer.
func (tmr *Timer) State() emulation.State {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()
	return tmr.state
}

// Elapsed returns the current timer value in milliseconds.
func (tmr *Timer) Elapsed() uint64 {
	tmr.crit.Lock()
	defer tmr.crit.Unlock()
	return tmr.elapsed()
}

// elapsed must be called with the critical section held.
func (tmr *Timer) elapsed() uint64 {
	if tmr.state == emulation.Running {
		return tmr.accumulated + uint64(tmr.now().Sub(tmr.syncPoint).Milliseconds())
	}
	return tmr.accumulated
}

// chipWriteWord writes a word to the machine's memory on the hardware side of
// the bus. A failed write means the timer was wired to an address outside the
// memory area. That is a mistake in the assembly of the machine, not a
// runtime condition, so it ends the process the way RARS does.
func (tmr *Timer) chipWriteWord(address uint32, value uint32) {
	if err := tmr.mem.ChipWriteWord(address, value); err != nil {
		logger.Logf("timer", "%v", err)
		logger.Write(os.Stderr)
		os.Exit(1)
	}
}
