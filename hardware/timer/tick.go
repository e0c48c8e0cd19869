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
	"time"

	"github.com/FrBrGeorge/rars/emulation"
	"github.com/FrBrGeorge/rars/hardware/csr"
	"github.com/FrBrGeorge/rars/hardware/interrupts"
	"github.com/FrBrGeorge/rars/hardware/memory/addresses"
	"github.com/FrBrGeorge/rars/logger"
)

// TickPeriod is how often the timer re-evaluates itself while started.
const TickPeriod = 1 * time.Millisecond

// tickLoop runs until the quit channel is closed. Late ticks coalesce in the
// ticker; there is no catching up and no need for any. The done channel is
// closed on the way out, after any in-flight tick has completed.
func (tmr *Timer) tickLoop(quit chan struct{}, done chan struct{}) {
	defer close(done)

	tick := time.NewTicker(TickPeriod)
	defer tick.Stop()

	for {
		select {
		case <-quit:
			return
		case <-tick.C:
			tmr.tick()
		}
	}
}

// tick is a single invocation of the scheduler: republish the current time
// into the time registers and decide whether to raise a timer interrupt.
// Does nothing unless the timer is playing.
func (tmr *Timer) tick() {
	tmr.crit.Lock()
	if tmr.state != emulation.Running {
		tmr.crit.Unlock()
		return
	}
	now := tmr.elapsed()
	tmr.crit.Unlock()

	// the two words of the time register are separate bus transactions, low
	// word first, matching the hardware's own layout. the memory lock keeps
	// each word internally consistent; the seam between the words is visible
	// to simulated code just as it is on real hardware
	tmr.chipWriteWord(addresses.Time, uint32(now))
	tmr.chipWriteWord(addresses.TimeHi, uint32(now>>32))

	cmp, armed := tmr.timeCmp.state()

	// the enable bits are read fresh on every tick. simulated code may have
	// toggled them since the last one
	utie := tmr.csr.Bit("uie", csr.TimerInterrupt)
	uie := tmr.csr.Bit("ustatus", csr.InterruptEnable)

	if raiseTimerInterrupt(now, cmp, armed, utie, uie) {
		// disarm before delivery so that subsequent ticks do not re-fire on
		// the same write
		tmr.timeCmp.disarm()
		tmr.irq.RaiseTimer(interrupts.TimerCause)
		logger.Logf("timer", "interrupt raised at %dms (timecmp=%#016x)", now, cmp)
	}
}

// raiseTimerInterrupt is the interrupt decision, made once per tick. The
// decision is edge triggered on the armed flag, not level triggered on the
// comparison: once a raise consumes the flag, the sustained truth of
// now >= timecmp raises nothing until the compare register is written again.
//
// Note that the armed flag survives ticks where the enable bits are off. If
// simulated code meets the compare condition with interrupts disabled and
// enables them later, the raise happens on the first tick after enabling,
// without a fresh write. This is the RARS behaviour.
func raiseTimerInterrupt(now uint64, timecmp uint64, armed bool, utie bool, uie bool) bool {
	return now >= timecmp && armed && utie && uie
}
