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
	"sync"

	"github.com/FrBrGeorge/rars/hardware/memory/addresses"
	"github.com/FrBrGeorge/rars/hardware/memory/bus"
	"github.com/FrBrGeorge/rars/logger"
)

// timeCmp watches the compare register words for writes by simulated code.
// It reassembles the 64-bit compare value from the two 32-bit halves and
// remembers that a write has happened (the armed flag) until the tick
// consumes it by raising an interrupt.
//
// Notify() runs on whatever goroutine executes the simulated store, at the
// same time as the tick goroutine reads the compare value, so the value and
// flag are a single lock-guarded compound. A tick racing a half-write may
// still observe one old half and one new half. That mirrors the register
// tearing of the real two-word layout and is accepted: simulated code writes
// both halves before expecting a deadline.
type timeCmp struct {
	crit  sync.Mutex
	value uint64
	armed bool
}

// newTimeCmp subscribes the watcher to the 8-byte compare register range.
// The returned error can only be a memory address error, which callers must
// treat as fatal.
func newTimeCmp(notifier bus.Notifier) (*timeCmp, error) {
	tc := &timeCmp{}

	err := notifier.Subscribe(addresses.TimeCmp, addresses.TimeCmp+7, tc)
	if err != nil {
		return nil, err
	}

	logger.Log("timer", "watching timecmp")

	return tc, nil
}

// Notify implements bus.Observer. Only write accesses matter; reads of the
// compare register are ignored.
//
// Each half is overwritten in place: writing one half never disturbs the
// other half's bits, and there is no ordering requirement between the two.
// Any write to either half arms the timer.
func (tc *timeCmp) Notify(notice bus.AccessNotice) {
	if notice.Kind != bus.Write {
		return
	}

	tc.crit.Lock()
	defer tc.crit.Unlock()

	switch notice.Address {
	case addresses.TimeCmp:
		tc.value = (tc.value &^ 0xffffffff) | uint64(notice.Value)
		tc.armed = true
	case addresses.TimeCmpHi:
		tc.value = (tc.value & 0xffffffff) | (uint64(notice.Value) << 32)
		tc.armed = true
	default:
		return
	}

	logger.Logf("timer", "%s <- %#08x", addresses.TimerRegisters[notice.Address], notice.Value)
}

// state returns the compare value and the armed flag as they stand.
func (tc *timeCmp) state() (uint64, bool) {
	tc.crit.Lock()
	defer tc.crit.Unlock()
	return tc.value, tc.armed
}

// disarm clears the armed flag. The next raise requires a fresh write to the
// compare register.
func (tc *timeCmp) disarm() {
	tc.crit.Lock()
	defer tc.crit.Unlock()
	tc.armed = false
}
