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

	"github.com/FrBrGeorge/rars/hardware/memory/addresses"
	"github.com/FrBrGeorge/rars/test"
)

func TestTimeCmpAssembly(t *testing.T) {
	h := newHarness(t)

	// low half then high half reconstructs the exact 64-bit value
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 0x00000005))
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmpHi, 0x00000001))

	cmp, armed := h.tmr.timeCmp.state()
	test.Equate(t, cmp, uint64(0x0000000100000005))
	test.Equate(t, armed, true)

	// order of halves does not matter
	h2 := newHarness(t)
	test.ExpectedSuccess(t, h2.mem.WriteWord(addresses.TimeCmpHi, 0x00000001))
	test.ExpectedSuccess(t, h2.mem.WriteWord(addresses.TimeCmp, 0x00000005))
	cmp, _ = h2.tmr.timeCmp.state()
	test.Equate(t, cmp, uint64(0x0000000100000005))
}

func TestTimeCmpHalfWritePreservesOtherHalf(t *testing.T) {
	h := newHarness(t)

	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 0x00000003))
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmpHi, 0x00000002))

	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 0x00000099))
	cmp, _ := h.tmr.timeCmp.state()
	test.Equate(t, cmp, uint64(0x0000000200000099))

	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmpHi, 0x00000007))
	cmp, _ = h.tmr.timeCmp.state()
	test.Equate(t, cmp, uint64(0x0000000700000099))
}

func TestTimeCmpReadsDoNotArm(t *testing.T) {
	h := newHarness(t)

	// reads of the compare register generate notices but must not arm the
	// timer
	_, err := h.mem.ReadWord(addresses.TimeCmp)
	test.ExpectedSuccess(t, err)
	_, err = h.mem.ReadWord(addresses.TimeCmpHi)
	test.ExpectedSuccess(t, err)

	_, armed := h.tmr.timeCmp.state()
	test.Equate(t, armed, false)

	// writes outside the compare register range are not seen at all
	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.Time, 0xffffffff))
	_, armed = h.tmr.timeCmp.state()
	test.Equate(t, armed, false)
}

func TestResetLeavesTimeCmpAlone(t *testing.T) {
	h := newHarness(t)

	test.ExpectedSuccess(t, h.mem.WriteWord(addresses.TimeCmp, 0x1234))
	h.tmr.Play()
	h.clk.advance(5 * time.Millisecond)
	h.tmr.Reset()

	cmp, armed := h.tmr.timeCmp.state()
	test.Equate(t, cmp, uint64(0x1234))
	test.Equate(t, armed, true)
}
