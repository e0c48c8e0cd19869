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

package csr_test

import (
	"testing"

	"github.com/FrBrGeorge/rars/curated"
	"github.com/FrBrGeorge/rars/hardware/csr"
	"github.com/FrBrGeorge/rars/test"
)

func TestRegisterFile(t *testing.T) {
	f := csr.NewFile()

	v, err := f.Value("ustatus")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)

	test.ExpectedSuccess(t, f.SetValue("uie", 0x110))
	v, err = f.Value("uie")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x110)

	_, err = f.Value("mstatus")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, csr.UnknownRegisterError))

	test.ExpectedFailure(t, f.SetValue("mstatus", 1))
}

func TestBits(t *testing.T) {
	f := csr.NewFile()

	test.Equate(t, f.Bit("uie", csr.TimerInterrupt), false)

	test.ExpectedSuccess(t, f.SetBit("uie", csr.TimerInterrupt))
	test.Equate(t, f.Bit("uie", csr.TimerInterrupt), true)

	// other bits in the register are untouched
	test.Equate(t, f.Bit("uie", csr.SoftwareInterrupt), false)
	test.Equate(t, f.Bit("uie", csr.ExternalInterrupt), false)

	test.ExpectedSuccess(t, f.ClearBit("uie", csr.TimerInterrupt))
	test.Equate(t, f.Bit("uie", csr.TimerInterrupt), false)

	// an unknown register reads as false rather than erroring
	test.Equate(t, f.Bit("mip", csr.TimerInterrupt), false)
}
