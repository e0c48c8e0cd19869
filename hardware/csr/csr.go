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

// Package csr implements the user-level control and status register file of
// the machine. Registers are addressed by their canonical names, as they are
// in RARS, rather than by CSR number.
//
// The timer reads the uie and ustatus registers on every tick. Simulated code
// may flip the enable bits at any moment so there is no caching of any kind
// in this package.
package csr

import (
	"sync"

	"github.com/FrBrGeorge/rars/curated"
)

// UnknownRegisterError is the curated error returned when a register name is
// not part of the register file.
const UnknownRegisterError = "csr: unknown register: %s"

// Bit masks for the uip and uie registers. The same bit positions are also
// the interrupt portion of the ucause register.
const (
	SoftwareInterrupt uint32 = 0x001
	TimerInterrupt    uint32 = 0x010
	ExternalInterrupt uint32 = 0x100
)

// InterruptEnable is the mask for the global user-interrupt-enable bit of the
// ustatus register.
const InterruptEnable uint32 = 0x1

// File is the control and status register file. A single instance exists per
// machine. Values are protected by a lock because the timer goroutine reads
// enable bits concurrently with simulated code writing them.
type File struct {
	crit sync.Mutex
	regs map[string]uint32
}

// NewFile is the preferred method of initialisation for the File type. The
// register file contains the user-level trap setup and handling registers.
func NewFile() *File {
	return &File{
		regs: map[string]uint32{
			"ustatus":  0,
			"uie":      0,
			"utvec":    0,
			"uscratch": 0,
			"uepc":     0,
			"ucause":   0,
			"utval":    0,
			"uip":      0,
		},
	}
}

// Value returns the current value of the named register.
func (f *File) Value(name string) (uint32, error) {
	f.crit.Lock()
	defer f.crit.Unlock()

	v, ok := f.regs[name]
	if !ok {
		return 0, curated.Errorf(UnknownRegisterError, name)
	}
	return v, nil
}

// SetValue updates the named register.
func (f *File) SetValue(name string, value uint32) error {
	f.crit.Lock()
	defer f.crit.Unlock()

	if _, ok := f.regs[name]; !ok {
		return curated.Errorf(UnknownRegisterError, name)
	}
	f.regs[name] = value
	return nil
}

// Bit returns the state of the masked bits in the named register. An unknown
// register name reads as false.
func (f *File) Bit(name string, mask uint32) bool {
	f.crit.Lock()
	defer f.crit.Unlock()
	return f.regs[name]&mask == mask
}

// SetBit sets the masked bits in the named register.
func (f *File) SetBit(name string, mask uint32) error {
	f.crit.Lock()
	defer f.crit.Unlock()

	v, ok := f.regs[name]
	if !ok {
		return curated.Errorf(UnknownRegisterError, name)
	}
	f.regs[name] = v | mask
	return nil
}

// ClearBit clears the masked bits in the named register.
func (f *File) ClearBit(name string, mask uint32) error {
	f.crit.Lock()
	defer f.crit.Unlock()

	v, ok := f.regs[name]
	if !ok {
		return curated.Errorf(UnknownRegisterError, name)
	}
	f.regs[name] = v &^ mask
	return nil
}
