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

// Package hardware assembles the emulated components of the machine: the
// memory mapped IO page, the control and status register file, the interrupt
// controller and the timer. One Machine exists per simulated machine; there
// are no package level shared components.
package hardware

import (
	"github.com/FrBrGeorge/rars/emulation"
	"github.com/FrBrGeorge/rars/hardware/csr"
	"github.com/FrBrGeorge/rars/hardware/interrupts"
	"github.com/FrBrGeorge/rars/hardware/memory"
	"github.com/FrBrGeorge/rars/hardware/timer"
)

// Machine is the main container for the emulated components.
type Machine struct {
	Mem   *memory.Memory
	CSR   *csr.File
	IRQ   *interrupts.Controller
	Timer *timer.Timer
}

// NewMachine creates a new Machine and everything associated with the
// hardware.
func NewMachine() *Machine {
	mch := &Machine{}

	mch.Mem = memory.NewMemory()
	mch.CSR = csr.NewFile()
	mch.IRQ = interrupts.NewController()

	// the memory serves the timer both as the word bus and as the source of
	// compare register write notifications
	mch.Timer = timer.NewTimer(mch.Mem, mch.Mem, mch.CSR, mch.IRQ)

	return mch
}

func (mch *Machine) String() string {
	return mch.Timer.String()
}

// Start the machine. Idempotent.
func (mch *Machine) Start() error {
	return mch.Timer.Start()
}

// Play sets machine time running. Idempotent.
func (mch *Machine) Play() {
	mch.Timer.Play()
}

// Pause freezes machine time. Idempotent.
func (mch *Machine) Pause() {
	mch.Timer.Pause()
}

// Stop the machine and zero the timer.
func (mch *Machine) Stop() {
	mch.Timer.Stop()
}

// Reset machine time without changing the running state.
func (mch *Machine) Reset() {
	mch.Timer.Reset()
}

// State returns the current state of the machine.
func (mch *Machine) State() emulation.State {
	return mch.Timer.State()
}

// check that the Machine implements the emulation.Emulation interface
var _ emulation.Emulation = (*Machine)(nil)
