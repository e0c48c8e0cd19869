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

// Package emulation defines the high level running state of the machine.
// Exists mainly to avoid circular imports between the hardware package and
// anything that wants to inspect or control the machine.
package emulation

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// Stopped is the default state. Starting the machine moves it to Paused and
// from there Running and Paused toggle. Stopping from either returns the
// machine to Stopped.
//
// Values are ordered so that order comparisons are meaningful. For example,
// Running is "greater than" Paused.
const (
	Stopped State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Running:
		return "running"
	}
	panic("unknown emulation state")
}

// Emulation defines the public functions required of the machine by a control
// surface (the terminal console, a GUI, etc.)
type Emulation interface {
	// one line description of the machine, suitable for a status line
	String() string

	// lifecycle controls. all of them are idempotent and safe to call in any
	// state
	Start() error
	Play()
	Pause()
	Stop()
	Reset()

	// immediate request for the state of the emulation
	State() State
}
