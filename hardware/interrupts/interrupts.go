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

// Package interrupts implements the interrupt controller of the machine. The
// controller is a sink: hardware components raise interrupts into it and the
// execution loop claims them between instructions. Raising never fails and
// never blocks beyond the controller's own lock.
package interrupts

import (
	"sync"

	"github.com/FrBrGeorge/rars/hardware/csr"
)

// Controller collects raised interrupts until they are claimed. A raised
// timer interrupt stays pending until AcknowledgeTimer() is called; raising
// again while one is pending is absorbed.
type Controller struct {
	crit sync.Mutex

	timerPending bool
	timerCause   uint32
	timerCount   int
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController() *Controller {
	return &Controller{}
}

// RaiseTimer raises a timer interrupt with the given cause bits. Returns
// false if a timer interrupt was already pending; the new raise is absorbed.
func (c *Controller) RaiseTimer(cause uint32) bool {
	c.crit.Lock()
	defer c.crit.Unlock()

	c.timerCount++
	if c.timerPending {
		return false
	}
	c.timerPending = true
	c.timerCause = cause
	return true
}

// TimerPending returns true if a timer interrupt is waiting to be claimed.
func (c *Controller) TimerPending() bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.timerPending
}

// AcknowledgeTimer claims the pending timer interrupt, if there is one,
// returning its cause bits.
func (c *Controller) AcknowledgeTimer() (uint32, bool) {
	c.crit.Lock()
	defer c.crit.Unlock()

	if !c.timerPending {
		return 0, false
	}
	c.timerPending = false
	return c.timerCause, true
}

// RaisedTimer returns the number of timer interrupts raised over the lifetime
// of the controller, including raises absorbed while another was pending.
func (c *Controller) RaisedTimer() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.timerCount
}

// TimerCause is the cause value raised by the machine's timer. The value is
// the timer bit position shared by the uip/uie registers, as in RARS.
const TimerCause = csr.TimerInterrupt
