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

// Package timer implements the machine's memory mapped millisecond timer and
// its compare-triggered interrupt, in the manner of the RISC-V mtime/mtimecmp
// pair.
//
// The timer value is a 64-bit count of milliseconds played since the last
// reset, exposed to simulated code as two 32-bit words (addresses.Time and
// addresses.TimeHi). A matching 64-bit compare value (addresses.TimeCmp and
// addresses.TimeCmpHi) is written by simulated code and watched by the timer
// through the memory access notification mechanism.
//
// Once started, a tick goroutine fires every millisecond. While the timer is
// playing, each tick republishes the current time into the time registers and
// decides whether a timer interrupt should be raised. The decision is edge
// triggered on writes to the compare register: a write arms the timer and a
// raise disarms it, so a sustained "time >= timecmp" condition fires exactly
// once per write.
//
// Play and Pause control the progress of time. Pausing folds the wall-clock
// duration played so far into an accumulator and freezes the reported time;
// playing re-anchors the accumulator against the wall clock so time carries
// on from where it was frozen. The simulated program therefore never sees the
// timer advance while the machine is paused.
package timer
