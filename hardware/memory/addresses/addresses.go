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

// Package addresses records the memory layout of the machine's memory mapped
// IO page. The layout follows the RARS simulator: a 64KB page at the very top
// of the 32-bit address space.
package addresses

// MemoryMapBase is the origin of the memory mapped IO page.
const MemoryMapBase uint32 = 0xffff0000

// MemoryMapSize is the extent of the memory mapped IO page in bytes.
const MemoryMapSize uint32 = 0x10000

// Addresses of the timer registers. The timer is a 64-bit millisecond counter
// exposed as two 32-bit words, with a matching 64-bit compare register. The
// time words are written by the timer hardware and read by simulated code;
// the compare words are written by simulated code and observed by the timer
// hardware.
const (
	Time      = MemoryMapBase + 0x18
	TimeHi    = MemoryMapBase + 0x1c
	TimeCmp   = MemoryMapBase + 0x20
	TimeCmpHi = MemoryMapBase + 0x24
)

// TimerRegisters maps timer register addresses to their canonical names.
var TimerRegisters = map[uint32]string{
	Time:      "TIME_LO",
	TimeHi:    "TIME_HI",
	TimeCmp:   "TIMECMP_LO",
	TimeCmpHi: "TIMECMP_HI",
}
