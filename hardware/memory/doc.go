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

// Package memory implements the memory mapped IO page of the machine and the
// access notification mechanism that hardware components use to observe
// simulated code touching their registers.
//
// There are two sides to the memory. The program side (WriteWord, ReadWord)
// is used on behalf of simulated code; accesses on this side generate
// bus.AccessNotice values for any subscribed observer. The hardware side
// (ChipWriteWord, PeekWord) is used by components updating or inspecting
// their own registers; accesses on this side are silent.
//
// Both sides serialise through a single exclusive lock, so no reader of the
// memory area can ever observe a partially written word.
package memory
