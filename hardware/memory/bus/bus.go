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

// Package bus defines the memory bus concepts. For an explanation see the
// memory package documentation.
package bus

// AccessKind classifies an AccessNotice.
type AccessKind int

// List of valid AccessKind values.
const (
	Read AccessKind = iota
	Write
)

// AccessNotice is sent to subscribed observers whenever simulated code
// accesses a word in their address range.
type AccessNotice struct {
	Kind    AccessKind
	Address uint32
	Value   uint32
}

// Observer implementations receive access notices for the address range they
// subscribed to. Notify() is called from whatever goroutine performed the
// memory access, typically the main execution goroutine. Implementations must
// not access the notifying memory from inside Notify().
type Observer interface {
	Notify(notice AccessNotice)
}

// WordBus defines the operations for the memory system when accessed from a
// hardware component. Writes on this bus are raw: they do not generate access
// notices. Compare with the program-side access functions of the memory
// package, which do.
type WordBus interface {
	ChipWriteWord(address uint32, value uint32) error
	PeekWord(address uint32) (uint32, error)
}

// Notifier defines the subscription side of the memory system. The origin and
// memtop values describe an inclusive address range.
type Notifier interface {
	Subscribe(origin uint32, memtop uint32, obs Observer) error
}
