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

package memory

import (
	"encoding/binary"
	"sync"

	"github.com/FrBrGeorge/rars/curated"
	"github.com/FrBrGeorge/rars/hardware/memory/addresses"
	"github.com/FrBrGeorge/rars/hardware/memory/bus"
)

// AddressError is the curated error returned for any access outside the
// memory area, or for an access that is not aligned to a word boundary.
// There is no way to recover from this error during machine operation: an
// invalid address means a hardware component was wired up incorrectly.
const AddressError = "memory: address error: %#08x"

// subscription records an observer of an inclusive address range.
type subscription struct {
	origin uint32
	memtop uint32
	obs    bus.Observer
}

// Memory implements the memory mapped IO page of the machine. Words are
// stored little-endian, as simulated RISC-V code expects to find them.
//
// All mutators of the memory area share the single exclusive lock, the
// equivalent of the "memory and registers" lock in RARS. The lock is held
// only for the duration of a single word access; in particular it is released
// before any access notices are delivered to observers.
type Memory struct {
	crit sync.Mutex

	origin uint32
	memtop uint32
	data   []byte

	// subscriptions are added before the machine starts running and are never
	// removed, so they are not part of the critical section
	subscriptions []subscription
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The memory area covers the machine's memory mapped IO page.
func NewMemory() *Memory {
	return &Memory{
		origin: addresses.MemoryMapBase,
		memtop: addresses.MemoryMapBase + (addresses.MemoryMapSize - 1),
		data:   make([]byte, addresses.MemoryMapSize),
	}
}

// valid is true if a full word can be accessed at address.
func (mem *Memory) valid(address uint32) bool {
	return address >= mem.origin && address+3 <= mem.memtop && address+3 > address && address%4 == 0
}

// WriteWord stores a word at the address, as though a simulated store
// instruction had executed. Observers subscribed to a range containing the
// address are notified after the word has been committed.
func (mem *Memory) WriteWord(address uint32, value uint32) error {
	if !mem.valid(address) {
		return curated.Errorf(AddressError, address)
	}

	mem.crit.Lock()
	binary.LittleEndian.PutUint32(mem.data[address-mem.origin:], value)
	mem.crit.Unlock()

	mem.notify(bus.AccessNotice{Kind: bus.Write, Address: address, Value: value})

	return nil
}

// ReadWord fetches the word at the address, as though a simulated load
// instruction had executed. Observers are notified of the read. The value
// carried by a read notice is the value fetched.
func (mem *Memory) ReadWord(address uint32) (uint32, error) {
	if !mem.valid(address) {
		return 0, curated.Errorf(AddressError, address)
	}

	mem.crit.Lock()
	value := binary.LittleEndian.Uint32(mem.data[address-mem.origin:])
	mem.crit.Unlock()

	mem.notify(bus.AccessNotice{Kind: bus.Read, Address: address, Value: value})

	return value, nil
}

// ChipWriteWord stores a word at the address from the hardware side of the
// machine. No notice is generated: a hardware component updating its own
// register is not an event any observer wants to hear about, and the timer
// doing so every millisecond definitely is not.
//
// ChipWriteWord is an implementation of bus.WordBus.
func (mem *Memory) ChipWriteWord(address uint32, value uint32) error {
	if !mem.valid(address) {
		return curated.Errorf(AddressError, address)
	}

	mem.crit.Lock()
	binary.LittleEndian.PutUint32(mem.data[address-mem.origin:], value)
	mem.crit.Unlock()

	return nil
}

// PeekWord fetches the word at the address without generating a notice. Used
// by the hardware side of the machine and by anything inspecting memory from
// outside of normal machine operation.
//
// PeekWord is an implementation of bus.WordBus.
func (mem *Memory) PeekWord(address uint32) (uint32, error) {
	if !mem.valid(address) {
		return 0, curated.Errorf(AddressError, address)
	}

	mem.crit.Lock()
	defer mem.crit.Unlock()
	return binary.LittleEndian.Uint32(mem.data[address-mem.origin:]), nil
}

// Subscribe registers an observer of the inclusive address range [origin,
// memtop]. The range must lie wholly inside the memory area.
//
// Subscribe is an implementation of bus.Notifier.
func (mem *Memory) Subscribe(origin uint32, memtop uint32, obs bus.Observer) error {
	if origin > memtop || origin < mem.origin || memtop > mem.memtop {
		return curated.Errorf(AddressError, origin)
	}

	mem.subscriptions = append(mem.subscriptions, subscription{
		origin: origin,
		memtop: memtop,
		obs:    obs,
	})

	return nil
}

// notify delivers the notice to every observer whose range contains the
// address. Called without the memory lock held so that observers are free to
// take their own locks.
func (mem *Memory) notify(notice bus.AccessNotice) {
	for i := range mem.subscriptions {
		s := &mem.subscriptions[i]
		if notice.Address >= s.origin && notice.Address <= s.memtop {
			s.obs.Notify(notice)
		}
	}
}
