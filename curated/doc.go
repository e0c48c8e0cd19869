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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values and returns an error. The pattern
// is also the identity of the error:
//
//	e := curated.Errorf("memory: address error: %#08x", address)
//
//	if curated.Is(e, "memory: address error: %#08x") {
//		fmt.Println("bad address")
//	}
//
// The Has() function is similar to Is() but checks whether the pattern occurs
// anywhere in the error chain, rather than only at the head.
//
// In this project the important curated patterns are gathered in the packages
// that generate them. In particular, the memory package's address error is
// treated as fatal by anything that wires a hardware component to an address:
// an out-of-range address means the machine was assembled incorrectly and
// there is nothing to retry.
package curated
