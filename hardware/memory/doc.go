// This file is part of corebench.
//
// corebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// corebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with corebench.  If not, see <https://www.gnu.org/licenses/>.

// Package memory implements the memory attached to the mrav bus. It is made up
// of two parts: the Image, which is the byte addressable storage, and the
// Responder, which is the scheduler task that services bus transactions
// against the Image.
//
// The Image is created once from the software payload. The software is loaded
// verbatim starting at address zero and the remainder of the Image is zero
// filled. The Image is never resized.
//
// Words are stored big-endian: the high byte of a 16 bit word is at the lower
// address. A transaction at address A touches A and A+1, so any transaction
// where A+1 is not inside the Image is an error.
//
// The Responder is the only writer of the Image. Other parts of the program
// observe memory with the Peek() and Copy() functions, which never return
// references to the underlying storage.
//
// Each clock cycle the Responder behaves as follows:
//
//	rising edge   wait
//	read-only     sample Addr, Read and Write
//	read-write    clear ReadDone and WriteDone
//	              fail if Read and Write are both asserted
//	              fail if Addr is out of bounds
//	              service the read or write and assert the matching ack
//
// A cycle where neither Read nor Write is asserted is not a transaction and
// leaves the acknowledgement signals low. Addr must still be in bounds: a bus
// master parked on an address outside memory is an error.
package memory
