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

package memory

import (
	"github.com/mrav/corebench/curated"
)

// Sentinal error patterns.
const (
	ImageTooLarge     = "memory: software (%d bytes) does not fit in memory of %d bytes"
	InvalidCapacity   = "memory: capacity must be greater than zero (%d)"
	OutOfBoundsAccess = "memory: access at %#04x is out of bounds (capacity %d)"
	ProtocolViolation = "memory: read and write asserted in the same cycle (address %#04x)"
)

// Image is the byte storage behind the bus. Only the Responder in this package
// writes to it.
type Image struct {
	data []uint8
}

// NewImage is the preferred method of initialisation for the Image type. The
// software is copied into the start of the image.
func NewImage(capacity int, software []uint8) (*Image, error) {
	if capacity <= 0 {
		return nil, curated.Errorf(InvalidCapacity, capacity)
	}
	if len(software) > capacity {
		return nil, curated.Errorf(ImageTooLarge, len(software), capacity)
	}

	img := &Image{
		data: make([]uint8, capacity),
	}
	copy(img.data, software)

	return img, nil
}

// Len returns the capacity of the image in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Peek returns the byte at address.
func (img *Image) Peek(address int) (uint8, error) {
	if address < 0 || address >= len(img.data) {
		return 0, curated.Errorf(OutOfBoundsAccess, address, len(img.data))
	}
	return img.data[address], nil
}

// PeekWord returns the big-endian word at address. The same bounds rule as a
// bus transaction applies.
func (img *Image) PeekWord(address int) (uint16, error) {
	if err := img.check(address); err != nil {
		return 0, err
	}
	return img.readWord(address), nil
}

// Copy returns a copy of the entire image.
func (img *Image) Copy() []uint8 {
	c := make([]uint8, len(img.data))
	copy(c, img.data)
	return c
}

// a word transaction at address touches address and address+1. both must be
// inside the image
func (img *Image) check(address int) error {
	if address < 0 || address+1 >= len(img.data) {
		return curated.Errorf(OutOfBoundsAccess, address, len(img.data))
	}
	return nil
}

func (img *Image) readWord(address int) uint16 {
	return uint16(img.data[address])<<8 | uint16(img.data[address+1])
}

func (img *Image) writeWord(address int, data uint16) {
	img.data[address] = uint8(data >> 8)
	img.data[address+1] = uint8(data)
}
