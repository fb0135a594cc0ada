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

package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mrav/corebench/curated"
	"github.com/pkg/term"
	xterm "golang.org/x/term"
)

// Device is the default name of the controlling terminal.
const Device = "/dev/tty"

// NoTerminal is the pattern of the error returned by Open() when the named
// device cannot be used as a terminal.
const NoTerminal = "terminal: %v"

// list of keys with a special meaning.
const (
	KeyInterrupt = 0x03
	KeyEOF       = 0x04
	KeyCarriage  = 0x0d
	KeyEsc       = 0x1b
)

// Terminal reads single key presses from the input device and writes to the
// output.
type Terminal struct {
	tty    *term.Term
	output io.Writer
	cbreak bool
}

// Open the named terminal device. Output is written to the supplied writer,
// which is usually os.Stdout.
func Open(device string, output io.Writer) (*Terminal, error) {
	if output == nil {
		return nil, curated.Errorf(NoTerminal, "an output writer is required")
	}

	tty, err := term.Open(device)
	if err != nil {
		return nil, curated.Errorf(NoTerminal, err)
	}

	return &Terminal{tty: tty, output: output}, nil
}

// CBreakMode puts terminal into cbreak mode.
func (t *Terminal) CBreakMode() error {
	if err := t.tty.SetCbreak(); err != nil {
		return curated.Errorf(NoTerminal, err)
	}
	t.cbreak = true
	return nil
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (t *Terminal) CanonicalMode() error {
	if !t.cbreak {
		return nil
	}
	if err := t.tty.Restore(); err != nil {
		return curated.Errorf(NoTerminal, err)
	}
	t.cbreak = false
	return nil
}

// ReadKey waits for a single key press. Outside of cbreak mode the key will
// not be available until the return key has been pressed.
func (t *Terminal) ReadKey() (byte, error) {
	var b [1]byte
	if _, err := t.tty.Read(b[:]); err != nil {
		return 0, curated.Errorf(NoTerminal, err)
	}
	return b[0], nil
}

// Print writes the formatted string to the output.
func (t *Terminal) Print(s string, a ...any) {
	fmt.Fprintf(t.output, s, a...)
}

// Close restores the terminal to canonical mode and releases the device.
func (t *Terminal) Close() error {
	err := t.CanonicalMode()
	if cerr := t.tty.Close(); err == nil && cerr != nil {
		err = curated.Errorf(NoTerminal, cerr)
	}
	return err
}

// IsTerminal returns true if the file is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return xterm.IsTerminal(int(f.Fd()))
}

// Quit returns true if the key should end an interactive session.
func Quit(key byte) bool {
	switch key {
	case 'q', 'Q', KeyInterrupt, KeyEOF, KeyEsc:
		return true
	}
	return false
}
