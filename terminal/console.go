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

// Package terminal implements the interactive control surface of the
// headless machine. The controlling terminal is put into cbreak mode so that
// the lifecycle operations react to single keypresses, without waiting for a
// newline.
package terminal

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/FrBrGeorge/rars/curated"
	"github.com/FrBrGeorge/rars/emulation"
	"github.com/FrBrGeorge/rars/logger"
)

// TerminalError is the curated error returned when the controlling terminal
// cannot be prepared.
const TerminalError = "terminal: %v"

// Console is the keypress driven control surface. It owns the terminal for
// the duration of Run().
type Console struct {
	input  *os.File
	output *os.File
	emu    emulation.Emulation

	// terminal attributes for canonical (restore on exit) and cbreak
	// (keypress) modes
	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewConsole is the preferred method of initialisation for the Console type.
// The input file must be a terminal.
func NewConsole(input *os.File, output *os.File, emu emulation.Emulation) (*Console, error) {
	con := &Console{
		input:  input,
		output: output,
		emu:    emu,
	}

	if err := termios.Tcgetattr(input.Fd(), &con.canAttr); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	con.cbreakAttr = con.canAttr
	termios.Cfmakecbreak(&con.cbreakAttr)

	return con, nil
}

func (con *Console) cbreakMode() error {
	if err := termios.Tcsetattr(con.input.Fd(), termios.TCIFLUSH, &con.cbreakAttr); err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}

func (con *Console) canonicalMode() error {
	if err := termios.Tcsetattr(con.input.Fd(), termios.TCIFLUSH, &con.canAttr); err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}

const help = `controls:
  s      start the machine
  space  play/pause machine time
  r      reset the timer
  h      halt (stop) the machine
  t      show timer status
  l      show recent log entries
  q      quit
`

// Run takes over the terminal until the user quits or the interrupt channel
// fires. The terminal is restored to canonical mode on every exit path.
func (con *Console) Run(intChan chan os.Signal) error {
	if err := con.cbreakMode(); err != nil {
		return err
	}
	defer con.canonicalMode()

	// reading in a separate goroutine so that keypresses can be multiplexed
	// with the interrupt signal. the goroutine ends when the input file is
	// closed at process exit
	keys := make(chan byte)
	go func() {
		b := make([]byte, 1)
		for {
			n, err := con.input.Read(b)
			if err != nil {
				close(keys)
				return
			}
			if n > 0 {
				keys <- b[0]
			}
		}
	}()

	fmt.Fprint(con.output, help)

	for {
		select {
		case <-intChan:
			return nil

		case k, ok := <-keys:
			if !ok {
				return nil
			}

			switch k {
			case 's':
				if err := con.emu.Start(); err != nil {
					return err
				}
				fmt.Fprintf(con.output, "%s\n", con.emu)

			case ' ':
				switch con.emu.State() {
				case emulation.Stopped:
					fmt.Fprintln(con.output, "machine is not started")
				case emulation.Paused:
					con.emu.Play()
					fmt.Fprintf(con.output, "%s\n", con.emu)
				case emulation.Running:
					con.emu.Pause()
					fmt.Fprintf(con.output, "%s\n", con.emu)
				}

			case 'r':
				con.emu.Reset()
				fmt.Fprintf(con.output, "%s\n", con.emu)

			case 'h':
				con.emu.Stop()
				fmt.Fprintf(con.output, "%s\n", con.emu)

			case 't':
				fmt.Fprintf(con.output, "%s\n", con.emu)

			case 'l':
				logger.Tail(con.output, 10)

			case 'q':
				return nil
			}
		}
	}
}
