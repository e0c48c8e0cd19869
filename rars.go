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

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/FrBrGeorge/rars/hardware"
	"github.com/FrBrGeorge/rars/logger"
	"github.com/FrBrGeorge/rars/statsview"
	"github.com/FrBrGeorge/rars/terminal"
)

func main() {
	os.Exit(launch())
}

func launch() int {
	flgs := flag.NewFlagSet("rars", flag.ExitOnError)
	echoLog := flgs.Bool("log", false, "echo log entries to stderr as they are made")
	stats := flgs.Bool("statsview", false, "run the runtime statistics server")
	flgs.Parse(os.Args[1:])

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, "statsview not available in this build (build with the statsview tag)")
		}
	}

	mch := hardware.NewMachine()

	// ctrl-c ends the console loop the same way the quit key does
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	con, err := terminal.NewConsole(os.Stdin, os.Stdout, mch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		return 1
	}

	err = con.Run(intChan)

	// stop the machine whatever the reason for leaving the console
	mch.Stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		logger.Write(os.Stderr)
		return 1
	}

	return 0
}
