package main

/*------------------------------------------------------------------
 *
 * Purpose:	Poll a single display's change-notification FIFO and
 *		print every feature change as it drains, looping
 *		forever the way the monitor expects to be polled.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ju6ge/libmonitor/ddcci"
	"github.com/ju6ge/libmonitor/platform/linux"
)

const pollInterval = 2 * time.Second

func main() {
	bus := pflag.IntP("bus", "b", -1, "i2c bus number of the display to poll. Required.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ddc-events --bus N\n")
		fmt.Fprintf(os.Stderr, "\nPoll a display's VCP change-notification FIFO and print each change.\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if *bus < 0 {
		fmt.Fprintln(os.Stderr, "--bus is required")
		pflag.Usage()
		os.Exit(1)
	}

	candidates, err := linux.Enumerate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "enumerate displays: %v\n", err)
		os.Exit(1)
	}

	var target *linux.Candidate
	for i := range candidates {
		if candidates[i].Sysnum == *bus {
			target = &candidates[i]
			break
		}
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "no display found on i2c-%d\n", *bus)
		os.Exit(1)
	}

	device, transport, err := linux.Open(*target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open i2c-%d: %v\n", *bus, err)
		os.Exit(1)
	}
	defer transport.Close()

	for {
		queue := ddcci.NewChangeEventQueue(device)
		for {
			change, ok, err := queue.Next()
			if err != nil {
				fmt.Fprintf(os.Stderr, "poll i2c-%d: %v\n", *bus, err)
				break
			}
			if !ok {
				break
			}
			fmt.Printf("%s: feature=%s value=%+v\n", time.Now().Format(time.RFC3339), change.Feature, change.Value)
		}
		time.Sleep(pollInterval)
	}
}
