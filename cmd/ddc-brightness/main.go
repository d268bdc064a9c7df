package main

/*------------------------------------------------------------------
 *
 * Purpose:	Read or set the luminance VCP feature on every attached
 *		display, or a single one selected by its i2c bus number.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ju6ge/libmonitor/ddcci"
	"github.com/ju6ge/libmonitor/platform/linux"
)

func main() {
	percent := pflag.IntP("value", "p", -1, "New brightness, as a percentage (0-100) of each display's reported maximum.")
	busFilter := pflag.IntP("bus", "b", -1, "Only act on the display at this i2c bus number. -1 for all.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ddc-brightness [options]\n")
		fmt.Fprintf(os.Stderr, "\nWith no options, print the current brightness of every display.\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	isSetting := *percent >= 0
	if isSetting && *percent > 100 {
		fmt.Fprintf(os.Stderr, "--value must be between 0 and 100, got %d\n", *percent)
		os.Exit(1)
	}

	candidates, err := linux.Enumerate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "enumerate displays: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, candidate := range candidates {
		if *busFilter >= 0 && candidate.Sysnum != *busFilter {
			continue
		}

		device, transport, err := linux.Open(candidate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "i2c-%d: %v\n", candidate.Sysnum, err)
			exitCode = 1
			continue
		}

		current, err := ddcci.GetVcpFeature[ddcci.LuminanceValue, *ddcci.LuminanceValue](device)
		if err != nil {
			fmt.Fprintf(os.Stderr, "i2c-%d: get brightness: %v\n", candidate.Sysnum, err)
			exitCode = 1
			transport.Close()
			continue
		}

		if isSetting {
			target := ddcci.LuminanceValue{
				Max: current.Max,
				Val: uint16(int(current.Max) * *percent / 100),
			}
			if err := ddcci.SetVcpFeature(device, target); err != nil {
				fmt.Fprintf(os.Stderr, "i2c-%d: set brightness: %v\n", candidate.Sysnum, err)
				exitCode = 1
			}
		} else {
			fmt.Printf("i2c-%d: %d/%d\n", candidate.Sysnum, current.Val, current.Max)
		}

		transport.Close()
	}

	os.Exit(exitCode)
}
