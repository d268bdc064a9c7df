package main

/*------------------------------------------------------------------
 *
 * Purpose:	List the DDC/CI-capable displays visible on this host,
 *		along with the identity data read from each one's EDID.
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
	verbose := pflag.BoolP("verbose", "v", false, "Print a parsed capability summary (model, MCCS version, VCP codes) for each display.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ddc-list [options]\n")
		fmt.Fprintf(os.Stderr, "\nList DDC/CI-capable displays and their EDID identity.\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	candidates, err := linux.Enumerate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "enumerate displays: %v\n", err)
		os.Exit(1)
	}

	if len(candidates) == 0 {
		fmt.Println("No DDC/CI-capable displays found.")
		return
	}

	for _, candidate := range candidates {
		device, transport, err := linux.Open(candidate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "i2c-%d (%s): %v\n", candidate.Sysnum, candidate.ConnectorID, err)
			continue
		}

		info := device.Info()
		header := info.Edid().Header
		fmt.Printf("i2c-%d  connector=%s  vendor=%s  product=0x%04x  year=%d\n",
			candidate.Sysnum, candidate.ConnectorID,
			string(header.Vendor[:]), header.Product, info.ManufactureYear())

		if *verbose {
			caps, err := device.ReadCapabilities()
			if err != nil {
				fmt.Printf("    capabilities: %v\n", err)
			} else {
				mccs := "unknown"
				if caps.MccsVersion != nil {
					mccs = caps.MccsVersion.String()
				}
				codes := make([]ddcci.VcpFeatureCode, 0, len(caps.VcpFeatures))
				for _, vcp := range caps.VcpFeatures {
					codes = append(codes, vcp.Feature)
				}
				fmt.Printf("    model=%q mccs=%s vcp=%v\n", caps.Model, mccs, codes)
			}
		}

		transport.Close()
	}
}
