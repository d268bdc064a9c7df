package linux

/*------------------------------------------------------------------
 *
 * Purpose:	Find the I2C buses behind a DDC/CI-capable display and
 *		pair each with the DRM device it actually drives, using
 *		udev the same way ddcutil does.
 *
 * Description:	Three filters run over every "i2c-dev" device: skip
 *		names known to never be a monitor (SMBus controllers,
 *		platform buses), skip "phantom" buses left behind by
 *		docking-station multiplexers, and require the device's
 *		grandparent to actually be a graphics adapter. What's
 *		left is paired with its DRM connector, either directly
 *		(grandparent already is the drm device) or, for the PCI
 *		case, by matching EDID bytes against every drm connector
 *		on the system.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jochenvg/go-udev"

	"github.com/ju6ge/libmonitor/ddcci"
)

// ignorableNamePrefixes lists i2c-dev sysfs names that are never a
// monitor's DDC/CI channel, lifted from ddcutil's own ignore list.
var ignorableNamePrefixes = []string{"SMBus", "soc:i2cdsi", "smu", "mac-io", "u4"}

func ignoreDeviceByName(name string) bool {
	for _, prefix := range ignorableNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// isPhantomDdcDevice reports whether bus sysnum is a disabled,
// disconnected stand-in left by a docking-station i2c multiplexer.
func isPhantomDdcDevice(sysnum int) bool {
	base := fmt.Sprintf("/sys/bus/i2c/devices/i2c-%d", sysnum)
	if _, err := os.Stat(base); err != nil {
		return true
	}
	enabled := readTrimmed(base + "/device/enabled")
	status := readTrimmed(base + "/device/status")
	return enabled == "disabled" && status == "disconnected"
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// deviceIsDisplay reports whether dev's grandparent (the bus
// controller above the i2c adapter) looks like a graphics device.
func deviceIsDisplay(dev *udev.Device) bool {
	parent := dev.Parent()
	if parent == nil {
		return false
	}
	grandparent := parent.Parent()
	if grandparent == nil {
		return false
	}
	if grandparent.Subsystem() == "drm" {
		return true
	}
	return grandparent.PropertyValue("ID_PCI_CLASS_FROM_DATABASE") == "Display controller"
}

// findParentDrmDevice resolves the DRM connector behind an i2c-dev
// device: direct when the grandparent already is the drm node,
// otherwise by scanning every drm device's exposed EDID for a match.
func findParentDrmDevice(u *udev.Udev, i2cDev *udev.Device, sysnum int) *udev.Device {
	parent := i2cDev.Parent()
	if parent == nil {
		return nil
	}
	grandparent := parent.Parent()
	if grandparent == nil {
		return nil
	}
	if grandparent.Subsystem() == "drm" {
		return grandparent
	}
	if grandparent.PropertyValue("ID_PCI_CLASS_FROM_DATABASE") != "Display controller" {
		return nil
	}

	transport := NewI2CTransport(sysnum)
	defer transport.Close()
	edid, err := transport.ReadEdid()
	if err != nil {
		return nil
	}

	enumerator := u.NewEnumerate()
	if err := enumerator.AddMatchSubsystem("drm"); err != nil {
		return nil
	}
	devices, err := enumerator.Devices()
	if err != nil {
		return nil
	}
	for _, drmDevice := range devices {
		d := drmDevice
		data, err := os.ReadFile(d.Syspath() + "/edid")
		if err != nil || len(data) < 128 {
			continue
		}
		drmEdid, err := ddcci.ParseEdid(data)
		if err != nil {
			continue
		}
		if drmEdid == edid {
			return &d
		}
	}
	return nil
}

// Candidate is a DDC/CI-capable display found during enumeration: its
// i2c bus number and the udev name of the DRM connector it's wired to.
type Candidate struct {
	Sysnum      int
	ConnectorID string
}

// Enumerate walks every i2c-dev device on the system and returns the
// subset that pair with a graphics adapter's DRM connector.
func Enumerate() ([]Candidate, error) {
	u := &udev.Udev{}
	enumerator := u.NewEnumerate()
	if err := enumerator.AddMatchSubsystem("i2c-dev"); err != nil {
		return nil, fmt.Errorf("enumerate i2c-dev: %w", err)
	}
	devices, err := enumerator.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerate i2c-dev: %w", err)
	}

	var candidates []Candidate
	for _, dev := range devices {
		d := dev
		name := d.SysattrValue("name")
		if ignoreDeviceByName(name) {
			continue
		}
		sysnum, err := strconv.Atoi(d.Sysnum())
		if err != nil {
			continue
		}
		if isPhantomDdcDevice(sysnum) {
			continue
		}
		if !deviceIsDisplay(&d) {
			continue
		}
		drmDevice := findParentDrmDevice(u, &d, sysnum)
		if drmDevice == nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Sysnum:      sysnum,
			ConnectorID: drmDevice.Sysname(),
		})
	}
	return candidates, nil
}

// Open opens the I2C transport for a candidate and wraps it in a
// MonitorDevice, reading its EDID.
func Open(candidate Candidate) (*ddcci.MonitorDevice, *I2CTransport, error) {
	transport := NewI2CTransport(candidate.Sysnum)
	device, err := ddcci.NewMonitorDevice(transport)
	if err != nil {
		transport.Close()
		return nil, nil, err
	}
	return device, transport, nil
}
