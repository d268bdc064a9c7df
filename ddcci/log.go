package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Package-wide logger and optional dated capability-string
 *		dump file.
 *
 * Description:	Dump file naming follows the daily-file strategy: a
 *		directory is given, and a new dated file is opened
 *		whenever the date changes, closing the previous one.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "ddcci",
})

// SetLogger replaces the package logger, for hosts that want their
// own sink or formatting.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// SetLogLevel adjusts the package logger's verbosity.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// dumpPattern names a dated capability-string dump file.
var dumpPattern = strftime.MustNew("capabilities-%Y-%m-%d.txt")

// CapabilityDumper writes every capability string a caller feeds it
// to a dated file under dir, opening a new file when the date rolls
// over and closing the previous one.
type CapabilityDumper struct {
	dir      string
	openName string
	fp       *os.File
}

// NewCapabilityDumper prepares a dumper rooted at dir. dir is created
// if it doesn't already exist.
func NewCapabilityDumper(dir string) (*CapabilityDumper, error) {
	if dir == "" {
		return &CapabilityDumper{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dump directory %q: %w", dir, err)
	}
	return &CapabilityDumper{dir: dir}, nil
}

// Dump appends s, terminated by a newline, to the current day's file.
// A no-op CapabilityDumper (empty dir) silently discards.
func (d *CapabilityDumper) Dump(s string) error {
	if d.dir == "" {
		return nil
	}

	name := dumpPattern.FormatString(time.Now().UTC())
	if d.fp != nil && name != d.openName {
		d.Close()
	}

	if d.fp == nil {
		full := filepath.Join(d.dir, name)
		f, err := os.OpenFile(full, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return fmt.Errorf("open dump file %q: %w", full, err)
		}
		d.fp = f
		d.openName = name
		logger.Debug("opened capability dump file", "path", full)
	}

	_, err := fmt.Fprintln(d.fp, s)
	return err
}

// Close closes the currently open dump file, if any.
func (d *CapabilityDumper) Close() error {
	if d.fp == nil {
		return nil
	}
	err := d.fp.Close()
	logger.Debug("closed capability dump file", "path", filepath.Join(d.dir, d.openName))
	d.fp = nil
	d.openName = ""
	return err
}
