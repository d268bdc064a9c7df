package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Load human-readable names for VCP feature codes and
 *		input sources from an optional YAML file, for display
 *		in tools rather than for protocol decisions.
 *
 * Description:	The file is entirely optional: everything this
 *		package decodes on the wire works without it. It only
 *		supplies friendlier labels than String()'s defaults,
 *		e.g. mapping a vendor's InputSelect reserved code to
 *		"USB-C" instead of "Reserved(0x1b)".
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// searchLocations is the default file search order, most specific
// first, ending with the conventional system install paths.
var searchLocations = []string{
	"feature-names.yaml",
	"config/feature-names.yaml",
	"/usr/local/share/libmonitor/feature-names.yaml",
	"/usr/share/libmonitor/feature-names.yaml",
}

// FeatureNames maps raw VCP feature bytes and InputSelect codes to
// display names loaded from a feature-names.yaml file.
type FeatureNames struct {
	Features map[byte]string `yaml:"features"`
	Inputs   map[byte]string `yaml:"inputs"`
}

// LoadFeatureNames opens the first of paths that exists (defaulting
// to searchLocations when paths is empty) and parses it. A missing
// file is not an error: an empty FeatureNames is returned so callers
// can fall back to the package's String() methods unconditionally.
func LoadFeatureNames(paths ...string) (*FeatureNames, error) {
	if len(paths) == 0 {
		paths = searchLocations
	}

	var data []byte
	for _, location := range paths {
		d, err := os.ReadFile(location)
		if err == nil {
			data = d
			logger.Debug("loaded feature names", "path", location)
			break
		}
	}

	names := &FeatureNames{Features: map[byte]string{}, Inputs: map[byte]string{}}
	if data == nil {
		logger.Debug("no feature names file found", "searched", paths)
		return names, nil
	}

	if err := yaml.Unmarshal(data, names); err != nil {
		return nil, fmt.Errorf("parse feature names: %w", err)
	}
	return names, nil
}

// FeatureName returns the configured display name for a feature code,
// falling back to its String() form.
func (n *FeatureNames) FeatureName(code VcpFeatureCode) string {
	if n != nil {
		if name, ok := n.Features[code.Byte()]; ok {
			return name
		}
	}
	return code.String()
}

// InputName returns the configured display name for an input source,
// falling back to its String() form.
func (n *FeatureNames) InputName(source InputSource) string {
	if n != nil {
		if raw, ok := source.Reserved(); ok {
			if name, ok := n.Inputs[byte(raw)]; ok {
				return name
			}
		}
	}
	return source.String()
}
