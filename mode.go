package gofat

import (
	"fmt"
	"strings"

	"github.com/desertwitch/gofat/driver"
)

// openMode is the access derived from an fopen-style mode string.
type openMode struct {
	flags    driver.AccessFlag
	readable bool
	writable bool
}

var openModes = map[string]openMode{
	"r":  {driver.FlagRead | driver.FlagOpenExisting, true, false},
	"r+": {driver.FlagRead | driver.FlagWrite | driver.FlagOpenExisting, true, true},
	"w":  {driver.FlagWrite | driver.FlagCreateAlways, false, true},
	"w+": {driver.FlagRead | driver.FlagWrite | driver.FlagCreateAlways, true, true},
	"a":  {driver.FlagWrite | driver.FlagOpenAlways | driver.FlagOpenAppend, false, true},
	"a+": {driver.FlagRead | driver.FlagWrite | driver.FlagOpenAlways | driver.FlagOpenAppend, true, true},
}

// parseMode resolves an fopen-style mode string into driver access
// flags. The binary marker "b" is accepted anywhere in the string and
// ignored. Unknown modes fail with [ErrInvalidMode]; there is no
// fallback mode.
func parseMode(mode string) (openMode, error) {
	m, ok := openModes[strings.ReplaceAll(mode, "b", "")]
	if !ok {
		return openMode{}, fmt.Errorf("(gofat) %w: %q", ErrInvalidMode, mode)
	}

	return m, nil
}
