// Package configuration resolves the application settings from an
// optional env-style file and the process environment.
package configuration

import (
	"fmt"
	"maps"
	"os"
	"strconv"
)

// Environment variables consulted by [Handler.Load]. Process environment
// values override env file values of the same name.
const (
	EnvImage  = "GOFAT_IMAGE"
	EnvMount  = "GOFAT_MOUNT"
	EnvDrive  = "GOFAT_DRIVE"
	EnvDepth  = "GOFAT_DEPTH"
	EnvVerify = "GOFAT_VERIFY"
	EnvNoUI   = "GOFAT_NO_UI"
)

// Defaults applied before any configuration source is read.
const (
	DefaultImage = "fatimg"
	DefaultMount = "/"
	DefaultDrive = 0
	DefaultDepth = 16
)

// Settings is the principal structure holding the application settings.
type Settings struct {
	// Image is the backing directory of the host driver.
	Image string

	// Mount is the volume path passed to the driver's mount call.
	Mount string

	// Drive is the logical drive index.
	Drive int

	// Depth is the traversal depth cap for tree listings.
	Depth int

	// Verify enables checksum verification on copies.
	Verify bool

	// NoUI disables the interactive progress UI.
	NoUI bool
}

type envProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler resolves [Settings] through a pluggable env file reader.
type Handler struct {
	envHandler envProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(envHandler envProvider) *Handler {
	return &Handler{
		envHandler: envHandler,
	}
}

// Load resolves the settings: defaults first, then the env file (when a
// path is given), then process environment variables on top.
func (c *Handler) Load(envFile string) (*Settings, error) {
	settings := &Settings{
		Image:  DefaultImage,
		Mount:  DefaultMount,
		Drive:  DefaultDrive,
		Depth:  DefaultDepth,
		Verify: true,
	}

	envMap := map[string]string{}

	if envFile != "" {
		fileMap, err := c.envHandler.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("(config) failed to read env file: %w", err)
		}

		maps.Copy(envMap, fileMap)
	}

	for _, key := range []string{EnvImage, EnvMount, EnvDrive, EnvDepth, EnvVerify, EnvNoUI} {
		if value, exists := os.LookupEnv(key); exists {
			envMap[key] = value
		}
	}

	c.apply(settings, envMap)

	return settings, nil
}

// apply folds recognized keys into the settings, leaving fields at their
// previous value when a key is absent or unparsable.
func (c *Handler) apply(settings *Settings, envMap map[string]string) {
	if value := c.mapKeyToString(envMap, EnvImage); value != "" {
		settings.Image = value
	}

	if value := c.mapKeyToString(envMap, EnvMount); value != "" {
		settings.Mount = value
	}

	if value := c.mapKeyToInt(envMap, EnvDrive); value >= 0 {
		settings.Drive = value
	}

	if value := c.mapKeyToInt(envMap, EnvDepth); value > 0 {
		settings.Depth = value
	}

	if value, ok := c.mapKeyToBool(envMap, EnvVerify); ok {
		settings.Verify = value
	}

	if value, ok := c.mapKeyToBool(envMap, EnvNoUI); ok {
		settings.NoUI = value
	}
}

func (c *Handler) mapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

func (c *Handler) mapKeyToInt(envMap map[string]string, key string) int {
	value := c.mapKeyToString(envMap, key)
	if value == "" {
		return -1
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

func (c *Handler) mapKeyToBool(envMap map[string]string, key string) (bool, bool) {
	value := c.mapKeyToString(envMap, key)
	if value == "" {
		return false, false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}

	return boolValue, true
}
