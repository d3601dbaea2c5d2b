package configuration_test

import (
	"errors"
	"testing"

	"github.com/desertwitch/gofat/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnvProvider is a test double for the env file reader.
type fakeEnvProvider struct {
	data  map[string]string
	err   error
	calls [][]string
}

func (f *fakeEnvProvider) Read(filenames ...string) (map[string]string, error) {
	f.calls = append(f.calls, filenames)

	return f.data, f.err
}

// TestHandlerLoad_Success_Defaults tests that no sources yield the
// documented defaults.
func TestHandlerLoad_Success_Defaults(t *testing.T) {
	fake := &fakeEnvProvider{}
	c := configuration.NewHandler(fake)

	settings, err := c.Load("")
	require.NoError(t, err)

	assert.Equal(t, configuration.DefaultImage, settings.Image)
	assert.Equal(t, configuration.DefaultMount, settings.Mount)
	assert.Equal(t, configuration.DefaultDrive, settings.Drive)
	assert.Equal(t, configuration.DefaultDepth, settings.Depth)
	assert.True(t, settings.Verify)
	assert.False(t, settings.NoUI)

	assert.Empty(t, fake.calls, "no env file given, reader should not run")
}

// TestHandlerLoad_Success_EnvFile tests that env file values land in the
// settings.
func TestHandlerLoad_Success_EnvFile(t *testing.T) {
	fake := &fakeEnvProvider{
		data: map[string]string{
			configuration.EnvImage:  "/tmp/disk",
			configuration.EnvMount:  "/vol",
			configuration.EnvDrive:  "2",
			configuration.EnvDepth:  "4",
			configuration.EnvVerify: "false",
			configuration.EnvNoUI:   "true",
		},
	}
	c := configuration.NewHandler(fake)

	settings, err := c.Load("gofat.env")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/disk", settings.Image)
	assert.Equal(t, "/vol", settings.Mount)
	assert.Equal(t, 2, settings.Drive)
	assert.Equal(t, 4, settings.Depth)
	assert.False(t, settings.Verify)
	assert.True(t, settings.NoUI)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"gofat.env"}, fake.calls[0])
}

// TestHandlerLoad_Success_EnvOverridesFile tests that process environment
// variables win over env file values.
func TestHandlerLoad_Success_EnvOverridesFile(t *testing.T) {
	fake := &fakeEnvProvider{
		data: map[string]string{
			configuration.EnvImage: "/from/file",
		},
	}
	c := configuration.NewHandler(fake)

	t.Setenv(configuration.EnvImage, "/from/env")

	settings, err := c.Load("gofat.env")
	require.NoError(t, err)

	assert.Equal(t, "/from/env", settings.Image)
}

// TestHandlerLoad_Success_BadValues tests that unparsable values leave the
// defaults untouched.
func TestHandlerLoad_Success_BadValues(t *testing.T) {
	fake := &fakeEnvProvider{
		data: map[string]string{
			configuration.EnvDrive:  "abc",
			configuration.EnvDepth:  "-3",
			configuration.EnvVerify: "maybe",
		},
	}
	c := configuration.NewHandler(fake)

	settings, err := c.Load("gofat.env")
	require.NoError(t, err)

	assert.Equal(t, configuration.DefaultDrive, settings.Drive)
	assert.Equal(t, configuration.DefaultDepth, settings.Depth)
	assert.True(t, settings.Verify)
}

// TestHandlerLoad_Fail_File tests that an unreadable env file surfaces
// the reader error.
func TestHandlerLoad_Fail_File(t *testing.T) {
	errRead := errors.New("no such file")

	fake := &fakeEnvProvider{err: errRead}
	c := configuration.NewHandler(fake)

	settings, err := c.Load("missing.env")
	require.ErrorIs(t, err, errRead)
	assert.Nil(t, settings)
}
