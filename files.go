package gofat

import (
	"fmt"
	"io"
	"log/slog"
)

// OpenFile opens the file at path with an fopen-style mode string:
// "r", "r+", "w", "w+", "a" or "a+", with an optional "b" marker.
// Writing modes create the file as needed, "w" and "w+" truncate an
// existing one and the append modes start with the file pointer at the
// end. The caller owns the returned [File] and closes it.
func (s *Session) OpenFile(path string, mode string) (*File, error) {
	m, err := parseMode(mode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return nil, err
	}

	h, err := s.conn.Open(path, m.flags)
	if err != nil {
		return nil, err
	}

	return &File{session: s, handle: h, path: path, mode: m}, nil
}

// WithFile runs fn with the file at path opened in the given mode and
// closes it afterwards. When fn succeeds, a close failure is reported;
// when fn fails, its error wins and the close failure is only logged.
func (s *Session) WithFile(path string, mode string, fn func(*File) error) error {
	f, err := s.OpenFile(path, mode)
	if err != nil {
		return err
	}

	fnErr := fn(f)

	if err := f.Close(); err != nil {
		if fnErr == nil {
			return err
		}

		slog.Warn("Failed to close file.", "path", path, "err", err)
	}

	return fnErr
}

// ReadFile reads the whole file at path.
func (s *Session) ReadFile(path string) ([]byte, error) {
	var data []byte

	err := s.WithFile(path, "r", func(f *File) error {
		var err error
		if data, err = io.ReadAll(f); err != nil {
			return fmt.Errorf("(gofat) failed to read %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ReadString reads the whole file at path as text.
func (s *Session) ReadString(path string) (string, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// WriteFile replaces the file at path with data, creating it as needed.
func (s *Session) WriteFile(path string, data []byte) error {
	return s.WithFile(path, "w", func(f *File) error {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("(gofat) failed to write %s: %w", path, err)
		}

		return nil
	})
}

// WriteString replaces the file at path with text, creating it as
// needed. It is the text counterpart of [Session.WriteFile].
func (s *Session) WriteString(path string, text string) error {
	return s.WriteFile(path, []byte(text))
}

// AppendFile appends data to the file at path, creating it as needed.
func (s *Session) AppendFile(path string, data []byte) error {
	return s.WithFile(path, "a", func(f *File) error {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("(gofat) failed to append to %s: %w", path, err)
		}

		return nil
	})
}

// AppendString appends text to the file at path, creating it as needed.
func (s *Session) AppendString(path string, text string) error {
	return s.AppendFile(path, []byte(text))
}
