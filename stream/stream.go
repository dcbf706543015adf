// Package stream feeds readers through automaton simulations.
//
// The input is read in fixed-size chunks and stepped one byte at a time, so
// memory use does not grow with the input. Reading stops as soon as the
// simulation is dead, since no further input can produce a match.
//
// Example usage with a compiled expression:
//
//	file, _ := os.Open("large.log")
//	defer file.Close()
//
//	res, err := stream.Run(file, stream.Config{
//	    BufferSize: 2 * 1024 * 1024, // 2MB chunks
//	}, sim.New(graph))
//	fmt.Println(res.Accepted, res.BytesRead)
package stream

import (
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultBufferSize is the chunk size used when Config.BufferSize is zero.
	DefaultBufferSize = 64 * 1024

	// MinBufferSize is the smallest chunk size Run accepts.
	MinBufferSize = 64
)

// Config configures streaming behavior.
type Config struct {
	// BufferSize is the chunk size for reading from the io.Reader.
	// Default: 64KB (65536).
	// Larger values reduce syscall overhead but use more memory.
	BufferSize int

	// MaxBytes stops reading after this many bytes. If the input goes on
	// past the limit the result reports the state after the bytes consumed
	// so far and sets Truncated. Zero means no limit.
	MaxBytes int64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: DefaultBufferSize,
	}
}

// ErrBufferTooSmall is returned when Config.BufferSize is below the minimum.
type ErrBufferTooSmall struct {
	Requested int
	Minimum   int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("stream: buffer size %d is below the minimum of %d", e.Requested, e.Minimum)
}

// Validate validates the Config and returns an error if invalid.
// A zero BufferSize is valid and replaced by the default.
func (c Config) Validate(minBuffer int) error {
	if c.BufferSize < 0 || (c.BufferSize > 0 && c.BufferSize < minBuffer) {
		return ErrBufferTooSmall{Requested: c.BufferSize, Minimum: minBuffer}
	}
	if c.MaxBytes < 0 {
		return errors.New("stream: max bytes cannot be negative")
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults(minBuffer int) Config {
	result := c

	if result.BufferSize == 0 {
		result.BufferSize = DefaultBufferSize
	}
	if result.BufferSize < minBuffer {
		result.BufferSize = minBuffer
	}

	return result
}

// Stepper is a simulation driven one byte at a time. *sim.Simulator
// implements it.
type Stepper interface {
	Step(c byte)
	Dead() bool
	Accepting() bool
}

// Result describes a completed run.
type Result struct {
	// Accepted reports whether the whole input was matched.
	Accepted bool

	// BytesRead is the number of bytes stepped through the simulation.
	BytesRead int64

	// Chunks is the number of non-empty reads.
	Chunks int

	// Stopped is set when reading ended early because the simulation died.
	Stopped bool

	// Truncated is set when input remained after Config.MaxBytes bytes. An
	// input of exactly MaxBytes bytes is not truncated.
	Truncated bool
}

// Run steps every byte of r through s and reports whether s accepts the
// whole input. s should be positioned at the start of its automaton.
func Run(r io.Reader, cfg Config, s Stepper) (Result, error) {
	if err := cfg.Validate(MinBufferSize); err != nil {
		return Result{}, err
	}
	cfg = cfg.ApplyDefaults(MinBufferSize)

	var res Result
	buf := make([]byte, cfg.BufferSize)
	for {
		if s.Dead() {
			res.Stopped = true
			return res, nil
		}

		chunk := buf
		if cfg.MaxBytes > 0 {
			left := cfg.MaxBytes - res.BytesRead
			if left <= 0 {
				more, err := hasMore(r)
				if err != nil {
					return res, fmt.Errorf("stream: read failed: %w", err)
				}
				res.Truncated = more
				res.Accepted = s.Accepting()
				return res, nil
			}
			if left < int64(len(chunk)) {
				chunk = chunk[:left]
			}
		}

		n, err := r.Read(chunk)
		if n > 0 {
			res.Chunks++
			for _, c := range chunk[:n] {
				if s.Dead() {
					break
				}
				s.Step(c)
				res.BytesRead++
			}
		}

		if errors.Is(err, io.EOF) {
			res.Accepted = s.Accepting()
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("stream: read failed: %w", err)
		}
	}
}

// hasMore reads a single byte from r to tell whether input remains.
func hasMore(r io.Reader) (bool, error) {
	var one [1]byte
	_, err := io.ReadFull(r, one[:])
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, io.EOF):
		return false, nil
	default:
		return false, err
	}
}
