// Payload compression.
//
// A compressed container stores its payload as one zstd frame. The encoder
// window is bounded by Config.BlockSize so that readers never need more than
// that much history to inflate a file. Inflation happens into memory, capped
// at Config.MaxInflate, and the result is parsed like an uncompressed
// payload.
package cktext

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math/bits"

	"github.com/klauspost/compress/zstd"
)

// Compression defaults.
const (
	DefaultBlockSize  = 1 << 20 // 1MB
	DefaultMaxInflate = 1 << 30 // 1GB
)

// Compression levels, mapped onto zstd encoder levels.
const (
	LevelFastest = 1
	LevelDefault = 2
	LevelBetter  = 3
	LevelBest    = 4
)

// windowSize turns a configured block size into a window zstd accepts:
// zero or negative selects the default, anything else is rounded up to a
// power of two and clamped to the encoder's limits.
func windowSize(n int) int {
	switch {
	case n <= 0:
		return DefaultBlockSize
	case n <= zstd.MinWindowSize:
		return zstd.MinWindowSize
	case n >= zstd.MaxWindowSize:
		return zstd.MaxWindowSize
	}
	return 1 << bits.Len(uint(n-1))
}

// progress counts bytes through a compression run and keeps the first
// error.
type progress struct {
	in, out int64
	err     error
}

// counter is an io.Writer that reports into a progress.
type counter struct {
	w io.Writer
	p *progress
}

func (c *counter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.p.out += int64(n)
	if err != nil && c.p.err == nil {
		c.p.err = err
	}
	return n, err
}

// deflate compresses src into w as a single frame.
func (d *Document) deflate(w io.Writer, src io.Reader) (*progress, error) {
	pgs := &progress{}
	enc, err := zstd.NewWriter(&counter{w: w, p: pgs},
		zstd.WithEncoderLevel(zstd.EncoderLevel(d.config.Level)),
		zstd.WithWindowSize(d.config.BlockSize),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return pgs, fmt.Errorf("%w: %w", ErrCompress, err)
	}

	pgs.in, err = io.Copy(enc, src)
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if pgs.err == nil {
			pgs.err = err
		}
		return pgs, fmt.Errorf("%w: %w", ErrCompress, pgs.err)
	}

	d.log.Debug("payload compressed",
		slog.Int64("in", pgs.in),
		slog.Int64("out", pgs.out))
	return pgs, nil
}

// inflate decompresses the frame that follows the header.
func (d *Document) inflate(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(d.config.MaxInflate)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer dec.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(dec, d.config.MaxInflate+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	if n > d.config.MaxInflate {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrDecompress, d.config.MaxInflate)
	}
	return buf.Bytes(), nil
}
