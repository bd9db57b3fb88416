// Package snapshot encodes particle arrays into the little-endian binary
// frame consumed by the web client and the storage layer.
//
// Layout:
//
//	u64              particle count N
//	N × 64-byte record:
//	  f64 x, f64 y, f64 0      position (third component is padding)
//	  f64 vx, f64 vy, f64 0    velocity (third component is padding)
//	  f64 density
//	  f64 pressure
//
// Padding is written as zero and ignored on decode. Forces are not part of
// the frame and decode as zero.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/sphsim/internal/sph"
)

const (
	// HeaderSize is the length of the particle count prefix.
	HeaderSize = 8
	// RecordSize is the length of one encoded particle.
	RecordSize = 64
)

var (
	ErrTruncated     = errors.New("snapshot truncated")
	ErrTrailingBytes = errors.New("snapshot has trailing bytes")
)

// DecodeError reports where a frame stopped making sense.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Size returns the encoded length of n particles.
func Size(n int) int { return HeaderSize + n*RecordSize }

// Marshal encodes particles into a new byte slice.
func Marshal(particles []sph.Particle) []byte {
	buf := make([]byte, Size(len(particles)))
	binary.LittleEndian.PutUint64(buf, uint64(len(particles)))
	for i := range particles {
		putRecord(buf[HeaderSize+i*RecordSize:], &particles[i])
	}
	return buf
}

// Encode writes particles to w.
func Encode(w io.Writer, particles []sph.Particle) error {
	bw := bufio.NewWriter(w)
	var rec [RecordSize]byte

	binary.LittleEndian.PutUint64(rec[:HeaderSize], uint64(len(particles)))
	if _, err := bw.Write(rec[:HeaderSize]); err != nil {
		return err
	}
	for i := range particles {
		putRecord(rec[:], &particles[i])
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Unmarshal decodes a complete frame. The data length must match the count
// prefix exactly; on error no particles are returned.
func Unmarshal(data []byte) ([]sph.Particle, error) {
	if len(data) < HeaderSize {
		return nil, &DecodeError{Offset: 0, Err: ErrTruncated}
	}
	count := binary.LittleEndian.Uint64(data)
	avail := uint64(len(data)-HeaderSize) / RecordSize
	if count > avail {
		return nil, &DecodeError{Offset: int64(HeaderSize + avail*RecordSize), Err: ErrTruncated}
	}
	end := HeaderSize + int(count)*RecordSize
	if end != len(data) {
		return nil, &DecodeError{Offset: int64(end), Err: ErrTrailingBytes}
	}

	particles := make([]sph.Particle, count)
	for i := range particles {
		particles[i] = getRecord(data[HeaderSize+i*RecordSize:])
	}
	return particles, nil
}

// Decode reads r to EOF and decodes it as one frame.
func Decode(r io.Reader) ([]sph.Particle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Unmarshal(data)
}

func putRecord(b []byte, p *sph.Particle) {
	putF64(b[0:], p.Pos.X)
	putF64(b[8:], p.Pos.Y)
	putF64(b[16:], 0)
	putF64(b[24:], p.Vel.X)
	putF64(b[32:], p.Vel.Y)
	putF64(b[40:], 0)
	putF64(b[48:], p.Density)
	putF64(b[56:], p.Pressure)
}

func getRecord(b []byte) sph.Particle {
	return sph.Particle{
		Pos:      r2.Vec{X: getF64(b[0:]), Y: getF64(b[8:])},
		Vel:      r2.Vec{X: getF64(b[24:]), Y: getF64(b[32:])},
		Density:  getF64(b[48:]),
		Pressure: getF64(b[56:]),
	}
}

func putF64(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) }
func getF64(b []byte) float64    { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }
