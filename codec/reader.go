package codec

import (
	"encoding/binary"
	"fmt"
)

// Reader is a bounds-checked cursor over a byte slice. Every Get* method
// returns an error the moment it would read past the end, instead of the
// original's pattern of accumulating a boolean success flag across many
// reads and checking it once at the end.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b for sequential reading. b is not copied; the caller
// must not mutate it while the Reader is in use.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// require returns an error if fewer than n bytes remain.
func (r *Reader) require(n int) error {
	if r.Remaining() < n {
		return fmt.Errorf("codec: need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

// GetUint8 reads a single byte.
func (r *Reader) GetUint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// GetUint16BE reads a 16-bit big-endian integer.
func (r *Reader) GetUint16BE() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// GetUint16LE reads a 16-bit little-endian integer.
func (r *Reader) GetUint16LE() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// GetUint24BE reads a 24-bit big-endian integer into the low 3 bytes of
// a uint32 (TLS handshake length fields).
func (r *Reader) GetUint24BE() (uint32, error) {
	if err := r.require(3); err != nil {
		return 0, err
	}
	v := uint32(r.buf[r.pos])<<16 | uint32(r.buf[r.pos+1])<<8 | uint32(r.buf[r.pos+2])
	r.pos += 3
	return v, nil
}

// GetUint32BE reads a 32-bit big-endian integer.
func (r *Reader) GetUint32BE() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// GetUint64BE reads a 64-bit big-endian integer.
func (r *Reader) GetUint64BE() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// GetBytes reads n raw bytes. The returned slice aliases the reader's
// backing array; callers that retain it must copy.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// DupBytes reads n raw bytes and returns an independent copy.
func (r *Reader) DupBytes(n int) ([]byte, error) {
	v, err := r.GetBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, v)
	return out, nil
}

// Skip advances the cursor by n bytes without returning them, used to
// discard garbage fields (the CertificateRequest trailing bytes, quirk Q3).
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Rest returns all remaining unread bytes without advancing the cursor.
func (r *Reader) Rest() []byte { return r.buf[r.pos:] }
