// Package wire owns the big-endian cursor primitives shared by option codecs.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrTruncated     = errors.New("wire: truncated data")
	ErrActiveOverrun = errors.New("wire: active length exceeds remaining data")
	ErrInvalidOffset = errors.New("wire: invalid offset")
)

// Input is a read cursor over a byte slice. An active window restricts
// reads to a prefix of the unread bytes.
type Input struct {
	buf  []byte
	pos  int
	end  int
	save int
}

func NewInput(b []byte) *Input {
	return &Input{buf: b, end: len(b), save: -1}
}

// Pos returns the absolute read offset.
func (in *Input) Pos() int {
	return in.pos
}

// Remaining reports the unread bytes inside the active window.
func (in *Input) Remaining() int {
	return in.end - in.pos
}

// SetActive limits subsequent reads to the next n bytes.
func (in *Input) SetActive(n int) error {
	if n < 0 || n > in.Remaining() {
		return fmt.Errorf("%w: want=%d have=%d", ErrActiveOverrun, n, in.Remaining())
	}
	in.save = in.end
	in.end = in.pos + n
	return nil
}

// ClearActive restores the window that was in place before SetActive.
func (in *Input) ClearActive() {
	if in.save < 0 {
		in.end = len(in.buf)
		return
	}
	in.end = in.save
	in.save = -1
}

func (in *Input) require(n int) error {
	if n > in.Remaining() {
		return fmt.Errorf("%w: need=%d have=%d", ErrTruncated, n, in.Remaining())
	}
	return nil
}

func (in *Input) ReadU8() (uint8, error) {
	if err := in.require(1); err != nil {
		return 0, err
	}
	v := in.buf[in.pos]
	in.pos++
	return v, nil
}

func (in *Input) ReadU16() (uint16, error) {
	if err := in.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(in.buf[in.pos : in.pos+2])
	in.pos += 2
	return v, nil
}

func (in *Input) ReadU32() (uint32, error) {
	if err := in.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(in.buf[in.pos : in.pos+4])
	in.pos += 4
	return v, nil
}

// ReadBytes returns a copy of the next n bytes.
func (in *Input) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidOffset
	}
	if err := in.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, in.buf[in.pos:in.pos+n])
	in.pos += n
	return out, nil
}

// ReadRemaining returns a copy of every unread byte in the active window.
func (in *Input) ReadRemaining() []byte {
	out := make([]byte, in.Remaining())
	copy(out, in.buf[in.pos:in.end])
	in.pos = in.end
	return out
}

// Output is a growable big-endian write cursor.
type Output struct {
	buf []byte
}

func NewOutput(capacity int) *Output {
	return &Output{buf: make([]byte, 0, capacity)}
}

func (out *Output) Len() int {
	return len(out.buf)
}

// Bytes returns the written bytes. The slice aliases the cursor buffer.
func (out *Output) Bytes() []byte {
	return out.buf
}

func (out *Output) WriteU8(v uint8) {
	out.buf = append(out.buf, v)
}

func (out *Output) WriteU16(v uint16) {
	out.buf = binary.BigEndian.AppendUint16(out.buf, v)
}

func (out *Output) WriteU32(v uint32) {
	out.buf = binary.BigEndian.AppendUint32(out.buf, v)
}

func (out *Output) WriteBytes(b []byte) {
	out.buf = append(out.buf, b...)
}

// WriteU16At overwrites two already-written bytes at pos.
func (out *Output) WriteU16At(pos int, v uint16) error {
	if pos < 0 || pos+2 > len(out.buf) {
		return ErrInvalidOffset
	}
	binary.BigEndian.PutUint16(out.buf[pos:pos+2], v)
	return nil
}

// Truncate discards everything written after the first n bytes.
func (out *Output) Truncate(n int) {
	if n < 0 || n > len(out.buf) {
		return
	}
	out.buf = out.buf[:n]
}
