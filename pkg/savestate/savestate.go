// Package savestate implements the byte-buffer snapshot format described in
// spec.md §6: a fixed header (magic, version, ROM CRC32, timestamp, size,
// reserved bytes) followed by length-prefixed component blocks written in a
// fixed order (CPU, PPU, APU, bus, cartridge). It is deliberately built on
// encoding/binary and hash/crc32 rather than a third-party serialization
// library; see DESIGN.md for why no library in the example corpus fits this
// exact fixed-layout, versioned, CRC-checked framing.
package savestate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"time"
)

var magic = [8]byte{'V', 'I', 'B', 'E', 'N', 'E', 'S', 0}

const formatVersion uint32 = 1

const headerSize = 8 + 4 + 4 + 8 + 4 + 32 // magic+version+crc+timestamp+size+reserved

// ErrWrongROM is returned when a save state's embedded PRG ROM CRC32 does
// not match the cartridge currently loaded.
var ErrWrongROM = errors.New("savestate: wrong ROM")

// ErrCorrupt is returned when the buffer is too short, has a bad magic or
// version, or its block framing doesn't add up.
var ErrCorrupt = errors.New("savestate: corrupt or truncated data")

// Serializable is implemented by every stateful component that participates
// in a save state: CPU, PPU, APU, the bus, and the cartridge/mapper.
type Serializable interface {
	SaveState(w *Writer)
	LoadState(r *Reader) error
}

// Writer accumulates a component's fields into one save-state block using
// fixed-width little-endian encoding, in the order the component chooses to
// write them (LoadState must read back in the same order).
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer ready to accept one component's fields.
func NewWriter() *Writer { return &Writer{} }

func (w *Writer) WriteUint8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteBytes(b []byte) { w.buf.Write(b) }

// Bytes returns the block accumulated so far.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Reader walks a component's block, consuming fixed-width fields in the
// same order Writer produced them. Every read is checked; a short block
// leaves later reads returning zero values rather than panicking, so a
// LoadState implementation can still return ErrCorrupt cleanly.
type Reader struct {
	buf *bytes.Reader
	err error
}

// NewReader wraps a component's block for sequential decoding.
func NewReader(data []byte) *Reader { return &Reader{buf: bytes.NewReader(data)} }

// Err reports the first short-read error encountered, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) ReadUint8() uint8 {
	b, err := r.buf.ReadByte()
	if err != nil {
		r.err = ErrCorrupt
		return 0
	}
	return b
}

func (r *Reader) ReadBool() bool { return r.ReadUint8() != 0 }

func (r *Reader) ReadUint16() uint16 {
	var b [2]byte
	if _, err := io.ReadFull(r.buf, b[:]); err != nil {
		r.err = ErrCorrupt
		return 0
	}
	return binary.LittleEndian.Uint16(b[:])
}

func (r *Reader) ReadUint32() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(r.buf, b[:]); err != nil {
		r.err = ErrCorrupt
		return 0
	}
	return binary.LittleEndian.Uint32(b[:])
}

func (r *Reader) ReadUint64() uint64 {
	var b [8]byte
	if _, err := io.ReadFull(r.buf, b[:]); err != nil {
		r.err = ErrCorrupt
		return 0
	}
	return binary.LittleEndian.Uint64(b[:])
}

func (r *Reader) ReadBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(r.buf, b); err != nil {
		r.err = ErrCorrupt
		return b
	}
	return b
}

// Encode frames prgCRCSource's CRC32 plus a sequence of already-written
// component blocks into the final save-state buffer. Callers pass blocks in
// the fixed order CPU, PPU, APU, bus, cartridge.
func Encode(prgCRCSource []byte, blocks [][]byte) []byte {
	var body bytes.Buffer
	for _, b := range blocks {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
		body.Write(lenBuf[:])
		body.Write(b)
	}

	var out bytes.Buffer
	out.Write(magic[:])
	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		out.Write(b[:])
	}
	writeU32(formatVersion)
	writeU32(crc32.ChecksumIEEE(prgCRCSource))
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], uint64(time.Now().Unix()))
	out.Write(ts[:])
	writeU32(uint32(body.Len()))
	out.Write(make([]byte, 32))
	out.Write(body.Bytes())
	return out.Bytes()
}

// Header is the decoded fixed-size save-state header on its own, without
// validating it against any particular cartridge.
type Header struct {
	Version   uint32
	PRGCRC32  uint32
	Timestamp time.Time
	DataSize  uint32
}

// ParseHeader decodes the magic/version/CRC32/timestamp/size header without
// requiring the matching cartridge's PRG ROM, for tooling that inspects a
// save-state file without resuming execution (e.g. `vibenes inspect-state`).
func ParseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, ErrCorrupt
	}
	if !bytes.Equal(data[:8], magic[:]) {
		return Header{}, ErrCorrupt
	}
	pos := 8
	version := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	romCRC := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	ts := binary.LittleEndian.Uint64(data[pos:])
	pos += 8
	size := binary.LittleEndian.Uint32(data[pos:])
	return Header{
		Version:   version,
		PRGCRC32:  romCRC,
		Timestamp: time.Unix(int64(ts), 0),
		DataSize:  size,
	}, nil
}

// Decode validates the header against prgCRCSource's CRC32 and splits the
// framed body back into its component blocks, in encode order.
func Decode(data []byte, prgCRCSource []byte) ([][]byte, error) {
	if len(data) < headerSize {
		return nil, ErrCorrupt
	}
	if !bytes.Equal(data[:8], magic[:]) {
		return nil, ErrCorrupt
	}
	pos := 8
	version := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	if version != formatVersion {
		return nil, ErrCorrupt
	}
	romCRC := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	pos += 8 // timestamp, informational only
	size := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	pos += 32 // reserved

	if romCRC != crc32.ChecksumIEEE(prgCRCSource) {
		return nil, ErrWrongROM
	}
	if pos+int(size) > len(data) {
		return nil, ErrCorrupt
	}
	body := data[pos : pos+int(size)]

	var blocks [][]byte
	bpos := 0
	for bpos < len(body) {
		if bpos+4 > len(body) {
			return nil, ErrCorrupt
		}
		blen := int(binary.LittleEndian.Uint32(body[bpos:]))
		bpos += 4
		if blen < 0 || bpos+blen > len(body) {
			return nil, ErrCorrupt
		}
		blocks = append(blocks, body[bpos:bpos+blen])
		bpos += blen
	}
	return blocks, nil
}
