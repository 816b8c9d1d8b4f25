package rpmdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/josevnz/rpmq/pkg/types"
)

// Header tags carried into a types.Package. Tag numbers are fixed by the rpm
// header format.
const (
	tagName     = 1000
	tagVersion  = 1001
	tagRelease  = 1002
	tagSize     = 1009
	tagArch     = 1022
	tagLongSize = 5009
)

// Header data types, subset needed here.
const (
	typeInt32  = 4
	typeInt64  = 5
	typeString = 6
)

// entrySize is the on-disk size of one header index entry:
// tag, type, offset, count, each a big-endian 32-bit integer.
const entrySize = 16

var errNoName = errors.New("header has no name tag")

// decodeHeader extracts the package fields rpmq reads from an rpmdb header
// blob. The blob is the stored header image: a 4-byte index entry count, a
// 4-byte data section length, the index entries, then the data section.
// LONGSIZE wins over SIZE when both are present.
func decodeHeader(blob []byte) (types.Package, error) {
	var pkg types.Package

	if len(blob) < 8 {
		return pkg, fmt.Errorf("header blob too short: %d bytes", len(blob))
	}
	il := int(binary.BigEndian.Uint32(blob[0:4]))
	dl := int(binary.BigEndian.Uint32(blob[4:8]))

	indexEnd := 8 + il*entrySize
	if il > (len(blob)-8)/entrySize {
		return pkg, fmt.Errorf("header index truncated: %d entries, %d bytes", il, len(blob))
	}
	data := blob[indexEnd:]
	if dl > len(data) {
		return pkg, fmt.Errorf("header data truncated: want %d bytes, have %d", dl, len(data))
	}
	data = data[:dl]

	var longSize bool
	for i := 0; i < il; i++ {
		entry := blob[8+i*entrySize : 8+(i+1)*entrySize]
		tag := int32(binary.BigEndian.Uint32(entry[0:4]))
		typ := binary.BigEndian.Uint32(entry[4:8])
		offset := int32(binary.BigEndian.Uint32(entry[8:12]))

		var err error
		switch tag {
		case tagName:
			pkg.Name, err = readString(data, typ, offset)
		case tagVersion:
			pkg.Version, err = readString(data, typ, offset)
		case tagRelease:
			pkg.Release, err = readString(data, typ, offset)
		case tagArch:
			pkg.Arch, err = readString(data, typ, offset)
		case tagSize:
			if !longSize {
				var v uint32
				v, err = readInt32(data, typ, offset)
				pkg.Size = int64(v)
			}
		case tagLongSize:
			pkg.Size, err = readInt64(data, typ, offset)
			longSize = true
		}
		if err != nil {
			return types.Package{}, fmt.Errorf("header tag %d: %w", tag, err)
		}
	}

	if pkg.Name == "" {
		return types.Package{}, errNoName
	}
	return pkg, nil
}

func readString(data []byte, typ uint32, offset int32) (string, error) {
	if typ != typeString {
		return "", fmt.Errorf("want string type, got %d", typ)
	}
	if offset < 0 || int(offset) >= len(data) {
		return "", fmt.Errorf("offset %d out of range", offset)
	}
	end := bytes.IndexByte(data[offset:], 0)
	if end < 0 {
		return "", errors.New("unterminated string")
	}
	return string(data[offset : int(offset)+end]), nil
}

func readInt32(data []byte, typ uint32, offset int32) (uint32, error) {
	if typ != typeInt32 {
		return 0, fmt.Errorf("want int32 type, got %d", typ)
	}
	if offset < 0 || int(offset)+4 > len(data) {
		return 0, fmt.Errorf("offset %d out of range", offset)
	}
	return binary.BigEndian.Uint32(data[offset : offset+4]), nil
}

func readInt64(data []byte, typ uint32, offset int32) (int64, error) {
	if typ != typeInt64 {
		return 0, fmt.Errorf("want int64 type, got %d", typ)
	}
	if offset < 0 || int(offset)+8 > len(data) {
		return 0, fmt.Errorf("offset %d out of range", offset)
	}
	return int64(binary.BigEndian.Uint64(data[offset : offset+8])), nil
}
