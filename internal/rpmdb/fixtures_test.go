package rpmdb

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josevnz/rpmq/pkg/types"
)

// headerEntry is one tag to encode into a synthetic header blob.
type headerEntry struct {
	tag     int32
	typ     uint32
	payload []byte
}

func stringEntry(tag int32, s string) headerEntry {
	return headerEntry{tag: tag, typ: typeString, payload: append([]byte(s), 0)}
}

func int32Entry(tag int32, v uint32) headerEntry {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, v)
	return headerEntry{tag: tag, typ: typeInt32, payload: payload}
}

func int64Entry(tag int32, v uint64) headerEntry {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, v)
	return headerEntry{tag: tag, typ: typeInt64, payload: payload}
}

// buildHeader assembles entries into a header blob in the stored image
// layout: entry count, data length, index entries, data section. Numeric
// payloads are aligned the way rpm aligns them.
func buildHeader(entries []headerEntry) []byte {
	var data bytes.Buffer
	index := make([]byte, 0, len(entries)*entrySize)

	for _, e := range entries {
		align := 1
		switch e.typ {
		case typeInt32:
			align = 4
		case typeInt64:
			align = 8
		}
		for data.Len()%align != 0 {
			data.WriteByte(0)
		}

		var ent [entrySize]byte
		binary.BigEndian.PutUint32(ent[0:4], uint32(e.tag))
		binary.BigEndian.PutUint32(ent[4:8], e.typ)
		binary.BigEndian.PutUint32(ent[8:12], uint32(data.Len()))
		binary.BigEndian.PutUint32(ent[12:16], 1)
		index = append(index, ent[:]...)

		data.Write(e.payload)
	}

	blob := make([]byte, 8, 8+len(index)+data.Len())
	binary.BigEndian.PutUint32(blob[0:4], uint32(len(entries)))
	binary.BigEndian.PutUint32(blob[4:8], uint32(data.Len()))
	blob = append(blob, index...)
	blob = append(blob, data.Bytes()...)
	return blob
}

// packageHeader encodes pkg as a header blob the way rpm stores it, using
// LONGSIZE only when the size does not fit in 32 bits.
func packageHeader(pkg types.Package) []byte {
	entries := []headerEntry{
		stringEntry(tagName, pkg.Name),
		stringEntry(tagVersion, pkg.Version),
	}
	if pkg.Release != "" {
		entries = append(entries, stringEntry(tagRelease, pkg.Release))
	}
	if pkg.Arch != "" {
		entries = append(entries, stringEntry(tagArch, pkg.Arch))
	}
	if pkg.Size > math.MaxUint32 {
		entries = append(entries, int64Entry(tagLongSize, uint64(pkg.Size)))
	} else {
		entries = append(entries, int32Entry(tagSize, uint32(pkg.Size)))
	}
	return buildHeader(entries)
}

// openRW opens a fixture database writable, for tests that corrupt rows.
func openRW(path string) (*sql.DB, error) {
	return sql.Open(driverName, path)
}

// createFixtureDB writes an rpmdb-shaped SQLite file holding pkgs in order
// and returns its path.
func createFixtureDB(t *testing.T, pkgs []types.Package) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rpmdb.sqlite")
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE Packages (hnum INTEGER PRIMARY KEY AUTOINCREMENT, blob BLOB NOT NULL)")
	require.NoError(t, err)

	for _, pkg := range pkgs {
		_, err = db.Exec("INSERT INTO Packages (blob) VALUES (?)", packageHeader(pkg))
		require.NoError(t, err)
	}
	return path
}
