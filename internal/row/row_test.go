package row

import (
	"bytes"
	"testing"
)

func sampleRow() Row {
	return Row{
		Dev: 2049, Ino: 12345, Atime: 1672531200, Mtime: 1672617600,
		Uid: 1000, Gid: 1000, Mode: 33188, Size: 1024, Disk: 42,
		Path: []byte("/home/user/test.txt"),
	}
}

func TestEncodeCSVScenario1(t *testing.T) {
	got := string(EncodeCSV(sampleRow()))
	want := "2049-12345,1672531200,1672617600,1000,1000,33188,1024,42,/home/user/test.txt\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	cases := []Row{
		sampleRow(),
		{Dev: 1, Ino: 2, Path: []byte(`path with "quotes".txt`)},
		{Dev: 1, Ino: 2, Path: []byte("has,comma")},
		{Dev: 1, Ino: 2, Path: []byte("has\nnewline")},
		{Dev: 1, Ino: 2, Path: []byte("has\rcr")},
		{Dev: 1, Ino: 2, Path: []byte{0xFF, 0xFE, 'a', 'b'}},
		{Dev: 1, Ino: 2, Path: []byte("héllo/世界")},
		{Dev: 0, Ino: 0, Mode: 0, Path: []byte("")},
	}
	for _, r := range cases {
		enc := EncodeCSV(r)
		line := enc[:len(enc)-1]
		got, err := DecodeCSV(line)
		if err != nil {
			t.Fatalf("decode %q: %v", enc, err)
		}
		if got.Dev != r.Dev || got.Ino != r.Ino || got.Atime != r.Atime ||
			got.Mtime != r.Mtime || got.Uid != r.Uid || got.Gid != r.Gid ||
			got.Mode != r.Mode || got.Size != r.Size || got.Disk != r.Disk ||
			!bytes.Equal(got.Path, r.Path) {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, r)
		}
	}
}

func TestQuotingEmbeddedQuote(t *testing.T) {
	r := Row{Path: []byte(`path with "quotes".txt`)}
	enc := string(EncodeCSV(r))
	want := `"path with ""quotes"".txt"` + "\n"
	got := enc[len(enc)-len(want):]
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	rows := []Row{
		sampleRow(),
		{Dev: 1, Ino: 2, Path: []byte{0xFF, 0xFE}},
		{Dev: 1, Ino: 2, Path: []byte("")},
	}
	var buf bytes.Buffer
	if err := EncodeBinaryStream(&buf, rows); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBinaryStream(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows want %d", len(got), len(rows))
	}
	for i := range rows {
		g, w := got[i], rows[i]
		if g.Dev != w.Dev || g.Ino != w.Ino || g.Atime != w.Atime || g.Mtime != w.Mtime ||
			g.Uid != w.Uid || g.Gid != w.Gid || g.Mode != w.Mode || g.Size != w.Size ||
			g.Disk != w.Disk || !bytes.Equal(g.Path, w.Path) {
			t.Fatalf("row %d mismatch: got %+v want %+v", i, g, w)
		}
	}
}

func TestDecodeCSVStructuralErrors(t *testing.T) {
	if _, err := DecodeCSV([]byte("too,few,fields")); err != ErrFieldCount {
		t.Fatalf("expected ErrFieldCount, got %v", err)
	}
	if _, err := DecodeCSV([]byte("noinode,0,0,0,0,0,0,0,/x")); err != ErrBadInode {
		t.Fatalf("expected ErrBadInode, got %v", err)
	}
}

func TestDecodeCSVTolerantNumeric(t *testing.T) {
	got, err := DecodeCSV([]byte("1-2,bad,bad,bad,bad,bad,bad,bad,/x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Atime != 0 || got.Mtime != 0 || got.Uid != 0 || got.Size != 0 {
		t.Fatalf("expected zeroed numeric fields, got %+v", got)
	}
}

func TestCSVLineReaderQuotedNewline(t *testing.T) {
	data := "1-2,0,0,0,0,0,0,0,\"line1\nline2\"\n3-4,0,0,0,0,0,0,0,plain\n"
	rd := NewCSVLineReader(bytes.NewBufferString(data))
	l1, err := rd.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Count(l1, []byte("\n")) != 1 {
		t.Fatalf("expected embedded newline preserved in first record: %q", l1)
	}
	l2, err := rd.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(l2) != "3-4,0,0,0,0,0,0,0,plain" {
		t.Fatalf("got %q", l2)
	}
}
