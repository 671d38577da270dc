package fsindex

import (
	"strings"
	"testing"
)

func buildSample(t *testing.T) *Index {
	t.Helper()
	csv := "path,user,age,files,size,disk,linked,accessed,modified\n" +
		"/,alice,0,1,10,10,0,100,100\n" +
		"/a,alice,0,2,20,20,0,100,100\n" +
		"/a,bob,1,3,30,30,0,50,50\n" +
		"/a/b,alice,0,1,5,5,0,100,100\n"
	idx, err := LoadFromCSVReader(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestListChildrenRoot(t *testing.T) {
	idx := buildSample(t)
	out, err := idx.ListChildren("/", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Path != "/a" {
		t.Fatalf("got %+v", out)
	}
	if len(out[0].Users) != 2 {
		t.Fatalf("expected both alice and bob under /a, got %+v", out[0].Users)
	}
}

func TestListChildrenUserFilter(t *testing.T) {
	idx := buildSample(t)
	out, err := idx.ListChildren("/", []string{"alice"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %+v", out)
	}
	if _, ok := out[0].Users["bob"]; ok {
		t.Fatalf("bob should have been filtered out: %+v", out[0].Users)
	}
	if _, ok := out[0].Users["alice"]; !ok {
		t.Fatalf("alice missing: %+v", out[0].Users)
	}
}

func TestListChildrenNotFound(t *testing.T) {
	idx := buildSample(t)
	if _, err := idx.ListChildren("/does/not/exist", nil, nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListChildrenAgeFilter(t *testing.T) {
	idx := buildSample(t)
	bucket := 1
	out, err := idx.ListChildren("/", nil, &bucket)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %+v", out)
	}
	if _, ok := out[0].Users["alice"]; ok {
		t.Fatalf("alice has no bucket-1 stats, should be excluded: %+v", out[0].Users)
	}
	if _, ok := out[0].Users["bob"]; !ok {
		t.Fatalf("bob should remain with bucket-1 stats: %+v", out[0].Users)
	}
}

func TestGetUsersSorted(t *testing.T) {
	idx := buildSample(t)
	got := idx.GetUsers()
	want := []string{"alice", "bob"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestNormalizePathWindowsDrive(t *testing.T) {
	got := NormalizePath(`C:\foo\bar`)
	if got != "/C:/foo/bar" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalKeyTrailingSlash(t *testing.T) {
	if got := CanonicalKey("/a/b/"); got != "/a/b" {
		t.Fatalf("got %q", got)
	}
	if got := CanonicalKey("/"); got != "/" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadFromCSVReaderQuotedFields(t *testing.T) {
	csv := "path,user,age,files,size,disk,linked,accessed,modified\n" +
		"/,alice,0,1,10,10,0,100,100\n" +
		`"/a, b","al,ice",0,2,20,20,0,100,100` + "\n"
	idx, err := LoadFromCSVReader(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	out, err := idx.ListChildren("/", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Path != "/a, b" {
		t.Fatalf("got %+v", out)
	}
	if _, ok := out[0].Users["al,ice"]; !ok {
		t.Fatalf("expected owner %q, got %+v", "al,ice", out[0].Users)
	}
}
