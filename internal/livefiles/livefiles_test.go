package livefiles

import "testing"

func TestAgeBucketOwnScheme(t *testing.T) {
	now := int64(1_700_000_000)
	cases := []struct {
		days int64
		want int
	}{
		{recentDays - 1, 0},
		{recentDays, 1},
		{oldDays - 1, 1},
		{oldDays, 2},
	}
	for _, c := range cases {
		mtime := now - c.days*86400
		if got := ageBucket(mtime, now); got != c.want {
			t.Fatalf("days=%d: got %d want %d", c.days, got, c.want)
		}
	}
}

func TestMatchesUserEmptyFilterMatchesAll(t *testing.T) {
	if !matchesUser("anyone", nil) {
		t.Fatal("empty filter should match everyone")
	}
	filter := map[string]struct{}{"alice": {}}
	if matchesUser("bob", filter) {
		t.Fatal("bob should not match alice-only filter")
	}
	if !matchesUser("alice", filter) {
		t.Fatal("alice should match")
	}
}
