package webapi

import (
	"context"
	"testing"
)

func TestParseUsersCSV(t *testing.T) {
	got := ParseUsersCSV(" alice ,, bob,  ")
	want := []string{"alice", "bob"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestAuthorizeNonAdminMustMatchSelf(t *testing.T) {
	c := Claims{Subject: "alice", IsAdmin: false}
	if err := Authorize(c, []string{"alice"}); err != nil {
		t.Fatalf("expected allowed, got %v", err)
	}
	if err := Authorize(c, []string{"bob"}); err != ErrForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := Authorize(c, nil); err != ErrForbidden {
		t.Fatalf("expected forbidden for empty filter, got %v", err)
	}
	if err := Authorize(c, []string{"alice", "bob"}); err != ErrForbidden {
		t.Fatalf("expected forbidden for multi-user filter, got %v", err)
	}
}

func TestAuthorizeAdminUnrestricted(t *testing.T) {
	c := Claims{Subject: "root", IsAdmin: true}
	if err := Authorize(c, nil); err != nil {
		t.Fatalf("admin should never be forbidden, got %v", err)
	}
}

func TestClaimsContextRoundTrip(t *testing.T) {
	ctx := WithClaims(context.Background(), Claims{Subject: "alice"})
	c, ok := ClaimsFrom(ctx)
	if !ok || c.Subject != "alice" {
		t.Fatalf("got %+v %v", c, ok)
	}
	if _, ok := ClaimsFrom(context.Background()); ok {
		t.Fatal("expected no claims in bare context")
	}
}

func TestGetUsersScoping(t *testing.T) {
	all := []string{"alice", "bob", "root"}
	if got := GetUsers(Claims{Subject: "root", IsAdmin: true}, all); len(got) != 3 {
		t.Fatalf("admin should see all users, got %v", got)
	}
	got := GetUsers(Claims{Subject: "alice"}, all)
	if len(got) != 1 || got[0] != "alice" {
		t.Fatalf("non-admin should see only self, got %v", got)
	}
}
