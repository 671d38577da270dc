// Package webapi holds the thin contract the external HTTP router and
// JWT layer (both out of scope per spec §1) would plumb through to
// reach the core's list_children/get_items/get_users functions. It
// issues nothing and verifies nothing; it only types the boundary.
package webapi

import (
	"context"
	"errors"
	"strings"
)

// Claims is the shape a verified token's payload takes once the
// external JWT layer has done its job. Nothing in this package
// produces or parses one.
type Claims struct {
	Subject string
	IsAdmin bool
}

type claimsKey struct{}

// WithClaims returns a context carrying claims, for handlers to attach
// after verifying a token (elsewhere).
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom extracts Claims previously attached with WithClaims.
func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

// ErrForbidden is returned by Authorize; the external layer maps it to
// HTTP 403 per spec §6/§7.
var ErrForbidden = errors.New("webapi: forbidden")

// ParseUsersCSV splits a comma-separated user list, trimming whitespace
// and dropping empty entries, grounded in original_source's
// duapi/query.rs parse_users_csv.
func ParseUsersCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AdminSet builds the admin-group membership set from the ADMIN_GROUP
// environment value, grounded in original_source's duapi/handler.rs
// login_handler is_admin computation.
func AdminSet(adminGroupEnv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, u := range ParseUsersCSV(adminGroupEnv) {
		set[u] = struct{}{}
	}
	return set
}

// Authorize enforces spec §6's folder-query rule: a non-admin caller
// must pass exactly one user filter equal to their own identity, or the
// request is forbidden. Admin callers are never restricted.
func Authorize(c Claims, userFilter []string) error {
	if c.IsAdmin {
		return nil
	}
	if len(userFilter) != 1 || userFilter[0] != c.Subject {
		return ErrForbidden
	}
	return nil
}

// GetUsers returns the owner names visible to c: every owner for an
// admin, or just the caller's own identity otherwise, grounded in
// original_source's duapi/handler.rs users_handler.
func GetUsers(c Claims, allUsers []string) []string {
	if c.IsAdmin {
		return allUsers
	}
	return []string{c.Subject}
}
