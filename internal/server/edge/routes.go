// Package edge is the optimistic first line of request triage. It decides
// redirects from the route class and whether a decodable session cookie is
// present. It never reads the data store, so its answers are hints for
// navigation and never an authorization decision.
package edge

import (
	"strings"
)

type Class int

const (
	ClassPublic Class = iota
	ClassExcluded
	ClassAPI
	ClassAuthOnly
	ClassProtected
)

func (c Class) String() string {
	switch c {
	case ClassExcluded:
		return "excluded"
	case ClassAPI:
		return "api"
	case ClassAuthOnly:
		return "auth_only"
	case ClassProtected:
		return "protected"
	default:
		return "public"
	}
}

var (
	ProtectedPrefixes = []string{"/summary", "/results", "/jabs", "/calendar", "/settings", "/log", "/weight", "/onboarding"}
	AuthOnlyPrefixes  = []string{"/login", "/register", "/forgot-password", "/reset-password"}
)

const (
	apiPrefix    = "/api"
	staticPrefix = "/static/"
	faviconPath  = "/favicon.ico"
	offlinePath  = "/offline"
)

var imageExtensions = []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico"}

// Classify maps path to exactly one class. Matching is by raw string
// prefix, so auth-only is tested before protected: "/login" also starts
// with "/log".
func Classify(path string) Class {
	switch {
	case isExcluded(path):
		return ClassExcluded
	case strings.HasPrefix(path, apiPrefix):
		return ClassAPI
	case hasAnyPrefix(path, AuthOnlyPrefixes):
		return ClassAuthOnly
	case hasAnyPrefix(path, ProtectedPrefixes):
		return ClassProtected
	default:
		return ClassPublic
	}
}

func isExcluded(path string) bool {
	if strings.HasPrefix(path, staticPrefix) || path == faviconPath || path == offlinePath {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
