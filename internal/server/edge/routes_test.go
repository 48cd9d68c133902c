package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Class
	}{
		{"/", ClassPublic},
		{"/about", ClassPublic},
		{"/sign-out", ClassPublic},
		{"/logout", ClassProtected},
		{"/static/app.css", ClassExcluded},
		{"/favicon.ico", ClassExcluded},
		{"/icons/logo.SVG", ClassExcluded},
		{"/summary/chart.png", ClassExcluded},
		{"/offline", ClassExcluded},
		{"/api", ClassAPI},
		{"/api/push/subscribe", ClassAPI},
		{"/apiary", ClassAPI},
		{"/login", ClassAuthOnly},
		{"/login/extra", ClassAuthOnly},
		{"/register", ClassAuthOnly},
		{"/forgot-password", ClassAuthOnly},
		{"/reset-password", ClassAuthOnly},
		{"/log", ClassProtected},
		{"/logbook", ClassProtected},
		{"/summary", ClassProtected},
		{"/results", ClassProtected},
		{"/jabs", ClassProtected},
		{"/jabs/new", ClassProtected},
		{"/calendar", ClassProtected},
		{"/settings", ClassProtected},
		{"/weight", ClassProtected},
		{"/onboarding", ClassProtected},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestClassify_AuthOnlyWinsOverProtectedOverlap(t *testing.T) {
	for _, p := range AuthOnlyPrefixes {
		for _, suffix := range []string{"", "/", "/x", "?next=/summary"} {
			assert.Equal(t, ClassAuthOnly, Classify(p+suffix), p+suffix)
		}
	}
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "public", ClassPublic.String())
	assert.Equal(t, "excluded", ClassExcluded.String())
	assert.Equal(t, "api", ClassAPI.String())
	assert.Equal(t, "auth_only", ClassAuthOnly.String())
	assert.Equal(t, "protected", ClassProtected.String())
}
