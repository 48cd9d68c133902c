package edge

import (
	"net/url"

	"github.com/dmitrijs2005/jablog/internal/common"
)

// Decision is what the gate does with one request. An empty Redirect means
// pass through.
type Decision struct {
	Class    Class
	Redirect string
}

func (d Decision) Pass() bool {
	return d.Redirect == ""
}

// Decide is pure: the same path and session state always give the same
// decision.
func Decide(path string, hasSession bool) Decision {
	class := Classify(path)
	d := Decision{Class: class}

	switch class {
	case ClassAPI, ClassExcluded:
	case ClassAuthOnly:
		if hasSession {
			d.Redirect = common.LandingPath
		}
	case ClassProtected:
		if !hasSession {
			d.Redirect = LoginURL(path)
		}
	default:
		if path == common.RootPath && hasSession {
			d.Redirect = common.LandingPath
		}
	}
	return d
}

// LoginURL is the login page with callback set to path.
func LoginURL(path string) string {
	q := url.Values{}
	q.Set(common.CallbackParam, path)
	return common.LoginPath + "?" + q.Encode()
}
