package common

// SessionCookieName is the default name of the cookie carrying the sealed
// session token.
const SessionCookieName = "jablog.session-token"

// Well-known application routes used by the edge gate and the verifier.
const (
	RootPath       = "/"
	LoginPath      = "/login"
	LandingPath    = "/summary"
	OnboardingPath = "/onboarding"
	// SignOutPath sits outside every gated prefix ("/logout" would match "/log").
	SignOutPath = "/sign-out"

	// CallbackParam carries the originally requested path through the login page.
	CallbackParam = "callbackUrl"
)
