package httpapi

import (
	"html/template"
	"net/http"
)

// Placeholder markup. The real UI is rendered elsewhere; these pages only
// carry the forms the auth flow needs.
var pages = template.Must(template.New("layout").Parse(`
{{define "head"}}<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Title}} - jablog</title></head><body>
<h1>{{.Title}}</h1>
{{if .Error}}<p role="alert" class="error">{{.Error}}</p>{{end}}
{{if .Message}}<p role="status">{{.Message}}</p>{{end}}
{{end}}
{{define "foot"}}</body></html>{{end}}

{{define "landing"}}{{template "head" .}}
<p><a href="/login">Sign in</a> or <a href="/register">create an account</a>.</p>
{{template "foot" .}}{{end}}

{{define "offline"}}{{template "head" .}}<p>You are offline.</p>{{template "foot" .}}{{end}}

{{define "login"}}{{template "head" .}}
<form method="post" action="/login">
<input type="hidden" name="callbackUrl" value="{{.Callback}}">
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Sign in</button>
</form>
<p><a href="/forgot-password">Forgot password?</a> <a href="/register">Register</a></p>
{{template "foot" .}}{{end}}

{{define "register"}}{{template "head" .}}
<form method="post" action="/register">
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<label>Password <input type="password" name="password" minlength="8" required></label>
<button type="submit">Create account</button>
</form>
{{template "foot" .}}{{end}}

{{define "forgot-password"}}{{template "head" .}}
<form method="post" action="/forgot-password">
<label>Email <input type="email" name="email" required></label>
<button type="submit">Send reset link</button>
</form>
{{template "foot" .}}{{end}}

{{define "reset-password"}}{{template "head" .}}
<form method="post" action="/reset-password">
<input type="hidden" name="token" value="{{.Token}}">
<label>New password <input type="password" name="password" minlength="8" required></label>
<button type="submit">Set password</button>
</form>
{{template "foot" .}}{{end}}

{{define "onboarding"}}{{template "head" .}}
<form method="post" action="/onboarding">
<label>Name <input name="display_name" required></label>
<label>Medication <input name="medication"></label>
<label>Dose day <select name="dose_day">
<option value="0">Sunday</option><option value="1">Monday</option><option value="2">Tuesday</option>
<option value="3">Wednesday</option><option value="4">Thursday</option><option value="5">Friday</option>
<option value="6">Saturday</option></select></label>
<button type="submit">Continue</button>
</form>
{{template "foot" .}}{{end}}

{{define "page"}}{{template "head" .}}
<p>Signed in as {{.Name}} ({{.Email}}).</p>
<form method="post" action="/sign-out"><button type="submit">Sign out</button></form>
{{template "foot" .}}{{end}}
`))

type pageData struct {
	Title    string
	Error    string
	Message  string
	Email    string
	Name     string
	Callback string
	Token    string
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(r.Context(), "render page", "page", name, "error", err)
	}
}
