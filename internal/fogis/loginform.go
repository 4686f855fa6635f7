package fogis

import (
	"io"

	"github.com/PuerkitoBio/goquery"
)

// loginForm holds everything extracted from the login page that must be
// resubmitted: the form's action URL (possibly relative) and its hidden
// fields, including the ASP.NET anti-forgery state.
type loginForm struct {
	Action string
	Hidden map[string]string
}

// parseLoginForm extracts the login form from markup. It prefers the
// #aspnetForm element, falls back to the first form, and as a last resort
// collects hidden inputs document-wide. The form is only considered
// recognized when both __VIEWSTATE and __EVENTVALIDATION are present.
func parseLoginForm(r io.Reader) (*loginForm, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &LoginError{Message: "login failed: could not parse login page: " + err.Error()}
	}

	form := doc.Find("form#aspnetForm").First()
	if form.Length() == 0 {
		form = doc.Find("form").First()
	}

	parsed := &loginForm{Hidden: make(map[string]string)}
	scope := form
	if form.Length() == 0 {
		scope = doc.Selection
	} else {
		parsed.Action, _ = form.Attr("action")
	}

	scope.Find(`input[type="hidden"]`).Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		value, _ := s.Attr("value")
		parsed.Hidden[name] = value
	})

	if _, ok := parsed.Hidden[viewStateField]; !ok {
		return nil, &LoginError{Message: "login failed: could not find login form or required form elements"}
	}
	if _, ok := parsed.Hidden[eventValidationField]; !ok {
		return nil, &LoginError{Message: "login failed: could not find login form or required form elements"}
	}

	return parsed, nil
}
