package fogis

import "time"

const (
	defaultBaseURL     = "https://fogis.svenskfotboll.se/mdk"
	defaultHTTPTimeout = 30 * time.Second

	loginPath = "/Login.aspx?ReturnUrl=%2fmdk%2f"

	// Cookies issued or expected by the remote system.
	authCookieName    = "FogisMobilDomarKlient.ASPXAUTH"
	consentCookieName = "cookieconsent_status"

	// ASP.NET login form field names. These are fixed by the remote markup;
	// usernameField and friends are what the form POST must carry.
	viewStateField       = "__VIEWSTATE"
	eventValidationField = "__EVENTVALIDATION"
	usernameField        = "ctl00$MainContent$UserName"
	passwordField        = "ctl00$MainContent$Password"
	loginButtonField     = "ctl00$MainContent$LoginButton"
	loginButtonValue     = "Logga in"

	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	browserAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif," +
		"image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
)

// Page-method endpoints, relative to the base URL.
const (
	endpointMatchList      = "/MatchWebMetoder.aspx/GetMatcherAttRapportera"
	endpointMatch          = "/MatchWebMetoder.aspx/GetMatch"
	endpointMatchPlayers   = "/MatchWebMetoder.aspx/GetMatchdeltagareLista"
	endpointMatchOfficials = "/MatchWebMetoder.aspx/GetMatchfunktionarerLista"
	endpointMatchEvents    = "/MatchWebMetoder.aspx/GetMatchhandelselista"
	endpointMatchResults   = "/MatchWebMetoder.aspx/GetMatchresultatlista"
	endpointTeamPlayers    = "/MatchWebMetoder.aspx/GetMatchdeltagareListaForMatchlag"
	endpointTeamOfficials  = "/MatchWebMetoder.aspx/GetMatchlagledareListaForMatchlag"
	endpointSaveEvent      = "/MatchWebMetoder.aspx/SparaMatchhandelse"
	endpointSaveResult     = "/MatchWebMetoder.aspx/SparaMatchresultatLista"
	endpointSaveOfficial   = "/MatchWebMetoder.aspx/SparaMatchlagledare"
	endpointDeleteEvent    = "/MatchWebMetoder.aspx/RaderaMatchhandelse"
	endpointClearEvents    = "/MatchWebMetoder.aspx/ClearMatchEvents"
	endpointFinishReport   = "/MatchWebMetoder.aspx/SparaMatchGodkannDomarrapport"
)
