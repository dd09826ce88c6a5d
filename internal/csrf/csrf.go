// Package csrf protects the site's forms with double-submit cookies.
//
// A random token is set in a cookie and repeated in a hidden field of each
// form. A cross-site page can make the browser send the cookie but cannot
// read it, so it cannot put the matching value in the form body.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
)

const (
	CookieName    = "csrf_token"
	FormFieldName = "csrf_token"

	// TokenLength is the number of random bytes in a token.
	TokenLength = 32

	// CookieMaxAge keeps the token long enough to fill in the quote form.
	CookieMaxAge = 2 * 3600
)

// Message is shown when a form comes back without a valid token.
const Message = "Votre session a expiré. Veuillez recharger la page et renvoyer le formulaire."

// GenerateToken returns 32 random bytes, base64 URL-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the two tokens in constant time.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}

// ValidateRequest checks the form field against the cookie. It parses the
// form if needed.
func ValidateRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return ValidateToken(cookie.Value, r.FormValue(FormFieldName))
}

func SetCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetTokenFromRequest returns the cookie token, or "".
func GetTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// EnsureToken returns the request's token, issuing a new cookie when there
// is none. Page handlers call it before rendering a form.
func EnsureToken(w http.ResponseWriter, r *http.Request, isSecure bool) (string, error) {
	if token := GetTokenFromRequest(r); token != "" {
		return token, nil
	}
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	SetCookie(w, token, isSecure)
	return token, nil
}

// Protect rejects unsafe requests whose form token does not match the
// cookie with 403.
func Protect(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !ValidateRequest(r) {
				logger.Warn("csrf token rejected", "path", r.URL.Path, "method", r.Method)
				http.Error(w, Message, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
