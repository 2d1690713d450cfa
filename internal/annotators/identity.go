package annotators

import (
	"net/http"

	"github.com/JaimeStill/groundtruth/pkg/auth"
)

// Request parameters that carry the issuer identity.
const (
	ParamIssuer  = "classification_issuer"
	ParamUser    = "user"
	CookieIssuer = "classification_issuer"
)

// Resolve returns the issuer a request acts on behalf of. A verified token
// identity wins over everything else, then explicit (typically a JSON body field),
// then the classification_issuer or user query parameter, then the
// classification_issuer cookie. The result is normalized; ok is false when
// no source yields a non-empty identity.
func Resolve(r *http.Request, explicit string) (string, bool) {
	if id, ok := auth.IdentityFrom(r.Context()); ok {
		if name := Normalize(id); name != "" {
			return name, true
		}
	}

	candidates := []string{
		explicit,
		r.URL.Query().Get(ParamIssuer),
		r.URL.Query().Get(ParamUser),
	}

	if c, err := r.Cookie(CookieIssuer); err == nil {
		candidates = append(candidates, c.Value)
	}

	for _, c := range candidates {
		if name := Normalize(c); name != "" {
			return name, true
		}
	}

	return "", false
}
