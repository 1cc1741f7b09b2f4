package auth

import (
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys set on authenticated requests
const (
	ContextSubjectKey = "auth_subject"
	ContextSessionKey = "auth_session"
)

// ProtectedPrefixes are the path prefixes behind the identity check
var ProtectedPrefixes = []string{"/dashboard", "/api/dashboard"}

var staticAssetRegex = regexp.MustCompile(`(?i)\.(css|js|map|png|jpe?g|gif|svg|ico|webp|avif|woff2?|ttf|txt|xml)$`)

// IsStaticAsset reports whether the last path segment names a static file
func IsStaticAsset(p string) bool {
	return staticAssetRegex.MatchString(path.Base(p))
}

// isStaticRequest reports whether the request reads a static file.
// API paths and writes never qualify, whatever their last segment looks like.
func isStaticRequest(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	return IsStaticAsset(r.URL.Path)
}

// IsProtectedRoute reports whether the path is under a protected prefix
func IsProtectedRoute(p string) bool {
	for _, prefix := range ProtectedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// Middleware gates protected routes behind a verified session.
// API requests without a session get 401, page requests are redirected to signInURL.
func Middleware(v *Verifier, signInURL string, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("middleware", "auth").Logger()

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if !IsProtectedRoute(p) || isStaticRequest(c.Request) {
			c.Next()
			return
		}

		claims, err := v.VerifyRequest(c.Request)
		if err != nil {
			log.Debug().Err(err).Str("path", p).Msg("Rejected unauthenticated request")
			if strings.HasPrefix(p, "/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Redirect(http.StatusFound, signInRedirect(signInURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Set(ContextSessionKey, claims.SessionID)
		c.Next()
	}
}

// Subject returns the verified user id of the request, if any
func Subject(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSubjectKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func signInRedirect(signInURL, returnTo string) string {
	u, err := url.Parse(signInURL)
	if err != nil {
		return signInURL
	}
	q := u.Query()
	q.Set("redirect_url", returnTo)
	u.RawQuery = q.Encode()
	return u.String()
}
