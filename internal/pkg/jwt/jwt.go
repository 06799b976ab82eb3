package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "hrms_session"

var ErrInvalidSession = errors.New("invalid session token")

type Service interface {
	GenerateSessionToken(sessionID string) (token string, expiresAt int64, err error)
	ValidateSessionToken(tokenString string) (sessionID string, err error)
	SessionCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	sessionTTL time.Duration
	secure     bool
	tokenAuth  *jwtauth.JWTAuth
}

// NewJWTService signs session tokens with HS256. secure sets the Secure flag
// on issued cookies.
func NewJWTService(secretKey string, sessionTTL time.Duration, secure bool) Service {
	return &JWTService{
		sessionTTL: sessionTTL,
		secure:     secure,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateSessionToken(sessionID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.sessionTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"type": "session",
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// ValidateSessionToken checks signature, expiry and type and returns the
// session id
func (j *JWTService) ValidateSessionToken(tokenString string) (sessionID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", errors.Join(ErrInvalidSession, err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "session" {
		return "", ErrInvalidSession
	}

	sidVal, ok := token.Get("sid")
	if !ok {
		return "", ErrInvalidSession
	}

	sessionID, ok = sidVal.(string)
	if !ok || sessionID == "" {
		return "", ErrInvalidSession
	}

	return sessionID, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
