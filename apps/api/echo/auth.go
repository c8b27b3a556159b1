package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/user"
)

// appJWTConfig is the default JWT auth middleware config. The session
// credential travels in an HTTP-only cookie, never in a script-readable
// channel.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "userToken",
	TokenLookup:   "cookie:" + core.Conf.Server.JWTCookieName,
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

func GetUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: usr.Role,
	}
}

// authenticate resolves the user by email and checks the password. Any
// mismatch fails with the same generic error: the caller never learns which
// of the two was wrong.
func authenticate(ctx context.Context, email, pwd string, svc *user.Service) (*Claims, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if err == user.ErrNotFound {
			return nil, errInvalidCredentials
		}
		return nil, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return nil, errInvalidCredentials
	}
	return GetUserClaims(usr), nil
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func newTokenCookie(token string) *http.Cookie {
	sameSite := http.SameSiteNoneMode
	if core.Conf.Debug {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     core.Conf.Server.JWTCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(core.Conf.Server.JWTExpirationDelta / time.Second),
		HttpOnly: true,
		Secure:   !core.Conf.Debug,
		SameSite: sameSite,
	}
}

func setTokenCookie(ctx echo.Context, token string) {
	ctx.SetCookie(newTokenCookie(token))
}

// clearTokenCookie instructs the client to discard the credential. The token
// itself stays cryptographically valid until expiry (stateless design).
func clearTokenCookie(ctx echo.Context) {
	cookie := newTokenCookie("")
	cookie.MaxAge = -1
	ctx.SetCookie(cookie)
}
