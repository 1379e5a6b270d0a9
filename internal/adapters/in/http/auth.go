package http

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// HeaderActiveRole selects which of the caller's roles a request acts in.
const HeaderActiveRole = "X-Active-Role"

const actorKey = "marketplace.actor"

var ErrUnauthenticated = errors.New("unauthenticated")

// Claims is the part of a Supabase access token the service reads. The
// role lives in app_metadata, which only the service role can write.
type Claims struct {
	jwt.RegisteredClaims
	AppMetadata struct {
		Role  string   `json:"role"`
		Roles []string `json:"roles"`
	} `json:"app_metadata"`
}

// Authenticator verifies HS256 bearer tokens signed with the project's JWT
// secret and turns them into actors.
type Authenticator struct {
	secret   []byte
	audience string
}

func NewAuthenticator(secret, audience string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Authenticator{secret: []byte(secret), audience: audience}, nil
}

// Authenticate validates token and resolves the actor. activeRole may be
// empty; otherwise it must be one of the roles granted by the token.
func (a *Authenticator) Authenticate(token, activeRole string) (actor.Actor, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: subject: %w", ErrUnauthenticated, err)
	}

	roleName := claims.AppMetadata.Role
	if activeRole = strings.TrimSpace(activeRole); activeRole != "" {
		if !strings.EqualFold(activeRole, roleName) && !slices.ContainsFunc(claims.AppMetadata.Roles, func(r string) bool {
			return strings.EqualFold(r, activeRole)
		}) {
			return actor.Actor{}, fmt.Errorf("%w: role %q is not granted", ErrUnauthenticated, activeRole)
		}
		roleName = activeRole
	}

	role, err := actor.ParseRole(roleName)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return actor.NewActor(userID, role)
}

// Middleware authenticates every request of the group it is attached to.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				return writeError(c, fmt.Errorf("%w: missing bearer token", ErrUnauthenticated))
			}

			who, err := a.Authenticate(token, c.Request().Header.Get(HeaderActiveRole))
			if err != nil {
				return writeError(c, err)
			}

			c.Set(actorKey, who)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (actor.Actor, error) {
	a, ok := c.Get(actorKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, ErrUnauthenticated
	}
	return a, nil
}
