package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fullstackdevx/fso-part4/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimsContextKey is where JWTAuthMiddleware stores the verified claims
const ClaimsContextKey = "user"

var (
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
	errMissingUserID           = errors.New("token carries no user id")
)

// JWTAuthMiddleware checks for a valid bearer JWT signed with secret and
// stores its claims in the context.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token: missing Authorization header")
			}

			// Expecting "bearer <token>", scheme is case-insensitive
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token: expected bearer scheme")
			}

			claims, err := ParseToken(parts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// ParseToken verifies an HS256 token and returns its claims
func ParseToken(tokenString, secret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if id, err := primitive.ObjectIDFromHex(claims.UserID); err != nil || id.IsZero() {
		return nil, errMissingUserID
	}
	return claims, nil
}

// GenerateToken signs an HS256 token identifying user, valid for ttl
func GenerateToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ClaimsFromContext returns the claims stored by JWTAuthMiddleware
func ClaimsFromContext(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*models.JwtCustomClaims)
	return claims, ok
}

// UserIDFromContext returns the authenticated user's id
func UserIDFromContext(c echo.Context) (primitive.ObjectID, error) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return primitive.ObjectIDFromHex(claims.UserID)
}
