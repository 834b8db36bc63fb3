package auth

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

// JwtIssuer is the issuer claim of every session token
const JwtIssuer = "JobPortal"

var (
	signingMu      sync.RWMutex
	secretKey      = []byte(os.Getenv("SECRET_KEY"))
	accessTokenTTL = time.Hour
)

// SetSigningKey replaces the HMAC secret and the access token lifetime.
func SetSigningKey(secret string, ttl time.Duration) {
	signingMu.Lock()
	defer signingMu.Unlock()
	secretKey = []byte(secret)
	if ttl > 0 {
		accessTokenTTL = ttl
	}
}

func signingKey() ([]byte, time.Duration) {
	signingMu.RLock()
	defer signingMu.RUnlock()
	return secretKey, accessTokenTTL
}

// GenerateStandardToken issues an access token for userID with the configured lifetime.
func GenerateStandardToken(userID uuid.UUID) (string, *jwt.RegisteredClaims, error) {
	_, ttl := signingKey()
	return GenerateTokenWithDuration(userID, ttl)
}

// GenerateTokenWithDuration issues an HS256 token whose subject is userID.
func GenerateTokenWithDuration(userID uuid.UUID, d time.Duration) (string, *jwt.RegisteredClaims, error) {
	key, _ := signingKey()
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    JwtIssuer,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", nil, fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, claims, nil
}

// ValidatedToken parses encodeToken and checks signature, expiry and issuer.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	key, _ := signingKey()
	token, err := jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !claims.VerifyIssuer(JwtIssuer, true) {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return token, nil
}
