package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session_id"

func jwtSecret() []byte {
	return []byte(os.Getenv("KEY"))
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// EnsureSession assigns an anonymous session id on first contact. There are
// no accounts: the cookie session IS the player identity.
func EnsureSession(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(sessionKey) == nil {
		session.Set(sessionKey, newSessionID())
		if err := session.Save(); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
			return
		}
	}
	c.Next()
}

// SessionID returns the caller's session id, or "" if none was assigned.
func SessionID(c *gin.Context) string {
	session := sessions.Default(c)
	if v, ok := session.Get(sessionKey).(string); ok {
		return v
	}
	return ""
}

// MintSocketToken issues a short-lived JWT carrying the session id, so the
// socket handshake (which has no cookie jar on some clients) can prove who it
// is.
func MintSocketToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(12 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// DecodeSocketToken verifies a handshake token and returns the session id.
func DecodeSocketToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid socket token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid socket token claims")
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("socket token missing session id")
	}
	return sessionID, nil
}
