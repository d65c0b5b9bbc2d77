// Package session derives the signed-in user's context from the platform's
// bearer token and keeps the token on disk between runs.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession means the token does not identify a user and a party.
// Screens that need a session refuse to proceed on it.
var ErrInvalidSession = errors.New("session token missing user or party id")

type claims struct {
	UserID       int64  `json:"id"`
	PartyID      int64  `json:"id_partido"`
	FirstName    string `json:"nombre"`
	PaternalName string `json:"a_paterno"`
	MaternalName string `json:"a_materno"`
	Phone        string `json:"telefono"`
	ProfilePhoto string `json:"foto_perfil"`
	jwt.RegisteredClaims
}

// Session is the explicit session context handed to every screen-level
// component instead of each of them re-decoding the token.
type Session struct {
	UserID       int64
	PartyID      int64
	FirstName    string
	PaternalName string
	MaternalName string
	Phone        string
	ProfilePhoto string
}

// FullName joins the three name parts the platform stores separately.
func (s *Session) FullName() string {
	parts := []string{s.FirstName, s.PaternalName, s.MaternalName}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Parse decodes the token payload. The token is issued and verified by the
// platform; the client only reads the claims, so the signature is not checked
// here.
func Parse(token string) (*Session, error) {
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("failed to decode session token: %w", err)
	}

	if c.UserID == 0 || c.PartyID == 0 {
		return nil, ErrInvalidSession
	}

	return &Session{
		UserID:       c.UserID,
		PartyID:      c.PartyID,
		FirstName:    c.FirstName,
		PaternalName: c.PaternalName,
		MaternalName: c.MaternalName,
		Phone:        c.Phone,
		ProfilePhoto: c.ProfilePhoto,
	}, nil
}
