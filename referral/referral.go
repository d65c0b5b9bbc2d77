// Package referral sends membership invitations to family and friends.
package referral

import (
	"errors"
	"math/rand"
	"regexp"
	"time"

	"afiliado/api"
)

var r *rand.Rand

func init() {
	r = rand.New(rand.NewSource(time.Now().UnixNano()))
}

const allowedChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const codeLen = 10

// NewCode generates the invite code attached to an invitation, so the inviter
// gets credited when the invitee signs up.
func NewCode() string {
	b := make([]byte, codeLen)
	for i := range b {
		b[i] = allowedChars[r.Intn(len(allowedChars))]
	}
	return string(b)
}

var phoneRegex = regexp.MustCompile(`^\d{10}$`)

// Invitation is the form the user fills in.
type Invitation struct {
	Name         string
	Phone        string
	Neighborhood string
}

func (i Invitation) Validate() error {
	if i.Name == "" {
		return errors.New("name is required")
	}
	if !phoneRegex.MatchString(i.Phone) {
		return errors.New("phone must be 10 digits")
	}
	if i.Neighborhood == "" {
		return errors.New("neighborhood is required")
	}
	return nil
}

// Sender posts an invitation. client.Client satisfies it.
type Sender interface {
	SendInvitation(invitation api.InvitationArgs) error
}

// Send validates the form and submits it on behalf of userID. It returns the
// generated invite code.
func Send(s Sender, userID int64, invitation Invitation) (string, error) {
	if err := invitation.Validate(); err != nil {
		return "", err
	}
	code := NewCode()
	args := api.InvitationArgs{
		UserID:       userID,
		Name:         invitation.Name,
		Phone:        invitation.Phone,
		Neighborhood: invitation.Neighborhood,
		InviteCode:   code,
	}
	if err := s.SendInvitation(args); err != nil {
		return "", err
	}
	return code, nil
}
