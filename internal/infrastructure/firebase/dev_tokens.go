package firebase

import (
	"context"
	"crypto/subtle"
	"errors"
)

var ErrNoVerifier = errors.New("token verification is not configured")

type verifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// DevTokenVerifier accepts one static token bound to a fixed uid and defers
// every other token to next. next may be nil when no Firebase project is set.
type DevTokenVerifier struct {
	token string
	uid   string
	next  verifier
}

func NewDevTokenVerifier(token, uid string, next verifier) *DevTokenVerifier {
	return &DevTokenVerifier{
		token: token,
		uid:   uid,
		next:  next,
	}
}

func (d *DevTokenVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if d.token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(d.token)) == 1 {
		return d.uid, nil
	}
	if d.next == nil {
		return "", ErrNoVerifier
	}
	return d.next.VerifyToken(ctx, token)
}
