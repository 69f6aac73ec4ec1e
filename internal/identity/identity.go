// Package identity validates account identities and applies the configured
// authorization policy to the parties of a dataset registration.
package identity

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// KeySize is the decoded length of an identity.
const KeySize = 32

var (
	ErrInvalidIdentity = errors.New("identity must be a base58 encoded 32-byte key")
	ErrUnauthorized    = errors.New("caller is not authorized for this operation")
	ErrUnknownPolicy   = errors.New("unknown authorization policy")
)

// Validate reports whether s is a well-formed identity.
func Validate(s string) error {
	if s == "" {
		return ErrInvalidIdentity
	}
	b, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	if len(b) != KeySize {
		return ErrInvalidIdentity
	}
	return nil
}

// Encode renders a raw key as an identity string.
func Encode(key [KeySize]byte) string {
	return base58.Encode(key[:])
}

// Parties are the identities presented with a dataset registration.
type Parties struct {
	Admin       string
	User        string
	Contributor string
}

// Validate checks every party's identity format.
func (p Parties) Validate() error {
	for _, id := range []string{p.Admin, p.User, p.Contributor} {
		if err := Validate(id); err != nil {
			return err
		}
	}
	return nil
}

// Policy decides which relationship between the parties is required.
type Policy string

const (
	// PolicyOpen leaves write access to the record store's addressing.
	PolicyOpen Policy = "open"
	// PolicySelf requires the acting user to be the contributor.
	PolicySelf Policy = "self"
	// PolicyAdmin requires the acting user to be the registry administrator.
	PolicyAdmin Policy = "admin"
)

// ParsePolicy maps a configuration value onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyOpen, PolicySelf, PolicyAdmin:
		return p, nil
	case "":
		return PolicyOpen, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Authorize applies the policy to the parties of a registration.
func (p Policy) Authorize(parties Parties) error {
	switch p {
	case PolicySelf:
		if parties.User != parties.Contributor {
			return ErrUnauthorized
		}
	case PolicyAdmin:
		if parties.User != parties.Admin {
			return ErrUnauthorized
		}
	}
	return nil
}
