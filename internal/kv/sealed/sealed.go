// Package sealed encrypts values at rest with an age passphrase before handing them to
// another kv.Store.
package sealed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/MrJamesThe3rd/spendview/internal/kv"
)

// Store seals values written to the wrapped store. Values that were written before
// sealing was enabled are returned as they are.
type Store struct {
	next       kv.Store
	passphrase string
	workFactor int
}

type Option func(*Store)

// WithWorkFactor sets the scrypt work factor (log2 of N) used for new values.
func WithWorkFactor(logN int) Option {
	return func(s *Store) {
		s.workFactor = logN
	}
}

func New(next kv.Store, passphrase string, opts ...Option) (*Store, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("sealed store requires a passphrase")
	}

	s := &Store{next: next, passphrase: passphrase}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, found, err := s.next.Get(ctx, key)
	if err != nil || !found {
		return value, found, err
	}

	if !strings.HasPrefix(strings.TrimSpace(value), armor.Header) {
		return value, true, nil
	}

	plain, err := s.open(value)
	if err != nil {
		return "", false, fmt.Errorf("decrypting %q: %w", key, err)
	}

	return plain, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return fmt.Errorf("encrypting %q: %w", key, err)
	}

	return s.next.Set(ctx, key, sealed)
}

func (s *Store) seal(value string) (string, error) {
	recipient, err := age.NewScryptRecipient(s.passphrase)
	if err != nil {
		return "", err
	}

	if s.workFactor > 0 {
		recipient.SetWorkFactor(s.workFactor)
	}

	var buf bytes.Buffer

	aw := armor.NewWriter(&buf)

	w, err := age.Encrypt(aw, recipient)
	if err != nil {
		return "", err
	}

	if _, err := io.WriteString(w, value); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	if err := aw.Close(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Store) open(value string) (string, error) {
	identity, err := age.NewScryptIdentity(s.passphrase)
	if err != nil {
		return "", err
	}

	r, err := age.Decrypt(armor.NewReader(strings.NewReader(value)), identity)
	if err != nil {
		return "", err
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}
