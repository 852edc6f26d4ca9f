// Package secret resuelve la clave de cifrado de la base SQLite.
package secret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyName es la entrada del keyring donde se guarda la clave.
const KeyName = "db-encryption-key"

var ErrKeyNotFound = errors.New("database encryption key not found")

// Keyring guarda la clave de la base en el keyring del SO (Keychain, Secret Service, WinCred).
type Keyring struct {
	service string
}

func NewKeyring(service string) *Keyring {
	service = strings.TrimSpace(service)
	if service == "" {
		service = "vetsoft"
	}
	return &Keyring{service: service}
}

func (k *Keyring) GetKey() (string, error) {
	v, err := keyring.Get(k.service, KeyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return v, nil
}

func (k *Keyring) SetKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key cannot be empty")
	}
	if err := keyring.Set(k.service, KeyName, key); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (k *Keyring) DeleteKey() error {
	err := keyring.Delete(k.service, KeyName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}

// ResolveKey prioriza la clave explícita (config/env); si no hay, va al keyring.
// Una base SQLite sin clave (no cifrada) es válida: ErrKeyNotFound se traduce en "".
func ResolveKey(explicit string, kr *Keyring) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if kr == nil {
		return "", nil
	}
	key, err := kr.GetKey()
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	return key, err
}
