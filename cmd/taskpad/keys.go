package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
)

// loadOrCreateSigningKey reads a PEM-encoded ECDSA P-256 private key from
// path, generating and persisting a fresh one on first run. Replacing the
// key invalidates all outstanding tokens, which is acceptable since
// tokens are short-lived anyway.
func loadOrCreateSigningKey(
	path string,
) (
	*ecdsa.PrivateKey,
	error,
) {
	file, err := os.ReadFile(path)
	if err == nil {
		return decodeSigningKey(file)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("couldn't read key file '%s': %v", path, err)
	}

	log.Printf("no signing key at '%s', generating one\n", path)
	return createSigningKey(path)
}

func decodeSigningKey(file []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(file)
	if block == nil || block.Type != "EC PRIVATE KEY" {
		return nil, fmt.Errorf("key file is not a PEM-encoded EC private key")
	}

	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse EC private key: %v", err)
	}
	return key, nil
}

func createSigningKey(path string) (*ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("couldn't generate key: %v", err)
	}

	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal key: %v", err)
	}
	block := &pem.Block{Type: "EC PRIVATE KEY", Bytes: der}

	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return nil, fmt.Errorf("couldn't write key file '%s': %v", path, err)
	}
	return key, nil
}
