// Package crypto implements document encryption for stored blobs.
//
// Documents are encrypted with AES-256 in CBC mode using PKCS#7 padding.
// A fresh key and IV are generated per document; the IV is persisted on
// the order row while the key is handed back to the uploader exactly once.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/web2print/backend/internal/domain/shared"
)

// KeySize is the AES key length in bytes (AES-256)
const KeySize = 32

// Encryptor encrypts and decrypts document blobs
type Encryptor struct{}

// NewEncryptor creates a new Encryptor
func NewEncryptor() *Encryptor {
	return &Encryptor{}
}

// Encrypt encrypts plain with a freshly generated 256-bit key and 128-bit IV.
// The caller owns the returned key material.
func (e *Encryptor) Encrypt(plain []byte) (ciphertext, key, iv []byte, err error) {
	key = make([]byte, KeySize)
	if _, err = rand.Read(key); err != nil {
		return nil, nil, nil, err
	}

	iv = make([]byte, aes.BlockSize)
	if _, err = rand.Read(iv); err != nil {
		return nil, nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, err
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, key, iv, nil
}

// Decrypt decrypts ciphertext with the given key and IV
func (e *Encryptor) Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, shared.ErrDecryptionFailed
	}
	if len(iv) != aes.BlockSize {
		return nil, shared.ErrDecryptionFailed
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, shared.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, shared.ErrDecryptionFailed
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	return pkcs7Unpad(plain, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, shared.ErrDecryptionFailed
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, shared.ErrDecryptionFailed
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, shared.ErrDecryptionFailed
		}
	}
	return data[:len(data)-padding], nil
}
