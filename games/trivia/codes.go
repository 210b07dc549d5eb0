/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"crypto/rand"
	"strings"
)

const (
	codeLength   = 4
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// attempts before CreateRoom gives up on finding a free code
	maxCodeAttempts = 64
)

// RandomCode returns a crypto-random room code of four uppercase letters.
func RandomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, codeLength)
	for i := range out {
		out[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}

	return string(out), nil
}

// NormalizeCode upper-cases and trims a code typed in by a human.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
