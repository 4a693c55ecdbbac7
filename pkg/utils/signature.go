package utils

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// MidtransSignature returns the hex SHA-512 of orderID, statusCode, grossAmount and serverKey
// concatenated without separators.
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifyMidtransSignature reports whether signature matches the expected notification signature.
func VerifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	expected := MidtransSignature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
