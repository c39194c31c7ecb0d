package models

import "math/rand/v2"

const inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is the length of generated invite codes.
const InviteCodeLength = 6

// NewInviteCode returns a short uppercase code granting access to a private
// group. Codes are stored uppercase and matched case-insensitively.
func NewInviteCode() string {
	b := make([]byte, InviteCodeLength)
	for i := range b {
		b[i] = inviteAlphabet[rand.IntN(len(inviteAlphabet))]
	}
	return string(b)
}

// ShortenWallet renders a wallet address in the usual abbreviated form,
// e.g. "4Nd1...pqrs". Addresses short enough to show whole are returned as is.
func ShortenWallet(wallet string) string {
	const chars = 4
	if len(wallet) <= chars*2 {
		return wallet
	}
	return wallet[:chars] + "..." + wallet[len(wallet)-chars:]
}
