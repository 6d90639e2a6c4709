package services

import "crypto/subtle"

// DefaultAdminPIN unlocks the price list when no PIN is configured.
const DefaultAdminPIN = "1234"

// VerifyPIN compares pin with the configured admin PIN. The PIN keeps casual
// users out of the price list; it is not an access-control mechanism.
func (s Settings) VerifyPIN(pin string) bool {
	want := s.AdminPIN
	if want == "" {
		want = DefaultAdminPIN
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(want)) == 1
}
