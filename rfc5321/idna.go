package rfc5321

import "golang.org/x/net/idna"

// The validators in this package are byte-strict and reject anything
// outside US-ASCII; callers holding an internationalised domain convert it
// to its A-label form first.

// ToASCII converts a domain with U-labels to its punycode A-label form.
func ToASCII(domain string) (string, error) {
	return idna.Lookup.ToASCII(domain)
}

// NewUnicodeFQDN converts input to its A-label form and wraps it for
// validation.
func NewUnicodeFQDN(input string) (*FQDN, error) {
	ascii, err := ToASCII(input)
	if err != nil {
		return nil, err
	}
	return NewFQDN(ascii)
}
