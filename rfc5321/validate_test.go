package rfc5321

import (
	"bytes"
	"net"
	"strings"
	"testing"
)

func isDomain(t *testing.T, input string) bool {
	t.Helper()
	fqdn, err := NewFQDN(input)
	if err != nil {
		t.Fatal("error not expected ", err)
	}
	return fqdn.IsDomain()
}

func TestFQDN(t *testing.T) {
	if !isDomain(t, "example.com") {
		t.Error("example.com should be a domain")
	}
	if !isDomain(t, "host.domain.tld") {
		t.Error("host.domain.tld should be a domain")
	}
	// a trailing root dot is fine
	if !isDomain(t, "example.com.") {
		t.Error("example.com. should be a domain")
	}
	// a single label passes the syntax check
	if !isDomain(t, "localhost") {
		t.Error("localhost should be a domain")
	}
	if isDomain(t, "") {
		t.Error("empty string is not a domain")
	}
	if isDomain(t, ".") {
		t.Error("bare dot is not a domain")
	}
	if isDomain(t, "a..b") {
		t.Error("empty label is not a domain")
	}
}

func TestFQDNLabels(t *testing.T) {
	if isDomain(t, "-bad.tld") {
		t.Error("label may not start with -")
	}
	if isDomain(t, "bad-.tld") {
		t.Error("label may not end with -")
	}
	if isDomain(t, "3com.com") {
		t.Error("label may not start with a digit")
	}
	if !isDomain(t, "a-b-c.tld") {
		t.Error("inner hyphens are fine")
	}
	if !isDomain(t, "x11.tld") {
		t.Error("inner digits are fine")
	}
	if isDomain(t, "ex_ample.tld") {
		t.Error("underscore is not label material")
	}
	if !isDomain(t, strings.Repeat("a", 63)+".tld") {
		t.Error("63 octet label is fine")
	}
	if isDomain(t, strings.Repeat("a", 64)+".tld") {
		t.Error("64 octet label is too long")
	}
}

func TestFQDNTotalLength(t *testing.T) {
	label := strings.Repeat("a", 63)
	// 63+63+63+61 octets plus three dots: 253 in total
	ok := strings.Join([]string{label, label, label, strings.Repeat("a", 61)}, ".")
	if !isDomain(t, ok) {
		t.Error("253 octets should pass")
	}
	long := strings.Join([]string{label, label, label, strings.Repeat("a", 62)}, ".")
	if isDomain(t, long) {
		t.Error("254 octets should fail")
	}
}

func TestFQDNBound(t *testing.T) {
	if _, err := NewFQDN(strings.Repeat("a", LimitFQDN)); err != nil {
		t.Error("error not expected ", err)
	}
	if _, err := NewFQDN(strings.Repeat("a", LimitFQDN+1)); err != ErrInputTooLarge {
		t.Error("ErrInputTooLarge expected, got ", err)
	}
}

func TestParseIPv4(t *testing.T) {
	if ip := ParseIPv4("192.0.2.1"); !bytes.Equal(ip, net.IP{192, 0, 2, 1}) {
		t.Error("192.0.2.1 expected, got ", ip)
	}
	if ip := ParseIPv4("0.0.0.0"); ip == nil {
		t.Error("error not expected")
	}
	if ip := ParseIPv4("255.255.255.255"); ip == nil {
		t.Error("error not expected")
	}
	if ParseIPv4("0.0.0.256") != nil {
		t.Error("error expected, octet out of range")
	}
	if ParseIPv4("01.2.3.4") != nil {
		t.Error("error expected, leading zero")
	}
	if ParseIPv4("1.2.3") != nil {
		t.Error("error expected, three groups")
	}
	if ParseIPv4("1.2.3.4.5") != nil {
		t.Error("error expected, five groups")
	}
	if ParseIPv4("1.2.3.x") != nil {
		t.Error("error expected, not a digit")
	}
	if ParseIPv4("1.2.3.1234") != nil {
		t.Error("error expected, too many digits")
	}
}

func TestParseIPv6(t *testing.T) {
	want := net.IP{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	if ip := ParseIPv6("2001:db8::1"); !bytes.Equal(ip, want) {
		t.Error("2001:db8::1 expected, got ", ip)
	}
	if ip := ParseIPv6("2001:0000:3238:DFE1:0063:0000:0000:FEFB"); ip == nil {
		t.Error("error not expected")
	}
	if ip := ParseIPv6("2001:3238:DFE1:6323:FEFB:2536:1.2.3.2"); ip == nil {
		t.Error("error not expected")
	}
	if ip := ParseIPv6("::"); !bytes.Equal(ip, make(net.IP, 16)) {
		t.Error("all zeros expected, got ", ip)
	}
	if ip := ParseIPv6("::1"); ip[15] != 1 {
		t.Error("loopback expected, got ", ip)
	}
	if ip := ParseIPv6("1::"); ip == nil || ip[1] != 1 {
		t.Error("1:: expected to parse, got ", ip)
	}
	if ip := ParseIPv6("::ffff:192.0.2.1"); !bytes.Equal(ip[10:], net.IP{0xff, 0xff, 192, 0, 2, 1}) {
		t.Error("v4-mapped expected, got ", ip)
	}
	if ip := ParseIPv6("1:2:3:4:5:6:7:8"); ip == nil {
		t.Error("error not expected")
	}
}

func TestParseIPv6Bad(t *testing.T) {
	if ParseIPv6("1:2:3:4:5:6:7") != nil {
		t.Error("error expected, seven groups without ::")
	}
	if ParseIPv6("1:2:3:4:5:6:7:8:9") != nil {
		t.Error("error expected, nine groups")
	}
	if ParseIPv6("1::2:3:4:5:6:7:8") != nil {
		t.Error("error expected, :: must elide at least one group")
	}
	if ParseIPv6("1::2::3") != nil {
		t.Error("error expected, two ::")
	}
	if ParseIPv6(":1:2:3:4:5:6:7") != nil {
		t.Error("error expected, bare leading colon")
	}
	if ParseIPv6("1:2:3:4:5:6:7:") != nil {
		t.Error("error expected, bare trailing colon")
	}
	if ParseIPv6("12345::") != nil {
		t.Error("error expected, five digit group")
	}
	if ParseIPv6("g001::") != nil {
		t.Error("error expected, not hex")
	}
	if ParseIPv6("2001:db8::1%eth0") != nil {
		t.Error("error expected, zone identifier")
	}
	if ParseIPv6("1.2.3.4") != nil {
		t.Error("error expected, bare IPv4")
	}
	if ParseIPv6("1.2.3.4::") != nil {
		t.Error("error expected, embedded IPv4 must close the address")
	}
	if ParseIPv6("::1.2.3.4:5") != nil {
		t.Error("error expected, embedded IPv4 must close the address")
	}
}

func TestAddressLiteral(t *testing.T) {
	if !IsAddressLiteral("[127.0.0.1]") {
		t.Error("[127.0.0.1] should validate")
	}
	if !IsAddressLiteral("[IPv6:2001:db8::1]") {
		t.Error("[IPv6:2001:db8::1] should validate")
	}
	// the tag is matched case insensitively
	if !IsAddressLiteral("[ipv6:::1]") {
		t.Error("[ipv6:::1] should validate")
	}
	if IsAddressLiteral("[2001:db8::1]") {
		t.Error("IPv6 without the tag should not validate")
	}
	if IsAddressLiteral("[IPv6:1.2.3.4]") {
		t.Error("tagged IPv4 should not validate")
	}
	if IsAddressLiteral("127.0.0.1") {
		t.Error("missing brackets should not validate")
	}
	if IsAddressLiteral("[]") {
		t.Error("empty literal should not validate")
	}
	if ip := ParseAddressLiteral("[192.0.2.1]"); !bytes.Equal(ip, net.IP{192, 0, 2, 1}) {
		t.Error("192.0.2.1 expected, got ", ip)
	}
}

func TestIPAddress(t *testing.T) {
	a, err := NewIPAddress("2001:db8::1")
	if err != nil {
		t.Fatal("error not expected ", err)
	}
	if ip := a.V6(); len(ip) != net.IPv6len {
		t.Error("16 octets expected, got ", ip)
	}
	if a.V4() != nil {
		t.Error("V4 of an IPv6 input should be nil")
	}
	if ip := a.From(); len(ip) != net.IPv6len {
		t.Error("From should fall through to V6")
	}

	a, err = NewIPAddress("192.0.2.1")
	if err != nil {
		t.Fatal("error not expected ", err)
	}
	if ip := a.V4(); len(ip) != net.IPv4len {
		t.Error("4 octets expected, got ", ip)
	}
	if a.V6() != nil {
		t.Error("V6 of an IPv4 input should be nil")
	}

	if _, err = NewIPAddress(strings.Repeat("1", LimitIP+1)); err != ErrInputTooLarge {
		t.Error("ErrInputTooLarge expected, got ", err)
	}
}

func TestUnicodeFQDN(t *testing.T) {
	fqdn, err := NewUnicodeFQDN("bücher.example")
	if err != nil {
		t.Fatal("error not expected ", err)
	}
	if fqdn.String() != "xn--bcher-kva.example" {
		t.Error("A-label form expected, got ", fqdn.String())
	}
	if !fqdn.IsDomain() {
		t.Error("converted name should validate")
	}

	// plain ASCII passes through
	fqdn, err = NewUnicodeFQDN("example.com")
	if err != nil {
		t.Fatal("error not expected ", err)
	}
	if fqdn.String() != "example.com" {
		t.Error("example.com expected, got ", fqdn.String())
	}
}
