package rfc5322

import (
	"strings"

	"github.com/flashmob/go-rfc5322/rfc5321"
)

// AddrSpec is the local-part "@" domain production. LocalPart and Domain
// hold the raw text without surrounding CFWS; a quoted local part keeps its
// quotes and a domain literal keeps its brackets. Valid is settled at parse
// time from the RFC 5321 length and literal rules.
type AddrSpec struct {
	LocalPart string
	Domain    string
	Valid     bool
}

func newAddrSpec(local, domain string) *AddrSpec {
	a := &AddrSpec{LocalPart: local, Domain: domain}
	a.Valid = a.validate()
	return a
}

func (a *AddrSpec) validate() bool {
	switch {
	case len(a.LocalPart) > rfc5321.LimitLocalPart:
		return false
	case len(a.Domain) > rfc5321.LimitDomain:
		return false
	case len(a.LocalPart)+1+len(a.Domain) > rfc5321.LimitPath:
		return false
	}
	if strings.HasPrefix(a.Domain, "[") {
		return rfc5321.IsAddressLiteral(a.Domain)
	}
	fqdn, err := rfc5321.NewFQDN(a.Domain)
	if err != nil {
		return false
	}
	return fqdn.IsDomain()
}

func (a *AddrSpec) String() string {
	return a.LocalPart + "@" + a.Domain
}

// Address is a single mailbox or a named group of mailboxes; Mailbox is nil
// for groups. A group never contains another group: members come from the
// mailbox-list production only.
type Address struct {
	DisplayName string
	Mailbox     *AddrSpec
	Members     []*Address
}

func (a *Address) IsGroup() bool { return a.Mailbox == nil }

// Valid reports the mailbox's validity, or for a group that of every
// member.
func (a *Address) Valid() bool {
	if a.Mailbox != nil {
		return a.Mailbox.Valid
	}
	for _, m := range a.Members {
		if !m.Valid() {
			return false
		}
	}
	return true
}

func (a *Address) String() string {
	if a.IsGroup() {
		var b strings.Builder
		b.WriteString(a.DisplayName)
		b.WriteString(": ")
		for i, m := range a.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.String())
		}
		b.WriteString(";")
		return b.String()
	}
	if a.DisplayName != "" {
		return a.DisplayName + " <" + a.Mailbox.String() + ">"
	}
	return a.Mailbox.String()
}

// AddressList is the result of the address-list and mailbox-list entry
// points. Valid is true when the list is non-empty and every item is
// valid; IsAddressList is true when at least one item is a group.
type AddressList struct {
	Items         []*Address
	Valid         bool
	IsAddressList bool
}

func newAddressList(items []*Address) *AddressList {
	l := &AddressList{Items: items, Valid: len(items) > 0}
	for _, item := range items {
		if !item.Valid() {
			l.Valid = false
		}
		if item.IsGroup() {
			l.IsAddressList = true
		}
	}
	return l
}

func (l *AddressList) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}

// InvalidsToString renders only the invalid items, or "" when every item is
// valid. Callers check Valid first; the string is diagnostic only.
func (l *AddressList) InvalidsToString() string {
	var parts []string
	for _, item := range l.Items {
		if !item.Valid() {
			parts = append(parts, item.String())
		}
	}
	return strings.Join(parts, ", ")
}
