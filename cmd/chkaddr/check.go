package main

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/flashmob/go-rfc5322/rfc5321"
	"github.com/flashmob/go-rfc5322/rfc5322"
)

// run dispatches on the type flags and returns the process exit code. With
// several inputs the first failure decides the code; valid inputs still
// get their canonical form printed.
func run(args []string) int {
	var check func(string) int
	switch {
	case flagAddrSpec:
		check = checkAddrSpec
	case flagMailbox:
		check = checkSender(false)
	case flagAddress:
		check = checkSender(true)
	case flagMailboxList:
		check = checkList(false)
	case flagAddressList:
		check = checkList(true)
	case flagDomain:
		check = checkDomain
	case flagIPv4:
		check = checkIP(false)
	case flagIPv6:
		check = checkIP(true)
	default:
		for _, input := range args {
			diagnose(input)
		}
		return exitNoType
	}
	code := exitValid
	for _, input := range args {
		if c := check(input); c != exitValid && code == exitValid {
			code = c
		}
	}
	return code
}

func newPath(input string) *rfc5322.Path {
	p, err := rfc5322.NewPath(input)
	if err != nil {
		mainlog.WithError(err).Debug("input rejected")
		return nil
	}
	return p
}

func checkAddrSpec(input string) int {
	p := newPath(input)
	if p == nil {
		return exitParse
	}
	spec := p.AddrSpec()
	if spec == nil {
		return exitParse
	}
	if !spec.Valid {
		return exitInvalid
	}
	fmt.Println(spec)
	return exitValid
}

func checkSender(allowRFC6854 bool) func(string) int {
	return func(input string) int {
		p := newPath(input)
		if p == nil {
			return exitParse
		}
		addr := p.ForSender(allowRFC6854)
		if addr == nil {
			return exitParse
		}
		if !addr.Valid() {
			return exitInvalid
		}
		fmt.Println(addr)
		return exitValid
	}
}

func checkList(asAddressList bool) func(string) int {
	return func(input string) int {
		p := newPath(input)
		if p == nil {
			return exitParse
		}
		var list *rfc5322.AddressList
		if asAddressList {
			list = p.AddressList()
		} else {
			list = p.MailboxList()
		}
		if list == nil {
			return exitParse
		}
		if !list.Valid {
			mainlog.WithField("invalid", list.InvalidsToString()).Info("list has invalid items")
			return exitInvalid
		}
		fmt.Println(list)
		return exitValid
	}
}

func checkDomain(input string) int {
	if flagIDNA {
		converted, err := rfc5321.ToASCII(input)
		if err != nil {
			mainlog.WithError(err).Debug("idna conversion failed")
			return exitLiteral
		}
		input = converted
	}
	fqdn, err := rfc5321.NewFQDN(input)
	if err != nil || !fqdn.IsDomain() {
		return exitLiteral
	}
	fmt.Println(fqdn)
	return exitValid
}

func checkIP(v6 bool) func(string) int {
	return func(input string) int {
		addr, err := rfc5321.NewIPAddress(input)
		if err != nil {
			return exitLiteral
		}
		var ip net.IP
		if v6 {
			ip = addr.V6()
		} else {
			ip = addr.V4()
		}
		if ip == nil {
			return exitLiteral
		}
		fmt.Println(ip)
		return exitValid
	}
}

// diagnose logs which productions the input satisfies; the no-type-flag
// mode of the tool.
func diagnose(input string) {
	entry := mainlog.WithField("input", input)
	p := newPath(input)
	if p == nil {
		entry.Error("input rejected")
		return
	}
	matched := false
	if spec := p.AddrSpec(); spec != nil {
		matched = true
		entry.WithFields(logrus.Fields{
			"localPart": spec.LocalPart,
			"domain":    spec.Domain,
			"valid":     spec.Valid,
		}).Info("addr-spec")
	}
	if addr := p.ForSender(true); addr != nil {
		matched = true
		entry.WithFields(logrus.Fields{
			"group": addr.IsGroup(),
			"valid": addr.Valid(),
		}).Info("address")
	}
	if list := p.MailboxList(); list != nil {
		matched = true
		entry.WithFields(logrus.Fields{
			"count": len(list.Items),
			"valid": list.Valid,
		}).Info("mailbox-list")
	}
	if list := p.AddressList(); list != nil {
		matched = true
		entry.WithFields(logrus.Fields{
			"count":         len(list.Items),
			"isAddressList": list.IsAddressList,
			"valid":         list.Valid,
		}).Info("address-list")
	}
	if fqdn, err := rfc5321.NewFQDN(input); err == nil && fqdn.IsDomain() {
		matched = true
		entry.Info("domain")
	}
	if addr, err := rfc5321.NewIPAddress(input); err == nil {
		if ip := addr.From(); ip != nil {
			matched = true
			entry.WithField("ip", ip.String()).Info("ip address")
		}
	}
	if !matched {
		entry.Info("no production matched")
	}
}
