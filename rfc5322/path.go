package rfc5322

// LimitInput bounds the input accepted by NewPath, in codepoints.
const LimitInput = 131072

// Path parses one input string against the RFC 5322 address productions.
// A Path is not safe for concurrent use; every entry point rewinds the
// cursor to the start of the input first, so one instance is reusable
// serially. Entry points succeed only when the whole input is consumed and
// leave the cursor at the end on success, at the start on failure.
type Path struct {
	p Parser
}

// NewPath returns a parser over input, or ErrInputTooLarge when input is
// longer than LimitInput codepoints.
func NewPath(input string) (*Path, error) {
	cur, err := NewCursor(input, LimitInput)
	if err != nil {
		return nil, err
	}
	return &Path{p: Parser{cur: cur}}, nil
}

func (p *Path) rewind() {
	_ = p.p.cur.Jump(0)
}

func (p *Path) atEnd() bool {
	return p.p.cur.Cur() == EndOfInput
}

// AddrSpec parses the input as a bare addr-spec.
func (p *Path) AddrSpec() *AddrSpec {
	p.rewind()
	tx := p.p.cur.Begin()
	defer tx.Rollback()
	spec := p.p.addrSpec()
	if spec == nil || !p.atEnd() {
		return nil
	}
	return accept(tx, spec)
}

// ForSender parses the input as a single originator: a mailbox, or with
// allowRFC6854 any address, admitting the group syntax RFC 6854 permits in
// originator fields.
func (p *Path) ForSender(allowRFC6854 bool) *Address {
	p.rewind()
	tx := p.p.cur.Begin()
	defer tx.Rollback()
	var addr *Address
	if allowRFC6854 {
		addr = p.p.address()
	} else {
		addr = p.p.mailbox()
	}
	if addr == nil || !p.atEnd() {
		return nil
	}
	return accept(tx, addr)
}

// MailboxList parses the input as mailbox *("," mailbox). The result never
// has IsAddressList set.
func (p *Path) MailboxList() *AddressList {
	p.rewind()
	tx := p.p.cur.Begin()
	defer tx.Rollback()
	items := p.p.mailboxes()
	if items == nil || !p.atEnd() {
		return nil
	}
	return accept(tx, newAddressList(items))
}

// AddressList parses the input as address *("," address), where each
// address may be a mailbox or a group.
func (p *Path) AddressList() *AddressList {
	p.rewind()
	tx := p.p.cur.Begin()
	defer tx.Rollback()
	items := p.p.addresses()
	if items == nil || !p.atEnd() {
		return nil
	}
	return accept(tx, newAddressList(items))
}
