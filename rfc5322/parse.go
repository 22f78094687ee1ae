package rfc5322

// RFC 5322 address productions, no regex. Every production is bracketed by
// a transaction that rolls the cursor back when the production returns its
// zero value, so a failed alternative never moves the cursor.

import "strings"

type Parser struct {
	cur *Cursor
}

// next consumes the current codepoint. Callers test Cur first, so the end
// of input error cannot occur here.
func (p *Parser) next() {
	_, _ = p.cur.Accept()
}

// skipWSP consumes horizontal white space, returning the count skipped.
func (p *Parser) skipWSP() int {
	start := p.cur.Pos()
	p.cur.Skip(func(cur, next rune) bool { return isWSP(cur) })
	return p.cur.Pos() - start
}

// fws consumes folding white space. The line ending may be CR LF, CR alone
// or LF alone; a line ending not followed by WSP does not fold and the
// cursor is restored to just before it. Returns true when any white space
// was consumed.
func (p *Parser) fws() bool {
	lead := p.skipWSP() > 0
	c := p.cur.Cur()
	if c != '\r' && c != '\n' {
		return lead
	}
	tx := p.cur.Begin()
	p.next()
	if c == '\r' && p.cur.Cur() == '\n' {
		p.next()
	}
	if !isWSP(p.cur.Cur()) {
		tx.Rollback()
		return lead
	}
	p.skipWSP()
	tx.Commit()
	return true
}

// quoted-pair = "\" ( %x20-7E / HTAB )
func (p *Parser) quotedPair() bool {
	if p.cur.Cur() != '\\' {
		return false
	}
	if n := p.cur.Peek(); n != '\t' && (n < 0x20 || n > 0x7e) {
		return false
	}
	p.next()
	p.next()
	return true
}

// comment = "(" *([FWS] ccontent) [FWS] ")" with ccontent nesting. The
// content between the parentheses is returned even though the grammar
// discards it.
func (p *Parser) comment() (string, bool) {
	tx := p.cur.Begin()
	defer tx.Rollback()
	if p.cur.Cur() != '(' {
		return "", false
	}
	start := p.cur.Pos()
	p.next()
	for {
		p.fws()
		switch c := p.cur.Cur(); {
		case c == ')':
			p.next()
			return accept(tx, p.cur.Slice(start+1, p.cur.Pos()-1)), true
		case isCtext(c):
			p.next()
		case p.quotedPair():
		default:
			if _, ok := p.comment(); !ok {
				return "", false
			}
		}
	}
}

// cfws = (1*([FWS] comment) [FWS]) / FWS
func (p *Parser) cfws() bool {
	consumed := p.fws()
	for {
		if _, ok := p.comment(); !ok {
			return consumed
		}
		consumed = true
		p.fws()
	}
}

// atextRun consumes 1*atext.
func (p *Parser) atextRun() bool {
	start := p.cur.Pos()
	p.cur.Skip(func(cur, next rune) bool { return isAtext(cur) })
	return p.cur.Pos() > start
}

// atom = [CFWS] 1*atext [CFWS]; returns the text without the CFWS.
func (p *Parser) atom() (string, bool) {
	tx := p.cur.Begin()
	defer tx.Rollback()
	p.cfws()
	start := p.cur.Pos()
	if !p.atextRun() {
		return "", false
	}
	text := p.cur.Slice(start, p.cur.Pos())
	p.cfws()
	return accept(tx, text), true
}

// dot-atom = [CFWS] 1*atext *("." 1*atext) [CFWS]; the dot is consumed only
// when atext follows it.
func (p *Parser) dotAtom() (string, bool) {
	tx := p.cur.Begin()
	defer tx.Rollback()
	p.cfws()
	start := p.cur.Pos()
	if !p.atextRun() {
		return "", false
	}
	for p.cur.Cur() == '.' && isAtext(p.cur.Peek()) {
		p.next()
		p.atextRun()
	}
	text := p.cur.Slice(start, p.cur.Pos())
	p.cfws()
	return accept(tx, text), true
}

// quoted-string = [CFWS] DQUOTE *([FWS] qcontent) [FWS] DQUOTE [CFWS]
// The returned text keeps the quotes and any escapes verbatim.
func (p *Parser) quotedString() (string, bool) {
	tx := p.cur.Begin()
	defer tx.Rollback()
	p.cfws()
	start := p.cur.Pos()
	if p.cur.Cur() != '"' {
		return "", false
	}
	p.next()
	for {
		p.fws()
		switch c := p.cur.Cur(); {
		case c == '"':
			p.next()
			text := p.cur.Slice(start, p.cur.Pos())
			p.cfws()
			return accept(tx, text), true
		case isQtext(c):
			p.next()
		case p.quotedPair():
		default:
			return "", false
		}
	}
}

// local-part = dot-atom / quoted-string
func (p *Parser) localPart() (string, bool) {
	if text, ok := p.dotAtom(); ok {
		return text, true
	}
	return p.quotedString()
}

// domain = dot-atom / domain-literal
func (p *Parser) domain() (string, bool) {
	if text, ok := p.dotAtom(); ok {
		return text, true
	}
	return p.domainLiteral()
}

// domain-literal = [CFWS] "[" *([FWS] dtext) [FWS] "]" [CFWS]
// The returned text keeps the brackets.
func (p *Parser) domainLiteral() (string, bool) {
	tx := p.cur.Begin()
	defer tx.Rollback()
	p.cfws()
	start := p.cur.Pos()
	if p.cur.Cur() != '[' {
		return "", false
	}
	p.next()
	for {
		p.fws()
		c := p.cur.Cur()
		if c == ']' {
			p.next()
			text := p.cur.Slice(start, p.cur.Pos())
			p.cfws()
			return accept(tx, text), true
		}
		if !isDtext(c) {
			return "", false
		}
		p.next()
	}
}

// addr-spec = local-part "@" domain
func (p *Parser) addrSpec() *AddrSpec {
	tx := p.cur.Begin()
	defer tx.Rollback()
	local, ok := p.localPart()
	if !ok {
		return nil
	}
	if p.cur.Cur() != '@' {
		return nil
	}
	p.next()
	domain, ok := p.domain()
	if !ok {
		return nil
	}
	return accept(tx, newAddrSpec(local, domain))
}

// word = atom / quoted-string
func (p *Parser) word() (string, bool) {
	if text, ok := p.atom(); ok {
		return text, true
	}
	return p.quotedString()
}

// phrase = 1*word; words are joined with a single space, quoted words kept
// verbatim with their delimiters.
func (p *Parser) phrase() (string, bool) {
	word, ok := p.word()
	if !ok {
		return "", false
	}
	words := []string{word}
	for {
		if word, ok = p.word(); !ok {
			break
		}
		words = append(words, word)
	}
	return strings.Join(words, " "), true
}

// angle-addr = [CFWS] "<" addr-spec ">" [CFWS]
func (p *Parser) angleAddr() *AddrSpec {
	tx := p.cur.Begin()
	defer tx.Rollback()
	p.cfws()
	if p.cur.Cur() != '<' {
		return nil
	}
	p.next()
	spec := p.addrSpec()
	if spec == nil {
		return nil
	}
	if p.cur.Cur() != '>' {
		return nil
	}
	p.next()
	p.cfws()
	return accept(tx, spec)
}

// name-addr = [display-name] angle-addr
func (p *Parser) nameAddr() *Address {
	tx := p.cur.Begin()
	defer tx.Rollback()
	name, _ := p.phrase()
	spec := p.angleAddr()
	if spec == nil {
		return nil
	}
	return accept(tx, &Address{DisplayName: name, Mailbox: spec})
}

// mailbox = name-addr / addr-spec
func (p *Parser) mailbox() *Address {
	if addr := p.nameAddr(); addr != nil {
		return addr
	}
	if spec := p.addrSpec(); spec != nil {
		return &Address{Mailbox: spec}
	}
	return nil
}

// group = display-name ":" [group-list] ";" [CFWS]
func (p *Parser) group() *Address {
	tx := p.cur.Begin()
	defer tx.Rollback()
	name, ok := p.phrase()
	if !ok {
		return nil
	}
	if p.cur.Cur() != ':' {
		return nil
	}
	p.next()
	members := p.groupList()
	if p.cur.Cur() != ';' {
		return nil
	}
	p.next()
	p.cfws()
	return accept(tx, &Address{DisplayName: name, Members: members})
}

// group-list = mailbox-list / CFWS; an empty group is legal.
func (p *Parser) groupList() []*Address {
	if items := p.mailboxes(); items != nil {
		return items
	}
	p.cfws()
	return nil
}

// address = mailbox / group
func (p *Parser) address() *Address {
	if addr := p.mailbox(); addr != nil {
		return addr
	}
	return p.group()
}

// mailboxes parses mailbox *("," mailbox). The transaction is committed
// after every element, so a trailing malformed element leaves the cursor
// just after the last good one and the prior elements are kept.
func (p *Parser) mailboxes() []*Address {
	tx := p.cur.Begin()
	defer tx.Rollback()
	first := p.mailbox()
	if first == nil {
		return nil
	}
	items := []*Address{first}
	tx.Commit()
	for p.cur.Cur() == ',' {
		p.next()
		m := p.mailbox()
		if m == nil {
			break
		}
		items = append(items, m)
		tx.Commit()
	}
	return items
}

// addresses parses address *("," address), same stop-at-first-failure
// semantics as mailboxes.
func (p *Parser) addresses() []*Address {
	tx := p.cur.Begin()
	defer tx.Rollback()
	first := p.address()
	if first == nil {
		return nil
	}
	items := []*Address{first}
	tx.Commit()
	for p.cur.Cur() == ',' {
		p.next()
		a := p.address()
		if a == nil {
			break
		}
		items = append(items, a)
		tx.Commit()
	}
	return items
}
