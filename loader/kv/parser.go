package kv

import (
	"fmt"

	"github.com/forgottenhistory/archon-engine"
)

// Value is a parsed right-hand side: exactly one of Scalar (string/number/
// identifier/yes-no/date, all kept as their original text plus a parsed
// Date when applicable), Block (a nested KEY=VALUE list), or List (a braced
// list of bare scalars, e.g. `provinces = { 1 2 3 }`). The value of a
// date-keyed entry (`1444.11.11 = { ... }`) also carries IsDate and the
// key's parsed Date, which is how historical sub-blocks are found.
type Value struct {
	Scalar string
	IsDate bool
	Date   Date
	Block  []Pair
	List   []string
}

// Pair is one KEY = VALUE entry, possibly repeated under the same key
// (Paradox files allow e.g. multiple `core = TAG` lines).
type Pair struct {
	Key   string
	Value Value
}

// Date is a parsed YYYY.M.D calendar date.
type Date struct {
	Year, Month, Day int32
}

// Less reports whether d sorts before o, used to order historical
// sub-blocks chronologically (spec §4.7.4).
func (d Date) Less(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Parse tokenizes and parses src into a top-level list of pairs.
func Parse(src string) ([]Pair, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	pairs, err := p.parsePairs(true)
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parsePairs consumes KEY = VALUE entries until a closing brace (or EOF if
// top==true).
func (p *parser) parsePairs(top bool) ([]Pair, error) {
	var pairs []Pair
	for {
		t := p.peek()
		if t.Kind == TokenEOF {
			if !top {
				return nil, fmt.Errorf("%w: kv: unexpected EOF, missing '}'", archon.ErrParse)
			}
			return pairs, nil
		}
		if t.Kind == TokenRBrace {
			if top {
				return nil, fmt.Errorf("%w: kv: unexpected '}' at line %d", archon.ErrParse, t.Line)
			}
			return pairs, nil
		}
		if t.Kind != TokenIdentifier && t.Kind != TokenString && t.Kind != TokenDate && t.Kind != TokenNumber {
			return nil, fmt.Errorf("%w: kv: expected a key at line %d, got %q", archon.ErrParse, t.Line, t.Text)
		}
		key := p.next()
		eq := p.next()
		if eq.Kind != TokenEquals {
			return nil, fmt.Errorf("%w: kv: expected '=' after %q at line %d", archon.ErrParse, key.Text, key.Line)
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if key.Kind == TokenDate {
			if d, ok := parseDate(key.Text); ok {
				val.IsDate, val.Date = true, d
			}
		}
		pairs = append(pairs, Pair{Key: key.Text, Value: val})
	}
}

func (p *parser) parseValue() (Value, error) {
	t := p.peek()
	if t.Kind == TokenLBrace {
		p.next()
		if p.peek().Kind == TokenRBrace {
			p.next()
			return Value{}, nil // empty block, e.g. `core = {}`
		}
		if !p.looksLikePairBlock() {
			list, err := p.parseList()
			if err != nil {
				return Value{}, err
			}
			return Value{List: list}, nil
		}
		inner, err := p.parsePairs(false)
		if err != nil {
			return Value{}, err
		}
		closing := p.next()
		if closing.Kind != TokenRBrace {
			return Value{}, fmt.Errorf("%w: kv: expected '}' at line %d", archon.ErrParse, closing.Line)
		}
		return Value{Block: inner}, nil
	}
	p.next()
	if t.Kind == TokenDate {
		d, ok := parseDate(t.Text)
		if !ok {
			return Value{}, fmt.Errorf("%w: kv: malformed date %q at line %d", archon.ErrParse, t.Text, t.Line)
		}
		return Value{Scalar: t.Text, IsDate: true, Date: d}, nil
	}
	return Value{Scalar: t.Text}, nil
}

// looksLikePairBlock reports whether the upcoming block is a KEY=VALUE list
// rather than a bare scalar list, by checking whether the token after the
// first entry is an '='. It does not consume any tokens.
func (p *parser) looksLikePairBlock() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.next()
	return p.peek().Kind == TokenEquals
}

// parseList consumes bare scalars up to the closing '}', used for
// `key = { a b c }` lists that Paradox files use for province/tag rosters.
func (p *parser) parseList() ([]string, error) {
	var out []string
	for {
		t := p.peek()
		if t.Kind == TokenRBrace {
			p.next()
			return out, nil
		}
		if t.Kind == TokenEOF {
			return nil, fmt.Errorf("%w: kv: unexpected EOF, missing '}'", archon.ErrParse)
		}
		out = append(out, p.next().Text)
	}
}

func parseDate(s string) (Date, bool) {
	var y, m, d int32
	n, err := fmt.Sscanf(s, "%d.%d.%d", &y, &m, &d)
	if err != nil || n != 3 {
		return Date{}, false
	}
	return Date{Year: y, Month: m, Day: d}, true
}

// Bool interprets a scalar as Paradox's yes/no boolean convention.
func Bool(scalar string) bool { return scalar == "yes" }

// Get returns the first pair's value with the given key among pairs, if
// any.
func Get(pairs []Pair, key string) (Value, bool) {
	for _, p := range pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// GetAll returns every value under key, in file order, for repeatable keys
// like `core = TAG`.
func GetAll(pairs []Pair, key string) []Value {
	var out []Value
	for _, p := range pairs {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}
