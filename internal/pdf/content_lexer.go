package pdf

import (
	"bufio"
	"io"
	"strconv"
)

// Content stream token types.
type contentTokenType int

const (
	tokenEOF contentTokenType = iota
	tokenNumber
	tokenOperator
	tokenName
	tokenString
	tokenArrayStart
	tokenArrayEnd
	tokenDictStart
	tokenDictEnd
)

// contentToken is a single token from a page content stream.
type contentToken struct {
	kind  contentTokenType
	num   float64
	value string
}

// contentLexer tokenizes decoded PDF page content streams. It understands
// just enough of the syntax to walk operand/operator sequences: numbers,
// names, strings, array and dictionary delimiters, and operator keywords.
type contentLexer struct {
	reader  *bufio.Reader
	current byte
	hasNext bool
}

func newContentLexer(r io.Reader) *contentLexer {
	l := &contentLexer{
		reader:  bufio.NewReader(r),
		hasNext: true,
	}
	l.advance()
	return l
}

func (l *contentLexer) advance() {
	if !l.hasNext {
		return
	}
	ch, err := l.reader.ReadByte()
	if err != nil {
		l.hasNext = false
		l.current = 0
		return
	}
	l.current = ch
}

func (l *contentLexer) peek() byte {
	if !l.hasNext {
		return 0
	}
	next, err := l.reader.Peek(1)
	if err != nil || len(next) == 0 {
		return 0
	}
	return next[0]
}

func isContentWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == 0
}

func isContentDelimiter(ch byte) bool {
	switch ch {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isDigitOrSign(ch byte) bool {
	return (ch >= '0' && ch <= '9') || ch == '+' || ch == '-' || ch == '.'
}

func (l *contentLexer) skipWhitespaceAndComments() {
	for l.hasNext {
		switch {
		case isContentWhitespace(l.current):
			l.advance()
		case l.current == '%':
			for l.hasNext && l.current != '\n' && l.current != '\r' {
				l.advance()
			}
		default:
			return
		}
	}
}

// nextToken returns the next token, or a tokenEOF token at end of input.
func (l *contentLexer) nextToken() contentToken {
	l.skipWhitespaceAndComments()
	if !l.hasNext {
		return contentToken{kind: tokenEOF}
	}

	switch {
	case isDigitOrSign(l.current):
		return l.readNumber()
	case l.current == '/':
		return l.readName()
	case l.current == '(':
		return l.readLiteralString()
	case l.current == '[':
		l.advance()
		return contentToken{kind: tokenArrayStart}
	case l.current == ']':
		l.advance()
		return contentToken{kind: tokenArrayEnd}
	case l.current == '<':
		if l.peek() == '<' {
			l.advance()
			l.advance()
			return contentToken{kind: tokenDictStart}
		}
		return l.readHexString()
	case l.current == '>':
		if l.peek() == '>' {
			l.advance()
			l.advance()
			return contentToken{kind: tokenDictEnd}
		}
		// Stray closing bracket, skip it.
		l.advance()
		return l.nextToken()
	case l.current == '{' || l.current == '}':
		l.advance()
		return l.nextToken()
	default:
		return l.readOperator()
	}
}

func (l *contentLexer) readNumber() contentToken {
	var buf []byte
	for l.hasNext && (isDigitOrSign(l.current)) {
		buf = append(buf, l.current)
		l.advance()
	}
	num, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		// Malformed number, treat it as an operator so the scanner can
		// keep going.
		return contentToken{kind: tokenOperator, value: string(buf)}
	}
	return contentToken{kind: tokenNumber, num: num}
}

func (l *contentLexer) readName() contentToken {
	l.advance() // consume the slash
	var buf []byte
	for l.hasNext && !isContentWhitespace(l.current) && !isContentDelimiter(l.current) {
		buf = append(buf, l.current)
		l.advance()
	}
	return contentToken{kind: tokenName, value: string(buf)}
}

func (l *contentLexer) readLiteralString() contentToken {
	l.advance() // consume the opening paren
	var buf []byte
	depth := 1
	for l.hasNext && depth > 0 {
		switch l.current {
		case '\\':
			l.advance()
			if l.hasNext {
				buf = append(buf, l.current)
				l.advance()
			}
		case '(':
			depth++
			buf = append(buf, l.current)
			l.advance()
		case ')':
			depth--
			if depth > 0 {
				buf = append(buf, l.current)
			}
			l.advance()
		default:
			buf = append(buf, l.current)
			l.advance()
		}
	}
	return contentToken{kind: tokenString, value: string(buf)}
}

func (l *contentLexer) readHexString() contentToken {
	l.advance() // consume the opening bracket
	var buf []byte
	for l.hasNext && l.current != '>' {
		buf = append(buf, l.current)
		l.advance()
	}
	l.advance() // consume the closing bracket
	return contentToken{kind: tokenString, value: string(buf)}
}

func (l *contentLexer) readOperator() contentToken {
	var buf []byte
	for l.hasNext && !isContentWhitespace(l.current) && !isContentDelimiter(l.current) {
		buf = append(buf, l.current)
		l.advance()
	}
	if len(buf) == 0 {
		// Unrecognized delimiter, skip it.
		l.advance()
		return l.nextToken()
	}
	return contentToken{kind: tokenOperator, value: string(buf)}
}

// skipInlineImage consumes everything up to and including the EI operator
// that terminates a BI ... ID ... EI inline image. The binary payload would
// otherwise derail tokenization.
func (l *contentLexer) skipInlineImage() {
	// Skip the image dictionary up to the ID operator.
	for l.hasNext {
		tok := l.nextToken()
		if tok.kind == tokenEOF {
			return
		}
		if tok.kind == tokenOperator && tok.value == "ID" {
			break
		}
	}

	// Binary data follows a single whitespace after ID. Scan for EI
	// preceded by whitespace.
	prev := byte(0)
	for l.hasNext {
		if isContentWhitespace(prev) && l.current == 'E' && l.peek() == 'I' {
			l.advance()
			l.advance()
			return
		}
		prev = l.current
		l.advance()
	}
}
