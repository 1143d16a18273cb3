// Package lexer turns Timu source text into a stream of tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/token"
)

// Lexer scans one source.File's text into tokens, one at a time.
type Lexer struct {
	file         *source.File
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // reading position (after current char)
	ch           rune // current char under examination
}

// New creates a Lexer over file's text.
func New(file *source.File) *Lexer {
	l := &Lexer{file: file, input: file.Text}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) newToken(typ token.Type, start int) token.Token {
	end := l.position
	if end <= start {
		end = start + 1
	}
	return token.Token{Type: typ, Lexeme: l.input[start:min(end, len(l.input))], Span: source.NewSpan(l.file, start, end)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// NextToken consumes and returns the next token in the stream.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	for l.ch == '/' && l.peekChar() == '/' {
		l.skipLineComment()
		l.skipWhitespace()
	}

	start := l.position

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Lexeme: "", Span: source.NewSpan(l.file, start, start)}
	case l.ch == '(':
		l.readChar()
		return l.newToken(token.LPAREN, start)
	case l.ch == ')':
		l.readChar()
		return l.newToken(token.RPAREN, start)
	case l.ch == '{':
		l.readChar()
		return l.newToken(token.LBRACE, start)
	case l.ch == '}':
		l.readChar()
		return l.newToken(token.RBRACE, start)
	case l.ch == ',':
		l.readChar()
		return l.newToken(token.COMMA, start)
	case l.ch == ';':
		l.readChar()
		return l.newToken(token.SEMICOLON, start)
	case l.ch == '.':
		l.readChar()
		return l.newToken(token.DOT, start)
	case l.ch == '?':
		l.readChar()
		return l.newToken(token.QUESTION, start)
	case l.ch == '&':
		l.readChar()
		return l.newToken(token.AMP, start)
	case l.ch == '+':
		l.readChar()
		return l.newToken(token.PLUS, start)
	case l.ch == '-':
		l.readChar()
		return l.newToken(token.MINUS, start)
	case l.ch == '*':
		l.readChar()
		return l.newToken(token.STAR, start)
	case l.ch == '/':
		l.readChar()
		return l.newToken(token.SLASH, start)
	case l.ch == ':':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.WALRUS, start)
		}
		l.readChar()
		return l.newToken(token.COLON, start)
	case l.ch == '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.EQ, start)
		}
		l.readChar()
		return l.newToken(token.ASSIGN, start)
	case l.ch == '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.NEQ, start)
		}
		l.readChar()
		return l.newToken(token.ILLEGAL, start)
	case l.ch == '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.LE, start)
		}
		l.readChar()
		return l.newToken(token.LT, start)
	case l.ch == '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.GE, start)
		}
		l.readChar()
		return l.newToken(token.GT, start)
	case l.ch == '"':
		return l.readString(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case isIdentStart(l.ch):
		return l.readIdentifier(start)
	default:
		l.readChar()
		return l.newToken(token.ILLEGAL, start)
	}
}

func (l *Lexer) readString(start int) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			sb.WriteRune(escapeRune(l.ch))
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Lexeme: sb.String(), Span: source.NewSpan(l.file, start, l.position)}
}

func escapeRune(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

func (l *Lexer) readNumber(start int) token.Token {
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.newToken(token.INT, start)
}

func (l *Lexer) readIdentifier(start int) token.Token {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Span: source.NewSpan(l.file, start, l.position)}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// All tokenizes file completely, always ending with a single EOF token.
func All(file *source.File) []token.Token {
	l := New(file)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			return toks
		}
	}
}
