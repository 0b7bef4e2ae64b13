package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Token is one keyword read from a board file.
type Token struct {
	Value string // Value is the keyword, upper-cased unless case is matched.
	Line  int    // Line is the 1-based line the token was read from.
}

// ErrIllegalToken is returned for characters or words that are not keywords.
var ErrIllegalToken = errors.New("illegal token")

// ParseError reports the line a board file went wrong on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Tokenize splits r on whitespace and returns every token, grouped by line.
// Tokens must be alphanumeric and one of keywords. Unless matchCase is set the
// input is upper-cased before matching, so keywords should be upper-case.
func Tokenize(r io.Reader, keywords []string, matchCase bool) ([][]Token, error) {
	allowed := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		allowed[k] = struct{}{}
	}

	var lines [][]Token
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		text := scanner.Text()
		if !matchCase {
			text = strings.ToUpper(text)
		}

		var row []Token
		for _, field := range strings.Fields(text) {
			if !isAlphanumeric(field) {
				return nil, &ParseError{Line: lineNum, Err: fmt.Errorf("%w %q", ErrIllegalToken, field)}
			}
			if _, ok := allowed[field]; !ok {
				return nil, &ParseError{Line: lineNum, Err: fmt.Errorf("%w %q", ErrIllegalToken, field)}
			}
			row = append(row, Token{Value: field, Line: lineNum})
		}
		if len(row) > 0 {
			lines = append(lines, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}
