package console

import (
	"errors"
	"strings"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// Tokenize splits a command line on whitespace. Double or single quotes
// group words ("Ciudad de México"); inside double quotes a backslash
// escapes the next character.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote != 0:
			switch {
			case r == '\\' && quote == '"':
				escaped = true
			case r == quote:
				quote = 0
			default:
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// ParseCommand splits a line into a lower-cased command, an optional
// lower-cased subcommand and the remaining arguments. Groups (hr, sales…)
// take a subcommand; top-level commands (login, help…) do not.
func ParseCommand(line string) (cmd, sub string, args []string, err error) {
	tokens, err := Tokenize(strings.TrimSpace(line))
	if err != nil || len(tokens) == 0 {
		return "", "", nil, err
	}
	cmd = strings.ToLower(tokens[0])
	rest := tokens[1:]
	if _, ok := groups[cmd]; ok && len(rest) > 0 {
		sub = strings.ToLower(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 {
		args = rest
	}
	return cmd, sub, args, nil
}
