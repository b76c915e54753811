package command

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

// Kind is the command a chat user invoked.
type Kind string

const (
	KindCurrent  Kind = "current"
	KindForecast Kind = "forecast"
	KindHelp     Kind = "help"
)

// Command is one parsed user invocation. City may be blank.
type Command struct {
	Kind Kind
	City string
}

var ErrUnknownCommand = errors.New("unknown command")

var aliases = map[string]Kind{
	"current":  KindCurrent,
	"weather":  KindCurrent,
	"天气":       KindCurrent,
	"forecast": KindForecast,
	"天气预报":     KindForecast,
	"预报":       KindForecast,
	"help":     KindHelp,
	"天气帮助":     KindHelp,
}

// longest first, so "天气预报" wins over "天气"
var aliasOrder = func() []string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// ParseKind maps a command name or alias to its Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrUnknownCommand
	}
	return k, nil
}

// Parse reads chat text such as "天气 北京", "/forecast Shanghai" or "天气预报上海".
// Chinese aliases may be glued to the city; ASCII aliases need a space.
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "/"))
	if text == "" {
		return Command{}, ErrUnknownCommand
	}
	lower := strings.ToLower(text)

	for _, alias := range aliasOrder {
		if !strings.HasPrefix(lower, alias) {
			continue
		}
		rest := text[len(alias):]
		if rest != "" && isASCII(alias) && !strings.HasPrefix(rest, " ") {
			continue
		}
		return Command{Kind: aliases[alias], City: strings.TrimSpace(rest)}, nil
	}
	return Command{}, ErrUnknownCommand
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
