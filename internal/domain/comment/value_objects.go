package comment

import (
	"strings"
	"unicode/utf8"
)

const MaxTextLength = 1000

type Text struct {
	value string
}

func NewText(s string) (Text, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Text{}, ErrEmptyText
	}
	if utf8.RuneCountInString(t) > MaxTextLength {
		return Text{}, ErrTextTooLong
	}
	return Text{value: t}, nil
}

func (t Text) String() string { return t.value }
