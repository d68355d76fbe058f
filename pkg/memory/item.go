package memory

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/etchmory/pkg/domain"
)

// FormatItem renders one decision as "<key>/<t><value>" where <t> is the
// value kind code ('s', 'n' or 'b'). Key and value text are query-escaped, so
// ':' and '/' never appear unescaped and the separators stay unambiguous.
func FormatItem(d domain.Decision) string {
	var sb strings.Builder
	sb.WriteString(url.QueryEscape(d.Key))
	sb.WriteByte('/')
	sb.WriteByte(d.Value.Kind().Code())
	sb.WriteString(url.QueryEscape(d.Value.Text()))
	return sb.String()
}

// ParseItem is the inverse of FormatItem.
func ParseItem(item string) (domain.Decision, error) {
	rawKey, rest, ok := strings.Cut(item, "/")
	if !ok || rest == "" {
		return domain.Decision{}, invalidItem(item, "expected <key>/<type><value>")
	}

	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return domain.Decision{}, invalidItem(item, err.Error())
	}
	text, err := url.QueryUnescape(rest[1:])
	if err != nil {
		return domain.Decision{}, invalidItem(item, err.Error())
	}

	switch rest[0] {
	case 's':
		return domain.NewDecision(key, domain.String(text)), nil
	case 'n':
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return domain.Decision{}, invalidItem(item, "malformed number")
		}
		v, err := domain.ValueOf(f)
		if err != nil {
			return domain.Decision{}, invalidItem(item, "malformed number")
		}
		return domain.NewDecision(key, v), nil
	case 'b':
		b, err := strconv.ParseBool(text)
		if err != nil || (text != "true" && text != "false") {
			return domain.Decision{}, invalidItem(item, "malformed boolean")
		}
		return domain.NewDecision(key, domain.Bool(b)), nil
	}
	return domain.Decision{}, invalidItem(item, fmt.Sprintf("unknown value type %q", rest[0]))
}

func invalidItem(item, reason string) error {
	return domain.NewError(domain.KindInvalidToken, "", fmt.Sprintf("invalid token item %q: %s", item, reason))
}
