package urltemplate

import (
	"net/url"
	"slices"
	"strings"
)

type Parameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Parameters is an ordered list of query parameters. Duplicate keys are kept.
type Parameters []Parameter

func (p *Parameters) Add(key, value string) {
	*p = append(*p, Parameter{Key: key, Value: value})
}

// Remove drops every parameter with the given key.
func (p *Parameters) Remove(key string) {
	*p = slices.DeleteFunc(*p, func(param Parameter) bool {
		return param.Key == key
	})
}

func (p *Parameters) Clear() {
	*p = (*p)[:0]
}

func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

// Encode returns the parameters as a query string without the leading "?".
// Keys and values are percent-encoded so that only RFC 3986 unreserved
// characters stay literal.
func (p Parameters) Encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(Escape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(Escape(param.Value))
	}
	return sb.String()
}

// Escape percent-encodes s. Spaces become %20, not "+".
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ParsePairs turns "key=value" strings into parameters, keeping their order.
// An entry without "=" becomes a key with an empty value.
func ParsePairs(pairs []string) Parameters {
	params := make(Parameters, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		params.Add(k, v)
	}
	return params
}
