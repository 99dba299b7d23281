package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned by ParseMethod for names outside the enum
var ErrUnknownMethod = errors.New("unknown processing method")

// Method identifies which processing path produced a set of features
type Method int

const (
	Original Method = iota // unprocessed upload
	MethodA
	MethodB
	MethodC
)

var methodNames = [...]string{
	Original: "original",
	MethodA:  "method-a",
	MethodB:  "method-b",
	MethodC:  "method-c",
}

// Methods returns every method in display order
func Methods() []Method {
	return []Method{Original, MethodA, MethodB, MethodC}
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// Valid reports whether m is one of the declared methods
func (m Method) Valid() bool {
	return m >= 0 && int(m) < len(methodNames)
}

// ParseMethod maps a result key such as "method-b" onto its Method
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	for i, n := range methodNames {
		if n == key {
			return Method(i), nil
		}
	}
	return Original, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// ParseMethods parses a comma separated list; an empty list means all methods
func ParseMethods(list string) ([]Method, error) {
	if strings.TrimSpace(list) == "" {
		return Methods(), nil
	}

	var out []Method
	seen := make(map[Method]bool)
	for _, part := range strings.Split(list, ",") {
		m, err := ParseMethod(part)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
