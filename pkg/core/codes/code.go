package codes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// Separator joins the two halves of a composite code
const Separator = "/"

// ErrMalformed is returned when a code cannot be parsed
var ErrMalformed = errors.New("malformed code")

// Code is the value of one schedule cell.
// An atomic code only has a Primary; a composite code ("D/P") also has a Secondary,
// each half describing half of the day. Composite codes never nest.
type Code struct {
	Primary   string
	Secondary string
}

// Rest is the code of a day off, and the value assumed for missing cells
var Rest = Atomic(rules.RestCode)

// Atomic builds a single-state code
func Atomic(code string) Code {
	return Code{Primary: normalize(code)}
}

// Pair builds a composite code from two halves
func Pair(primary, secondary string) Code {
	return Code{Primary: normalize(primary), Secondary: normalize(secondary)}
}

// Parse reads a code from its text form ("M", "d/p", ...).
// Empty text parses to the empty code; more than one separator or an empty half is malformed.
func Parse(text string) (Code, error) {
	text = normalize(text)
	if text == "" {
		return Code{}, nil
	}

	parts := strings.Split(text, Separator)
	switch len(parts) {
	case 1:
		return Code{Primary: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Code{}, fmt.Errorf("%w: %q has an empty half", ErrMalformed, text)
		}
		return Code{Primary: parts[0], Secondary: parts[1]}, nil
	default:
		return Code{}, fmt.Errorf("%w: %q has more than one %q", ErrMalformed, text, Separator)
	}
}

// MustParse is Parse for known-good literals; it panics on malformed input
func MustParse(text string) Code {
	code, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return code
}

// Lookup parses leniently: missing or malformed text reads as Rest
func Lookup(text string) Code {
	code, err := Parse(text)
	if err != nil || code.IsEmpty() {
		return Rest
	}
	return code
}

// String renders the code in its text form
func (c Code) String() string {
	if c.Secondary == "" {
		return c.Primary
	}
	return c.Primary + Separator + c.Secondary
}

// IsEmpty reports whether the code holds nothing
func (c Code) IsEmpty() bool {
	return c.Primary == "" && c.Secondary == ""
}

// IsComposite reports whether the code has two halves
func (c Code) IsComposite() bool {
	return c.Secondary != ""
}

// Halves returns the non-empty parts of the code in order
func (c Code) Halves() []string {
	if c.IsEmpty() {
		return nil
	}
	if c.Secondary == "" {
		return []string{c.Primary}
	}
	return []string{c.Primary, c.Secondary}
}

// Has reports whether either half equals part (case-insensitive)
func (c Code) Has(part string) bool {
	part = normalize(part)
	return part != "" && (c.Primary == part || c.Secondary == part)
}

// Is reports whether the code is exactly the given atomic code
func (c Code) Is(code string) bool {
	return c.Secondary == "" && c.Primary == normalize(code)
}

// OrRest returns Rest for the empty code
func (c Code) OrRest() Code {
	if c.IsEmpty() {
		return Rest
	}
	return c
}

// MarshalText implements encoding.TextMarshaler
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func normalize(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}
