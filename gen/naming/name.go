package naming

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// A Name is a hierarchical generator name such as "Order.Items[2].Price". A
// composite generator names its sources below its own name.
type Name struct {
	Tokens []NameToken
}

// NameToken is one dot-separated element of a name.
type NameToken struct {
	ElemName string
	Index    []int
}

// String joins the tokens back into the dotted form.
func (n Name) String() string {
	parts := make([]string, len(n.Tokens))
	for i, t := range n.Tokens {
		parts[i] = t.String()
	}

	return strings.Join(parts, ".")
}

// String renders the token with its indices.
func (t NameToken) String() string {
	var sb strings.Builder

	sb.WriteString(t.ElemName)

	for _, i := range t.Index {
		sb.WriteString("[")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("]")
	}

	return sb.String()
}

// Parent returns the name without its last token. The parent of a single
// token name is the empty name.
func (n Name) Parent() Name {
	if len(n.Tokens) <= 1 {
		return Name{}
	}

	return Name{Tokens: n.Tokens[:len(n.Tokens)-1]}
}

// ParseName parses a dotted name.
func ParseName(sname string) (Name, error) {
	tokens := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(tokens))}

	for i, token := range tokens {
		t, err := parseNameToken(token)
		if err != nil {
			return Name{}, err
		}

		name.Tokens[i] = t
	}

	return name, nil
}

func parseNameToken(token string) (NameToken, error) {
	if err := bracketsMustMatch(token); err != nil {
		return NameToken{}, err
	}

	ts := strings.Split(token, "[")
	elemName := ts[0]

	indices := make([]int, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		if !strings.HasSuffix(ts[i], "]") {
			return NameToken{}, errors.Newf("malformed index in %q", token)
		}

		index, err := strconv.Atoi(strings.TrimSuffix(ts[i], "]"))
		if err != nil {
			return NameToken{}, errors.Newf("index in %q must be an integer", token)
		}

		indices[i-1] = index
	}

	return NameToken{ElemName: elemName, Index: indices}, nil
}

func bracketsMustMatch(token string) error {
	open := 0

	for _, c := range token {
		switch c {
		case '[':
			open++
		case ']':
			open--
			if open < 0 {
				return errors.Newf("brackets in %q must match", token)
			}
		}
	}

	if open != 0 {
		return errors.Newf("brackets in %q must match", token)
	}

	return nil
}

// ValidateName checks the naming convention of generators:
//  1. Names are dot-separated, and no element may be empty ("A..B", "A.").
//  2. Elements are capitalized CamelCase and do not contain _ - ' or ".
//  3. Elements of a series use square-bracket indices ("Source[0]").
func ValidateName(name string) error {
	n, err := ParseName(name)
	if err != nil {
		return errors.Wrapf(err, "name %q is not valid", name)
	}

	for _, token := range n.Tokens {
		if err := tokenMustBeValid(token); err != nil {
			return errors.Wrapf(err, "name %q is not valid", name)
		}
	}

	return nil
}

// NameMustBeValid panics if the name does not follow the naming convention
// described in ValidateName.
func NameMustBeValid(name string) {
	if err := ValidateName(name); err != nil {
		panic(err)
	}
}

func tokenMustBeValid(token NameToken) error {
	if token.ElemName == "" {
		return errors.New("element must not be empty")
	}

	if strings.ContainsAny(token.ElemName, "_\"'-") {
		return errors.Newf("element %q contains an invalid character",
			token.ElemName)
	}

	if token.ElemName[0] < 'A' || token.ElemName[0] > 'Z' {
		return errors.Newf("element %q must start with a capital letter",
			token.ElemName)
	}

	return nil
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds a name from a parent name, an element name and an
// index, e.g. "Chain.Source[1]".
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
