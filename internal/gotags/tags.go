package gotags

import (
	"fmt"
	"regexp"
	"strings"
)

// ValueFunc computes the value written for a newly added tag key.
type ValueFunc func(name, typ string) string

// Family is one tag key (json, xml, the ORM key) together with the rule that
// derives its value from a field.
type Family struct {
	Name  string
	Key   string
	value ValueFunc
	pair  *regexp.Regexp // key:"..." with any leading blanks
}

// NewFamily builds a family for key. The pair pattern is lazy and spans
// lines, so a value containing a newline is still one pair.
func NewFamily(name, key string, value ValueFunc) *Family {
	return &Family{
		Name:  name,
		Key:   key,
		value: value,
		pair:  regexp.MustCompile(`(?s)[\t ]*` + regexp.QuoteMeta(key) + `:".*?"`),
	}
}

// JSONFamily writes json:"snake_case_name".
func JSONFamily() *Family {
	return NewFamily("JSON", "json", func(name, _ string) string { return SnakeCase(name) })
}

// XMLFamily writes xml:"snake_case_name".
func XMLFamily() *Family {
	return NewFamily("XML", "xml", func(name, _ string) string { return SnakeCase(name) })
}

// ORMFamily writes key:"column type", looking the field type up in types.
// Unknown types produce an empty value.
func ORMFamily(key string, types *TypeMap) *Family {
	if key == "" {
		key = DefaultORMKey
	}
	return NewFamily("ORM", key, func(_, typ string) string { return types.Lookup(typ) })
}

// pairs returns the [start, end) of every key:"..." pair in tag, blanks
// included. A pair only counts when the key is not the tail of a longer
// word, so "orm" never matches inside xorm:"...".
func (f *Family) pairs(tag string) [][]int {
	var found [][]int
	for _, loc := range f.pair.FindAllStringIndex(tag, -1) {
		m := tag[loc[0]:loc[1]]
		keyStart := loc[0] + len(m) - len(strings.TrimLeft(m, "\t "))
		if keyStart > 0 && isWordByte(tag[keyStart-1]) {
			continue
		}
		found = append(found, loc)
	}
	return found
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Has reports whether tag already carries the family's key.
func (f *Family) Has(tag string) bool {
	return len(f.pairs(tag)) > 0
}

// Add appends key:"value" to tag unless the key is already present.
func (f *Family) Add(name, typ, tag string) string {
	pair := fmt.Sprintf(`%s:"%s"`, f.Key, f.value(name, typ))
	if tag == "" {
		return pair
	}
	if f.Has(tag) {
		return tag
	}
	return tag + " " + pair
}

// Remove deletes every key:"..." pair from tag along with the blanks before it.
func (f *Family) Remove(_, _, tag string) string {
	if tag == "" {
		return ""
	}
	found := f.pairs(tag)
	if len(found) == 0 {
		return tag
	}
	var sb strings.Builder
	last := 0
	for _, loc := range found {
		sb.WriteString(tag[last:loc[0]])
		last = loc[1]
	}
	sb.WriteString(tag[last:])
	return sb.String()
}

// Op selects between adding and removing a key.
type Op int

const (
	OpAdd Op = iota
	OpRemove
)

func (o Op) String() string {
	if o == OpRemove {
		return "remove"
	}
	return "add"
}

// Action binds an operation to a family. It is what the user picks from the menu.
type Action struct {
	ID     string // e.g. "json-add"
	Label  string // menu text
	Family *Family
	Op     Op
}

// Apply rewrites the tag text of one field.
func (a Action) Apply(name, typ, tag string) string {
	if a.Op == OpRemove {
		return a.Family.Remove(name, typ, tag)
	}
	return a.Family.Add(name, typ, tag)
}

// DefaultORMKey is the tag key used by the ORM family when none is configured.
const DefaultORMKey = "orm"

// NewActions returns the six menu actions in menu order: the three inserts,
// then the three removals.
func NewActions(ormKey string, types *TypeMap) []Action {
	families := []*Family{JSONFamily(), XMLFamily(), ORMFamily(ormKey, types)}
	actions := make([]Action, 0, 2*len(families))
	for _, op := range []Op{OpAdd, OpRemove} {
		for _, f := range families {
			label := f.Name + ": Append tags"
			if op == OpRemove {
				label = f.Name + ": Remove tags all"
			}
			actions = append(actions, Action{
				ID:     strings.ToLower(f.Name) + "-" + op.String(),
				Label:  label,
				Family: f,
				Op:     op,
			})
		}
	}
	return actions
}

// FindAction looks an action up by its ID.
func FindAction(actions []Action, id string) (Action, bool) {
	for _, a := range actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
