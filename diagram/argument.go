package diagram

// ArgType classifies the semantic type of an argument span.
type ArgType int

const (
	ArgOther ArgType = iota
	ArgObject
	ArgLocation
	ArgCoObject
)

func (t ArgType) String() string {
	switch t {
	case ArgObject:
		return "object"
	case ArgLocation:
		return "location"
	case ArgCoObject:
		return "coobject"
	default:
		return "other"
	}
}

// ParseArgType maps a type name back to its ArgType. Unknown names map to ArgOther.
func ParseArgType(s string) ArgType {
	switch s {
	case "object", "OBJECT":
		return ArgObject
	case "location", "LOCATION":
		return ArgLocation
	case "coobject", "COOBJECT":
		return ArgCoObject
	default:
		return ArgOther
	}
}

// Role is the syntactic slot an argument occupies in its event.
type Role int

const (
	RoleNone Role = iota
	RoleDirectObject
	RolePrepositional
	RoleOther
)

// Argument is a typed text span attached to a RecipeEvent.
type Argument struct {
	Type        ArgType
	Text        string
	Preposition string

	// Ingredients holds the ingredient-bearing spans, Spans the rest.
	Ingredients []string
	Spans       []string

	role    Role
	origins []*Node
}

// NewArgument returns an argument of the given type covering text.
func NewArgument(t ArgType, text string) *Argument {
	return &Argument{Type: t, Text: text}
}

// Role reports the slot assigned when the argument was attached to an event.
func (a *Argument) Role() Role { return a.role }

// Origins returns the nodes whose output flows into this argument, in connection order.
func (a *Argument) Origins() []*Node { return a.origins }

// Strings returns the argument text plus its ingredients and spans, without empties or duplicates.
func (a *Argument) Strings() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	add(a.Text)
	for _, s := range a.Ingredients {
		add(s)
	}
	for _, s := range a.Spans {
		add(s)
	}
	return out
}

// HasIngredients reports whether the argument carries ingredients, either
// directly or through the chain of nodes feeding into it.
func (a *Argument) HasIngredients() bool {
	return a.hasIngredients(make(map[*Node]bool))
}

func (a *Argument) hasIngredients(visited map[*Node]bool) bool {
	if len(a.Ingredients) > 0 {
		return true
	}
	for _, origin := range a.origins {
		if visited[origin] {
			continue
		}
		visited[origin] = true
		for _, arg := range origin.event.Arguments() {
			if arg.hasIngredients(visited) {
				return true
			}
		}
	}
	return false
}

func (a *Argument) addOrigin(n *Node) {
	for _, o := range a.origins {
		if o == n {
			return
		}
	}
	a.origins = append(a.origins, n)
}
