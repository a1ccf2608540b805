package diagram

// Event is a predicate together with its arguments.
type Event struct {
	predicate     string
	directObject  *Argument
	prepositional []*Argument
	other         []*Argument
}

// NewEvent builds an event and assigns each argument its role. dobj may be nil.
func NewEvent(predicate string, dobj *Argument, prepositional, other []*Argument) *Event {
	e := &Event{predicate: predicate, directObject: dobj}
	if dobj != nil {
		dobj.role = RoleDirectObject
	}
	for _, a := range prepositional {
		if a == nil {
			continue
		}
		a.role = RolePrepositional
		e.prepositional = append(e.prepositional, a)
	}
	for _, a := range other {
		if a == nil {
			continue
		}
		a.role = RoleOther
		e.other = append(e.other, a)
	}
	return e
}

func (e *Event) Predicate() string          { return e.predicate }
func (e *Event) DirectObject() *Argument    { return e.directObject }
func (e *Event) Prepositional() []*Argument { return e.prepositional }
func (e *Event) Other() []*Argument         { return e.other }

// Arguments returns the direct object, prepositional and other arguments in that order.
func (e *Event) Arguments() []*Argument {
	args := make([]*Argument, 0, 1+len(e.prepositional)+len(e.other))
	if e.directObject != nil {
		args = append(args, e.directObject)
	}
	args = append(args, e.prepositional...)
	return append(args, e.other...)
}

// CoreArguments returns the direct object and prepositional arguments.
func (e *Event) CoreArguments() []*Argument {
	args := make([]*Argument, 0, 1+len(e.prepositional))
	if e.directObject != nil {
		args = append(args, e.directObject)
	}
	return append(args, e.prepositional...)
}

// Location returns the first prepositional argument of location type.
func (e *Event) Location() (*Argument, bool) {
	for _, a := range e.prepositional {
		if a.Type == ArgLocation {
			return a, true
		}
	}
	return nil, false
}

func (e *Event) owns(a *Argument) bool {
	for _, arg := range e.Arguments() {
		if arg == a {
			return true
		}
	}
	return false
}
