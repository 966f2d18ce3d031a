package program

import (
	"encoding/json"
	"fmt"
)

// MainFunction is the entry point every runnable program must define.
const MainFunction = "main"

// Action kinds understood by the interpreter.
const (
	KindFunctionCall        = "function_call"
	KindVariableDeclaration = "variable_declaration"
	KindAssignment          = "assignment"
	KindIfStatement         = "if_statement"
	KindLoop                = "loop"
	KindReturn              = "return"
	KindLiteral             = "literal"
)

// Program is one loaded program document.
type Program struct {
	Metadata  map[string]any
	Imports   *ImportTable
	Functions map[string]*Function
	Modifiers []*Modifier

	moduleRoot string
	modules    map[string]*Program
}

// Option configures a Program at load time.
type Option func(*Program)

// WithModuleRoot resolves import candidates relative to dir instead of the
// working directory. Modules loaded by the program inherit the root.
func WithModuleRoot(dir string) Option {
	return func(p *Program) {
		p.moduleRoot = dir
	}
}

// document is the wire layout of a program file.
type document struct {
	Metadata  map[string]any       `json:"metadata"`
	Imports   *ImportTable         `json:"imports"`
	Functions map[string]json.RawMessage `json:"functions"`
	Modifiers []*Modifier                `json:"modifiers"`
}

// Parse decodes a program document.
func Parse(data []byte, opts ...Option) (*Program, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentFormat, err)
	}

	p := &Program{
		Metadata:  doc.Metadata,
		Imports:   doc.Imports,
		Functions: make(map[string]*Function, len(doc.Functions)),
		Modifiers: doc.Modifiers,
		modules:   make(map[string]*Program),
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}
	if p.Imports == nil {
		p.Imports = NewImportTable()
	}
	for name, raw := range doc.Functions {
		// Entries that are not objects are not functions and are skipped.
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			continue
		}
		p.Functions[name] = NewFunction(fields)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// GetFunction returns the named function definition.
func (p *Program) GetFunction(name string) (*Function, bool) {
	fn, ok := p.Functions[name]
	return fn, ok
}

// HasFunction reports whether the program defines name.
func (p *Program) HasFunction(name string) bool {
	_, ok := p.Functions[name]
	return ok
}

// FindModifier returns the first modifier definition called name.
func (p *Program) FindModifier(name string) (*Modifier, bool) {
	for _, m := range p.Modifiers {
		if m != nil && m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Function is one function definition. Its metadata is kept as an open
// field map: modifiers may test for and assign arbitrary fields.
type Function struct {
	fields map[string]any
}

// NewFunction wraps a field map as a function definition.
func NewFunction(fields map[string]any) *Function {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Function{fields: fields}
}

// Has reports whether the metadata field is present.
func (f *Function) Has(field string) bool {
	_, ok := f.fields[field]
	return ok
}

// Get returns a metadata field.
func (f *Function) Get(field string) (any, bool) {
	v, ok := f.fields[field]
	return v, ok
}

// Set assigns a metadata field.
func (f *Function) Set(field string, v any) {
	f.fields[field] = v
}

// Description returns the function description, if any.
func (f *Function) Description() string {
	s, _ := f.fields["description"].(string)
	return s
}

// ModifierNames returns the names listed under "modifiers". Non-string
// entries are ignored.
func (f *Function) ModifierNames() []string {
	raw, _ := f.fields["modifiers"].([]any)
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			names = append(names, s)
		}
	}
	return names
}

// Actions returns the ordered action list. Entries that are not records are
// skipped.
func (f *Function) Actions() []Action {
	raw, _ := f.fields["actions"].([]any)
	actions := make([]Action, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			actions = append(actions, Action(m))
		}
	}
	return actions
}

// Action is one step of a function body. Fields other than the ones a kind
// uses are ignored.
type Action map[string]any

// Kind returns the action's "type" tag.
func (a Action) Kind() string {
	s, _ := a["type"].(string)
	return s
}

// Str returns a string field of the action.
func (a Action) Str(key string) string {
	s, _ := a[key].(string)
	return s
}

// Value returns the action's "value" field.
func (a Action) Value() any {
	return a["value"]
}

// Args returns the raw argument list of a call action.
func (a Action) Args() []any {
	args, _ := a["args"].([]any)
	return args
}

// Modifier is a named, conditionally applied metadata rewrite rule.
type Modifier struct {
	Name      string
	Condition string
	Actions   []ModifierAction
}

// ModifierAction is one rewrite step of a modifier.
type ModifierAction struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Value  any    `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler. The legacy "condiction" key is
// accepted when "condition" is absent.
func (m *Modifier) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string           `json:"name"`
		Condition  *string          `json:"condition"`
		Condiction *string          `json:"condiction"`
		Actions    []ModifierAction `json:"actions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Name = raw.Name
	m.Actions = raw.Actions
	switch {
	case raw.Condition != nil:
		m.Condition = *raw.Condition
	case raw.Condiction != nil:
		m.Condition = *raw.Condiction
	}
	return nil
}
