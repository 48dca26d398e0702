package render

import (
	"bytes"
	"embed"
	"errors"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"sync"
	texttemplate "text/template"

	"paperboy/internal/theme"
)

//go:embed templates/email/*.tmpl
var embeddedTemplates embed.FS

// templateDir is the fixed directory, inside the embedded filesystem, that
// the default environment loads from. It does not depend on configuration.
const templateDir = "templates/email"

// htmlExtensions are the extensions whose content is interpreted as HTML and
// therefore rendered with contextual autoescaping.
var htmlExtensions = map[string]bool{
	"html":  true,
	"htm":   true,
	"xhtml": true,
	"xml":   true,
}

// Template is a compiled template ready for execution.
type Template struct {
	name    string
	escaped bool
	exec    interface {
		Execute(w io.Writer, data any) error
	}
}

// Name returns the template name it was loaded under.
func (t *Template) Name() string { return t.name }

// Autoescaped reports whether values are HTML-escaped when emitted.
func (t *Template) Autoescaped() bool { return t.escaped }

// Execute renders the template against data into w.
func (t *Template) Execute(w io.Writer, data any) error {
	return t.exec.Execute(w, data)
}

// Environment owns template loading, compilation, caching and the global
// variables every template sees. It is safe for concurrent use.
type Environment struct {
	fsys       fs.FS
	dir        string
	trimBlocks bool
	autoescape func(name string) bool
	funcs      map[string]any
	globals    map[string]any

	mu    sync.RWMutex
	cache map[string]*Template
}

// EnvironmentOption customizes an Environment at construction.
type EnvironmentOption func(*Environment)

// WithTrimBlocks toggles block-line whitespace trimming (on by default).
func WithTrimBlocks(enabled bool) EnvironmentOption {
	return func(e *Environment) { e.trimBlocks = enabled }
}

// WithAutoescape replaces the extension-based escaping selector.
func WithAutoescape(fn func(name string) bool) EnvironmentOption {
	return func(e *Environment) { e.autoescape = fn }
}

// NewEnvironment builds an environment loading templates from dir inside fsys.
// The theme tokens are registered as the "theme" global, a nested map keyed
// like the dotted token names. The global and the token func are built from
// one snapshot of the tokens, taken here.
func NewEnvironment(fsys fs.FS, dir string, opts ...EnvironmentOption) *Environment {
	tokens := theme.Default()
	e := &Environment{
		fsys:       fsys,
		dir:        dir,
		trimBlocks: true,
		autoescape: autoescapeByExtension,
		funcs:      defaultFuncs(tokens),
		globals:    map[string]any{"theme": tokens.Tree()},
		cache:      make(map[string]*Template),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultOnce sync.Once
	defaultEnv  *Environment
)

// Default returns the process-wide environment bound to the embedded email
// templates, creating it on first use. Every call returns the same instance.
func Default() *Environment {
	defaultOnce.Do(func() {
		defaultEnv = NewEnvironment(embeddedTemplates, templateDir)
	})
	return defaultEnv
}

// TemplateDirectory returns the directory the default environment loads
// templates from. Useful when debugging a missing template.
func TemplateDirectory() string {
	return templateDir
}

// Dir returns the directory this environment loads templates from.
func (e *Environment) Dir() string { return e.dir }

// Globals returns the names of the variables injected into every template.
func (e *Environment) Globals() []string {
	names := make([]string, 0, len(e.globals))
	for k := range e.globals {
		names = append(names, k)
	}
	return names
}

// GetTemplate returns the compiled template for name, loading and caching it
// on first use. A missing resource yields *TemplateNotFoundError; a read or
// syntax failure yields *RenderError.
func (e *Environment) GetTemplate(name string) (*Template, error) {
	e.mu.RLock()
	t, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return t, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.cache[name]; ok {
		return t, nil
	}

	t, err := e.load(name)
	if err != nil {
		return nil, err
	}
	e.cache[name] = t
	return t, nil
}

// bind adds the environment globals to ctx. Keys already present in ctx win.
func (e *Environment) bind(ctx Context) {
	for k, v := range e.globals {
		if _, exists := ctx[k]; !exists {
			ctx[k] = v
		}
	}
}

func (e *Environment) load(name string) (*Template, error) {
	full := path.Join(e.dir, name)
	if !fs.ValidPath(full) || strings.Contains(name, "..") {
		return nil, &TemplateNotFoundError{Name: name, Dir: e.dir, Err: fs.ErrInvalid}
	}

	src, err := fs.ReadFile(e.fsys, full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TemplateNotFoundError{Name: name, Dir: e.dir, Err: err}
		}
		return nil, &RenderError{Template: name, Stage: StageLoad, Err: err}
	}

	text := string(src)
	if e.trimBlocks {
		text = trimBlockLines(text)
	}

	if e.autoescape(name) {
		ht, err := htmltemplate.New(name).
			Option("missingkey=error").
			Funcs(htmltemplate.FuncMap(e.funcs)).
			Parse(text)
		if err != nil {
			return nil, &RenderError{Template: name, Stage: StageParse, Err: err}
		}
		return &Template{name: name, escaped: true, exec: ht}, nil
	}

	tt, err := texttemplate.New(name).
		Option("missingkey=error").
		Funcs(texttemplate.FuncMap(e.funcs)).
		Parse(text)
	if err != nil {
		return nil, &RenderError{Template: name, Stage: StageParse, Err: err}
	}
	return &Template{name: name, escaped: false, exec: tt}, nil
}

// autoescapeByExtension enables escaping when any dotted segment of the name
// is an HTML-family extension, so "digest.html.tmpl" is escaped and
// "digest.txt.tmpl" is not.
func autoescapeByExtension(name string) bool {
	parts := strings.Split(strings.ToLower(path.Base(name)), ".")
	for _, ext := range parts[1:] {
		if htmlExtensions[ext] {
			return true
		}
	}
	return false
}

// blockActionLine matches a line holding nothing but one block-level action.
var blockActionLine = regexp.MustCompile(
	`^[ \t]*\{\{-?\s*(?:(?:if|else|end|range|with|define|block|break|continue)\b|/\*)[^{}]*-?\}\}[ \t]*$`)

// trimBlockLines strips the indentation before, and the newline after, every
// line that only holds a block action, so control flow leaves no blank lines
// in the output.
func trimBlockLines(src string) string {
	var b bytes.Buffer
	b.Grow(len(src))
	for _, line := range strings.SplitAfter(src, "\n") {
		body := strings.TrimRight(line, "\r\n")
		if blockActionLine.MatchString(body) {
			b.WriteString(strings.TrimSpace(body))
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
