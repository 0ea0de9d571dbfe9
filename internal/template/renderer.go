package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"text/template/parse"
)

const (
	leftDelim  = "[["
	rightDelim = "]]"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// jsonEscape escapes a string for safe embedding in JSON values.
	"jsonEscape": func(s string) string {
		b, err := json.Marshal(s)
		if err != nil {
			return s
		}
		return string(b[1 : len(b)-1])
	},
	// posixPath converts Windows backslash paths to forward-slash POSIX paths.
	"posixPath": func(s string) string {
		return strings.ReplaceAll(s, "\\", "/")
	},
	"lower":  strings.ToLower,
	"upper":  strings.ToUpper,
	"snake":  SnakeCase,
	"pascal": TypeName,
	"quote":  strconv.Quote,
}

// unresolvedMarkerPattern detects placeholder markers left in rendered output.
var unresolvedMarkerPattern = regexp.MustCompile(`\[\[-?\s*\$?\.[A-Za-z_][A-Za-z0-9_.]*\s*-?\]\]`)

// markerNamePattern extracts the binding name from a marker.
var markerNamePattern = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)`)

// missingKeyPattern extracts the key from text/template's missingkey error.
var missingKeyPattern = regexp.MustCompile(`map has no entry for key "([^"]+)"`)

// Substituter resolves placeholders in fragment contents and path patterns.
// It performs no I/O and is safe for concurrent use.
type Substituter interface {
	// Substitute renders text against the bindings. name identifies the
	// fragment in errors. Returns an *UnresolvedPlaceholderError if any
	// placeholder has no binding.
	Substitute(name, text string) ([]byte, error)

	// SubstitutePath renders a path pattern and returns a cleaned,
	// slash-separated relative path. Returns ErrInvalidPath if the result is
	// empty, absolute, or escapes the project root.
	SubstitutePath(pattern string) (string, error)
}

// substituter is the concrete implementation of Substituter.
type substituter struct {
	bindings map[string]any
}

// NewSubstituter creates a Substituter over a copy of the given bindings.
func NewSubstituter(bindings map[string]any) Substituter {
	b := make(map[string]any, len(bindings))
	for k, v := range bindings {
		b[k] = v
	}
	return &substituter{bindings: b}
}

// Substitute parses and executes text with strict mode (missingkey=error).
func (s *substituter) Substitute(name, text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}

	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateSyntax, name, err)
	}

	if missing := s.missingRefs(tmpl); len(missing) > 0 {
		return nil, &UnresolvedPlaceholderError{Name: missing[0], Template: name}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s.bindings); err != nil {
		if m := missingKeyPattern.FindStringSubmatch(err.Error()); m != nil {
			return nil, &UnresolvedPlaceholderError{Name: m[1], Template: name}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}

	result := buf.Bytes()
	if marker := FindUnresolved(result); marker != "" {
		key := marker
		if m := markerNamePattern.FindStringSubmatch(marker); m != nil {
			key = m[1]
		}
		return nil, &UnresolvedPlaceholderError{Name: key, Template: name}
	}

	return result, nil
}

// SubstitutePath renders pattern and validates the result as a relative path.
func (s *substituter) SubstitutePath(pattern string) (string, error) {
	out, err := s.Substitute(pattern, pattern)
	if err != nil {
		return "", err
	}

	p := strings.ReplaceAll(string(out), "\\", "/")
	switch {
	case strings.TrimSpace(p) == "":
		return "", fmt.Errorf("%w: %q resolves to an empty path", ErrInvalidPath, pattern)
	case strings.HasPrefix(p, "/") || hasVolume(p):
		return "", fmt.Errorf("%w: %q resolves to absolute path %q", ErrInvalidPath, pattern, p)
	}

	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "":
			return "", fmt.Errorf("%w: %q resolves to %q with an empty segment", ErrInvalidPath, pattern, p)
		case "..":
			return "", fmt.Errorf("%w: %q resolves to %q outside the project", ErrInvalidPath, pattern, p)
		}
	}

	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", fmt.Errorf("%w: %q resolves to the project root", ErrInvalidPath, pattern)
	}
	return cleaned, nil
}

// missingRefs returns the sorted binding names referenced by tmpl that have
// no binding.
func (s *substituter) missingRefs(tmpl *template.Template) []string {
	refs := make(map[string]struct{})
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			collectRefs(t.Tree.Root, true, refs)
		}
	}

	var missing []string
	for name := range refs {
		if _, ok := s.bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	return missing
}

// collectRefs records the first identifier of every field reference made
// against the root data. Inside range and with bodies dot is rebound, so
// only $-rooted references are collected there.
func collectRefs(node parse.Node, rooted bool, refs map[string]struct{}) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectRefs(c, rooted, refs)
		}
	case *parse.ActionNode:
		collectRefs(n.Pipe, rooted, refs)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, c := range n.Cmds {
			collectRefs(c, rooted, refs)
		}
	case *parse.CommandNode:
		for _, a := range n.Args {
			collectRefs(a, rooted, refs)
		}
	case *parse.FieldNode:
		if rooted && len(n.Ident) > 0 {
			refs[n.Ident[0]] = struct{}{}
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			refs[n.Ident[1]] = struct{}{}
		}
	case *parse.ChainNode:
		collectRefs(n.Node, rooted, refs)
	case *parse.IfNode:
		collectRefs(n.Pipe, rooted, refs)
		collectRefs(n.List, rooted, refs)
		collectRefs(n.ElseList, rooted, refs)
	case *parse.RangeNode:
		collectRefs(n.Pipe, rooted, refs)
		collectRefs(n.List, false, refs)
		collectRefs(n.ElseList, rooted, refs)
	case *parse.WithNode:
		collectRefs(n.Pipe, rooted, refs)
		collectRefs(n.List, false, refs)
		collectRefs(n.ElseList, rooted, refs)
	case *parse.TemplateNode:
		collectRefs(n.Pipe, rooted, refs)
	}
}

// FindUnresolved returns the first placeholder marker left in b, or "" if
// there is none.
func FindUnresolved(b []byte) string {
	return string(unresolvedMarkerPattern.Find(b))
}

func hasVolume(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}
