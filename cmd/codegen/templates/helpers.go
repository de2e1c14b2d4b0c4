package templates

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultImport = "github.com/delaneyj/reactiveparty/reactivity"

// Config describes one accessor type to generate.
type Config struct {
	Package string
	Type    string
	Fields  []Field
	// Import is the engine import path (default: DefaultImport).
	Import string
}

// Field is a record key and the Go type stored under it.
type Field struct {
	Name string
	Type string
}

// names the generated constructor already uses for its locals
var reserved = map[string]bool{"rs": true, "raw": true, "obj": true, "reactivity": true}

// ParseField parses a name:type pair such as "title:string".
func ParseField(s string) (Field, error) {
	name, typ, ok := strings.Cut(s, ":")
	if !ok {
		return Field{}, fmt.Errorf("field %q: want name:type", s)
	}
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	if !token.IsIdentifier(name) {
		return Field{}, fmt.Errorf("field %q: %q is not a valid identifier", s, name)
	}
	if reserved[name] {
		return Field{}, fmt.Errorf("field %q: %q is reserved", s, name)
	}
	if typ == "" || strings.ContainsAny(typ, ". \t") {
		return Field{}, fmt.Errorf("field %q: type must be an unqualified Go type", s)
	}
	return Field{Name: name, Type: typ}, nil
}

func (cfg *Config) Validate() error {
	if !token.IsIdentifier(cfg.Package) {
		return fmt.Errorf("package %q is not a valid identifier", cfg.Package)
	}
	if !token.IsIdentifier(cfg.Type) || !token.IsExported(cfg.Type) {
		return fmt.Errorf("type %q must be an exported identifier", cfg.Type)
	}
	if len(cfg.Fields) == 0 {
		return fmt.Errorf("type %s has no fields", cfg.Type)
	}

	recv := cfg.receiverName()
	methods := map[string]string{}
	for _, f := range cfg.Fields {
		if f.Name == recv {
			return fmt.Errorf("field %q clashes with the receiver name", f.Name)
		}
		for _, m := range []string{f.getter(), f.setter()} {
			if m == "Object" {
				return fmt.Errorf("field %q generates the reserved method Object", f.Name)
			}
			if other, ok := methods[m]; ok {
				return fmt.Errorf("fields %q and %q both generate method %s", other, f.Name, m)
			}
			methods[m] = f.Name
		}
	}
	return nil
}

func (cfg *Config) importPath() string {
	if cfg.Import == "" {
		return DefaultImport
	}
	return cfg.Import
}

func (cfg *Config) receiverName() string {
	r, _ := utf8.DecodeRuneInString(cfg.Type)
	return string(unicode.ToLower(r))
}

func (cfg *Config) paramList() string {
	var sb strings.Builder
	for i, f := range cfg.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(" ")
		sb.WriteString(f.Type)
	}
	return sb.String()
}

func (f Field) getter() string {
	return exportedName(f.Name)
}

func (f Field) setter() string {
	return "Set" + exportedName(f.Name)
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
