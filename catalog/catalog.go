// Package catalog holds the closed set of named reports offered by the
// dashboard. Report names are the only user input it accepts; query text
// comes exclusively from the catalog resource.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"securecheck-api/config"
	"securecheck-api/models"

	"gopkg.in/yaml.v3"
)

//go:embed reports.yaml
var defaultCatalog []byte

// DataSource runs read-only query text and returns its rows.
type DataSource interface {
	Query(ctx context.Context, query string) (*models.Table, error)
}

type ReportDefinition struct {
	Name     string
	Template string
}

type entry struct {
	Name     string            `yaml:"name"`
	Query    string            `yaml:"query"`
	Dialects map[string]string `yaml:"dialects"`
}

type document struct {
	Reports []entry `yaml:"reports"`
}

// Catalog is immutable once loaded and safe for concurrent use.
type Catalog struct {
	dialect string
	order   []string
	byName  map[string]ReportDefinition
}

// Default returns the embedded catalog resolved for dialect.
func Default(dialect string) (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog), dialect)
}

// FromConfig loads the file named by cfg.Path, or the embedded catalog
// when no path is set.
func FromConfig(cfg config.CatalogConfig, dialect string) (*Catalog, error) {
	if cfg.Path == "" {
		return Default(dialect)
	}
	return LoadFile(cfg.Path, dialect)
}

// LoadFile reads a catalog from path.
func LoadFile(path, dialect string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f, dialect)
}

// Load parses a YAML catalog and resolves per-dialect overrides. Names must
// be unique and every resolved template non-empty.
func Load(r io.Reader, dialect string) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Reports) == 0 {
		return nil, fmt.Errorf("catalog defines no reports")
	}

	c := &Catalog{
		dialect: dialect,
		order:   make([]string, 0, len(doc.Reports)),
		byName:  make(map[string]ReportDefinition, len(doc.Reports)),
	}
	for i, e := range doc.Reports {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("report #%d has no name", i+1)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate report name %q", name)
		}
		tmpl := e.Query
		if override, ok := e.Dialects[dialect]; ok {
			tmpl = override
		}
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			return nil, fmt.Errorf("report %q has an empty template for dialect %q", name, dialect)
		}
		c.order = append(c.order, name)
		c.byName[name] = ReportDefinition{Name: name, Template: tmpl}
	}
	return c, nil
}

func (c *Catalog) Dialect() string { return c.dialect }

// Names returns report names in display order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Template returns the query text registered under name.
func (c *Catalog) Template(name string) (string, error) {
	def, ok := c.byName[name]
	if !ok {
		return "", &UnknownReportError{Name: name}
	}
	return def.Template, nil
}

// Execute runs the named report against ds. A successful run with no rows
// returns an empty table and a nil error.
func (c *Catalog) Execute(ctx context.Context, name string, ds DataSource) (*models.Table, error) {
	tmpl, err := c.Template(name)
	if err != nil {
		return nil, err
	}
	tbl, err := ds.Query(ctx, tmpl)
	if err != nil {
		return nil, &ReportExecutionError{Name: name, Cause: err}
	}
	if tbl == nil {
		return nil, &ReportExecutionError{Name: name, Cause: fmt.Errorf("data source returned no result")}
	}
	return tbl, nil
}
