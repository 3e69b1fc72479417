// Package catalog registers the playground's operations as discoverable tools.
//
// Each operation (lint, analyze, run) is described by an MCP tool definition
// and indexed under the "codelab" namespace, together with documentation that
// can be retrieved at summary or full detail.
package catalog

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/codelab/toolbox"
)

// Namespace is the namespace every playground tool is registered under.
const Namespace = "codelab"

// Tool names.
const (
	ToolLint    = "lint"
	ToolAnalyze = "analyze"
	ToolRun     = "run"
)

// ErrInvalidQuery is returned for searches with a non-positive limit.
var ErrInvalidQuery = errors.New("invalid search query")

// Definition describes one playground tool.
type Definition struct {
	Tool    mcp.Tool
	Tags    []string
	Summary string
	Notes   string
}

// ID returns the tool's catalog identifier ("codelab:<name>").
func (d Definition) ID() string {
	return ToolID(d.Tool.Name)
}

// ToolID returns the catalog identifier for a tool name.
func ToolID(name string) string {
	return toolbox.FormatToolID(Namespace, name)
}

// Options configures a Catalog.
type Options struct {
	// Lexical selects the index's default lexical searcher instead of BM25.
	Lexical bool

	// Languages lists the snippet languages the run tool accepts. It is
	// advertised in the run tool's schema.
	Languages []string
}

// Catalog is a searchable registry of the playground tools.
type Catalog struct {
	idx  index.Index
	docs tooldoc.Store
	defs []Definition
}

// New builds a catalog with every playground tool registered.
func New(opts Options) (*Catalog, error) {
	var idx index.Index
	if opts.Lexical {
		idx = index.NewInMemoryIndex()
	} else {
		idx = index.NewInMemoryIndex(index.IndexOptions{
			Searcher: search.NewBM25Searcher(search.BM25Config{}),
		})
	}
	var docs tooldoc.Store = tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})
	store, ok := docs.(*tooldoc.InMemoryStore)
	if !ok {
		return nil, fmt.Errorf("unexpected doc store %T", docs)
	}

	defs := Definitions(opts.Languages)
	for _, def := range defs {
		tool := model.Tool{
			Tool:      def.Tool,
			Namespace: Namespace,
			Tags:      def.Tags,
		}
		if err := idx.RegisterTool(tool, model.NewLocalBackend(def.Tool.Name+"-handler")); err != nil {
			return nil, fmt.Errorf("register %s: %w", def.ID(), err)
		}
		if err := store.RegisterDoc(def.ID(), tooldoc.DocEntry{
			Summary: def.Summary,
			Notes:   def.Notes,
		}); err != nil {
			return nil, fmt.Errorf("document %s: %w", def.ID(), err)
		}
	}

	return &Catalog{idx: idx, docs: docs, defs: defs}, nil
}

// Search finds tools matching query, best match first.
func (c *Catalog) Search(query string, limit int) ([]index.Summary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	}
	return c.idx.Search(query, limit)
}

// Namespaces lists the registered namespaces.
func (c *Catalog) Namespaces() ([]string, error) {
	return c.idx.ListNamespaces()
}

// Describe returns the documentation of a tool at the given detail level.
func (c *Catalog) Describe(id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	return c.docs.DescribeTool(id, level)
}

// Definitions returns the registered tool definitions.
func (c *Catalog) Definitions() []Definition {
	return append([]Definition(nil), c.defs...)
}

// Index returns the underlying tool index.
func (c *Catalog) Index() index.Index {
	return c.idx
}

// DocStore returns the underlying documentation store.
func (c *Catalog) DocStore() tooldoc.Store {
	return c.docs
}
