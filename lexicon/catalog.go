package lexicon

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/cometsh/atkit/syntax"
)

// Catalog resolves a canonical "nsid#fragment" reference to a compiled
// schema. Implementations must be safe for concurrent use; ref and union
// fields hold a Catalog and resolve through it at validation time.
type Catalog interface {
	Resolve(ref string) (Schema, error)
}

// BaseCatalog is the standard in-memory catalog: a write-once registry of
// compiled bundles keyed by NSID. Registration takes the write lock;
// resolution takes the read lock only, so validation never contends with
// validation.
type BaseCatalog struct {
	mu      sync.RWMutex
	bundles map[syntax.NSID]*Bundle
}

func NewBaseCatalog() *BaseCatalog {
	return &BaseCatalog{bundles: make(map[syntax.NSID]*Bundle)}
}

// Default is the process-wide catalog that lexgen-generated packages
// register into at init time.
var Default = NewBaseCatalog()

// AddDocument compiles a document and registers the resulting bundle.
// Compilation happens outside the lock; references to documents not yet
// registered (including this one) are legal and resolve lazily. Re-adding
// an already registered id is an error.
func (c *BaseCatalog) AddDocument(doc *Document) (*Bundle, error) {
	b, err := compileDocument(c, doc)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.bundles[b.id]; exists {
		return nil, fmt.Errorf("lexicon %s is already registered", b.id)
	}
	c.bundles[b.id] = b
	return b, nil
}

// AddJSON parses, compiles and registers a raw Lexicon JSON document.
func (c *BaseCatalog) AddJSON(raw []byte) (*Bundle, error) {
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	return c.AddDocument(doc)
}

// LoadDirectory walks root for *.json files and registers each one. Works
// over any fs.FS, including embedded trees. The walk order is the fs order;
// cross-file references need not respect it.
func (c *BaseCatalog) LoadDirectory(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path.Base(p), ".json") {
			return nil
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if _, err := c.AddJSON(raw); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return nil
	})
}

// Resolve implements Catalog. ref must be canonical "nsid" or
// "nsid#fragment" form; a missing bundle or fragment is a *ReferenceError.
func (c *BaseCatalog) Resolve(ref string) (Schema, error) {
	nsid, fragment, err := syntax.ParseNSIDRef(ref)
	if err != nil {
		return nil, &ReferenceError{Ref: ref}
	}
	c.mu.RLock()
	b, ok := c.bundles[nsid]
	c.mu.RUnlock()
	if !ok {
		return nil, &ReferenceError{Ref: ref}
	}
	s, ok := b.Schema(fragment)
	if !ok {
		return nil, &ReferenceError{Ref: ref}
	}
	return s, nil
}

// Bundle returns the registered bundle for an id.
func (c *BaseCatalog) Bundle(id syntax.NSID) (*Bundle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bundles[id]
	return b, ok
}

// Bundles returns every registered bundle, sorted by id.
func (c *BaseCatalog) Bundles() []*Bundle {
	c.mu.RLock()
	out := make([]*Bundle, 0, len(c.bundles))
	for _, b := range c.bundles {
		out = append(out, b)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
