// Package catalog stores named selections in a blob store.
//
// Each selection is encoded with the codec package and kept in a blob named
// <prefix><name>.rsel:
//
//	store := blobstore.NewLocalStore("/var/lib/app/selections")
//	cat := catalog.New(store)
//
//	sel, err := cat.Apply(ctx, "active-users", "0-99, 250")
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/rangeset"
	"github.com/hupe1980/rangeset/blobstore"
	"github.com/hupe1980/rangeset/resource"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Extension is appended to every selection name to form its blob name.
const Extension = ".rsel"

const lockStripes = 64

var (
	// ErrNotFound is returned when a named selection does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrInvalidName is returned for empty names, names containing ".." or
	// names starting with "/".
	ErrInvalidName = errors.New("catalog: invalid name")
)

// Catalog stores named selections. It is safe for concurrent use.
type Catalog struct {
	store blobstore.BlobStore
	opts  Options
	rc    *resource.Controller

	// Serializes Apply per name within this process. Names share a stripe
	// when their hashes collide.
	locks [lockStripes]sync.Mutex
}

// New creates a Catalog on top of store.
func New(store blobstore.BlobStore, optFns ...func(o *Options)) *Catalog {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.fillDefaults()

	return &Catalog{
		store: store,
		opts:  opts,
		rc: resource.NewController(resource.Config{
			MaxConcurrentIO:    int64(max(opts.MaxConcurrency, 0)),
			IOLimitBytesPerSec: opts.WriteBytesPerSec,
		}),
	}
}

// ValidateName checks that name can be stored in a catalog.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasPrefix(name, "/"):
		return fmt.Errorf("%w: %q starts with '/'", ErrInvalidName, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q contains '..'", ErrInvalidName, name)
	}
	return nil
}

func (c *Catalog) blobName(name string) string {
	return c.opts.Prefix + name + Extension
}

// Save stores sel under name, replacing any previous selection.
func (c *Catalog) Save(ctx context.Context, name string, sel *rangeset.Selection) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := c.opts.Codec.Encode(sel)
	if err != nil {
		return fmt.Errorf("catalog: encode %q: %w", name, err)
	}

	if err := c.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := c.rc.AcquireSlot(ctx); err != nil {
		return err
	}
	defer c.rc.ReleaseSlot()

	if err := c.store.Put(ctx, c.blobName(name), data); err != nil {
		return fmt.Errorf("catalog: save %q: %w", name, err)
	}

	c.opts.Logger.Debug("selection saved",
		"name", name,
		"cardinality", sel.Cardinality(),
		"bytes", len(data),
		"codec", c.opts.Codec.Name(),
	)
	return nil
}

// Load returns the selection stored under name, or an error matching
// ErrNotFound.
func (c *Catalog) Load(ctx context.Context, name string) (*rangeset.Selection, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	if err := c.rc.AcquireSlot(ctx); err != nil {
		return nil, err
	}
	data, err := c.store.Get(ctx, c.blobName(name))
	c.rc.ReleaseSlot()
	if err != nil {
		return nil, fmt.Errorf("catalog: load %q: %w", name, err)
	}

	// Blocks are self-describing; any codec decodes them.
	sel, err := c.opts.Codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode %q: %w", name, err)
	}

	c.opts.Logger.Debug("selection loaded",
		"name", name,
		"cardinality", sel.Cardinality(),
		"bytes", len(data),
	)
	return sel, nil
}

// Delete removes the selection stored under name. Deleting a missing
// selection is not an error.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if err := c.rc.AcquireSlot(ctx); err != nil {
		return err
	}
	defer c.rc.ReleaseSlot()

	if err := c.store.Delete(ctx, c.blobName(name)); err != nil {
		return fmt.Errorf("catalog: delete %q: %w", name, err)
	}
	return nil
}

// Names returns the sorted names of all stored selections.
func (c *Catalog) Names(ctx context.Context) ([]string, error) {
	if err := c.rc.AcquireSlot(ctx); err != nil {
		return nil, err
	}
	blobs, err := c.store.List(ctx, c.opts.Prefix)
	c.rc.ReleaseSlot()
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}

	names := make([]string, 0, len(blobs))
	for _, b := range blobs {
		name, ok := strings.CutSuffix(strings.TrimPrefix(b, c.opts.Prefix), Extension)
		if ok && name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func stripe(name string) int {
	return int(xxh3.HashString(name) % lockStripes)
}

func (c *Catalog) lock(name string) func() {
	mu := &c.locks[stripe(name)]
	mu.Lock()
	return mu.Unlock
}

// Apply merges the indices selected by rangeString into the selection stored
// under name (starting from an empty selection when none exists), saves the
// result and returns it.
//
// A rejected expression leaves the stored selection untouched.
func (c *Catalog) Apply(ctx context.Context, name, rangeString string) (*rangeset.Selection, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	unlock := c.lock(name)
	defer unlock()

	sel, err := c.Load(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		sel = rangeset.NewSelection()
	case err != nil:
		return nil, err
	}

	if err := c.opts.Converter.UpdateSelection(rangeString, sel); err != nil {
		return nil, err
	}

	if err := c.Save(ctx, name, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// LoadAll loads the named selections concurrently. The result is keyed by
// name. The first failure cancels the remaining loads and is returned.
func (c *Catalog) LoadAll(ctx context.Context, names []string) (map[string]*rangeset.Selection, error) {
	results := make([]*rangeset.Selection, len(names))

	g, gctx := errgroup.WithContext(ctx)
	if c.opts.MaxConcurrency > 0 {
		g.SetLimit(c.opts.MaxConcurrency)
	}

	for i, name := range names {
		g.Go(func() error {
			sel, err := c.Load(gctx, name)
			if err != nil {
				return err
			}
			results[i] = sel
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.opts.Logger.Warn("bulk load failed",
			"names", len(names),
			"error", err,
		)
		return nil, err
	}

	out := make(map[string]*rangeset.Selection, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}
