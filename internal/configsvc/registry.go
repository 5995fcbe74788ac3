package configsvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tomlcore/tomlcore/internal/configsvc/cache"
	"github.com/tomlcore/tomlcore/internal/configsvc/storage"
	"github.com/tomlcore/tomlcore/schema"
	"github.com/tomlcore/tomlcore/toml"
	"github.com/tomlcore/tomlcore/value"
)

// Document is one watched TOML file's last-known-good state.
type Document struct {
	Path     string
	Table    *value.Table
	JSON     []byte
	Hash     string
	LoadedAt time.Time
}

// Registry holds every watched document, keeping the cache and audit
// store in sync with what's on disk. It implements httpapi.Store.
type Registry struct {
	mu        sync.RWMutex
	docs      map[string]*Document
	schemas   map[string]*schema.Schema
	cache     *cache.Cache
	audit     *storage.Store
	logger    *zap.Logger
}

// NewRegistry builds an empty Registry. schemas maps a document name
// (as passed to Load/Reload) to the schema it must validate against;
// a name absent from schemas is parsed but not validated.
func NewRegistry(c *cache.Cache, audit *storage.Store, schemas map[string]*schema.Schema, logger *zap.Logger) *Registry {
	return &Registry{
		docs:    make(map[string]*Document),
		schemas: schemas,
		cache:   c,
		audit:   audit,
		logger:  logger,
	}
}

// Load parses, validates, and registers the file at path under name.
func (r *Registry) Load(ctx context.Context, name, path string) error {
	doc, err := r.readDocument(path)
	if err != nil {
		return err
	}
	if s, ok := r.schemas[name]; ok {
		if res := schema.Validate(s, doc.Table); !res.OK() {
			return fmt.Errorf("configsvc: %s failed validation: %v", name, res.Errors)
		}
	}

	r.mu.Lock()
	r.docs[name] = doc
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Set(ctx, name, doc.JSON); err != nil {
			r.logger.Warn("cache set failed", zap.String("name", name), zap.Error(err))
		}
	}
	return nil
}

// Reload re-reads the document previously registered under name,
// recording the outcome to the audit store.
func (r *Registry) Reload(name string) error {
	r.mu.RLock()
	prior, ok := r.docs[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("configsvc: %s is not a registered document", name)
	}

	ctx := context.Background()
	doc, err := r.readDocument(prior.Path)
	event := storage.Event{
		Path:        name,
		PriorHash:   prior.Hash,
		RequestedBy: "admin",
		OccurredAt:  time.Now(),
	}
	if err != nil {
		event.Valid, event.Message = false, err.Error()
		r.recordAudit(ctx, event)
		return err
	}
	event.NextHash = doc.Hash

	if s, ok := r.schemas[name]; ok {
		if res := schema.Validate(s, doc.Table); !res.OK() {
			event.Valid, event.Message = false, fmt.Sprintf("%v", res.Errors)
			r.recordAudit(ctx, event)
			return fmt.Errorf("configsvc: %s failed validation: %v", name, res.Errors)
		}
	}
	event.Valid, event.Message = true, "reloaded"
	r.recordAudit(ctx, event)

	r.mu.Lock()
	r.docs[name] = doc
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Set(ctx, name, doc.JSON); err != nil {
			r.logger.Warn("cache set failed", zap.String("name", name), zap.Error(err))
		}
	}
	return nil
}

func (r *Registry) recordAudit(ctx context.Context, event storage.Event) {
	if r.audit == nil {
		return
	}
	if err := r.audit.Record(ctx, event); err != nil {
		r.logger.Warn("audit record failed", zap.Error(err))
	}
}

func (r *Registry) readDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("configsvc: read %s: %w", path, err)
	}
	tbl, err := toml.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("configsvc: parse %s: %w", path, err)
	}
	body, err := toml.ToJSON(tbl)
	if err != nil {
		return nil, fmt.Errorf("configsvc: render %s as json: %w", path, err)
	}
	sum := sha256.Sum256(raw)
	return &Document{
		Path:     path,
		Table:    tbl,
		JSON:     body,
		Hash:     hex.EncodeToString(sum[:]),
		LoadedAt: time.Now(),
	}, nil
}

// CurrentJSON returns the last-loaded JSON rendering of name.
func (r *Registry) CurrentJSON(name string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[name]
	if !ok {
		return nil, false
	}
	return doc.JSON, true
}

// Names lists every currently registered document.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.docs))
	for name := range r.docs {
		names = append(names, name)
	}
	return names
}
