package cssvars

import (
	"errors"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// ErrNoDocument is returned when a projector has no root scope to write to.
var ErrNoDocument = errors.New("no document to project onto")

// Projector writes a resolved theme to some rendering surface.
type Projector interface {
	// Apply projects t rendered as resolved. Applying the same theme twice
	// leaves the surface unchanged.
	Apply(t theme.Theme, resolved theme.ResolvedScheme) error
	// SuspendTransitions disables animated transitions until
	// ResumeTransitions is called.
	SuspendTransitions() error
	ResumeTransitions() error
}

// Document is an in-memory root scope: custom properties, attributes and a
// class list. It is safe for concurrent use.
type Document struct {
	mu         sync.RWMutex
	properties map[string]string
	attributes map[string]string
	classes    map[string]struct{}
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		properties: make(map[string]string),
		attributes: make(map[string]string),
		classes:    make(map[string]struct{}),
	}
}

// SetProperty sets one custom property, replacing any previous value.
func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.properties[name] = value
}

// RemoveProperty deletes one custom property.
func (d *Document) RemoveProperty(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.properties, name)
}

// Property returns a custom property value.
func (d *Document) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.properties[name]
	return v, ok
}

// Properties returns a copy of every custom property.
func (d *Document) Properties() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(d.properties))
	for k, v := range d.properties {
		out[k] = v
	}
	return out
}

// SetAttribute sets a root attribute.
func (d *Document) SetAttribute(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attributes[name] = value
}

// Attribute returns a root attribute.
func (d *Document) Attribute(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.attributes[name]
	return v, ok
}

// AddClass adds a class to the root class list.
func (d *Document) AddClass(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classes[name] = struct{}{}
}

// RemoveClass removes a class from the root class list.
func (d *Document) RemoveClass(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.classes, name)
}

// HasClass reports whether the root class list contains name.
func (d *Document) HasClass(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.classes[name]
	return ok
}

// Classes returns the class list in sorted order.
func (d *Document) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.classes))
	for c := range d.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// DocumentProjector projects color properties and the scheme marker onto a
// Document. Color properties it wrote for an earlier theme and that the next
// theme lacks are removed.
type DocumentProjector struct {
	doc *Document

	mu        sync.Mutex
	projected map[string]struct{}
}

// NewDocumentProjector returns a projector writing to doc. A nil doc is
// accepted; every call then fails with ErrNoDocument.
func NewDocumentProjector(doc *Document) *DocumentProjector {
	return &DocumentProjector{doc: doc}
}

var _ Projector = (*DocumentProjector)(nil)

// Document returns the projection target.
func (p *DocumentProjector) Document() *Document {
	return p.doc
}

// Apply implements Projector.
func (p *DocumentProjector) Apply(t theme.Theme, resolved theme.ResolvedScheme) error {
	if p.doc == nil {
		return sablierrors.NewProjectionError("document", ErrNoDocument)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	next := make(map[string]struct{})
	for _, prop := range ColorProperties(t.Colors) {
		p.doc.SetProperty(prop.Name, prop.Value)
		next[prop.Name] = struct{}{}
	}
	for name := range p.projected {
		if _, ok := next[name]; !ok {
			p.doc.RemoveProperty(name)
		}
	}
	p.projected = next
	p.doc.SetAttribute(ThemeAttribute, string(resolved))
	return nil
}

// SuspendTransitions implements Projector.
func (p *DocumentProjector) SuspendTransitions() error {
	if p.doc == nil {
		return sablierrors.NewProjectionError("document", ErrNoDocument)
	}
	p.doc.AddClass(TransitionGuardClass)
	return nil
}

// ResumeTransitions implements Projector.
func (p *DocumentProjector) ResumeTransitions() error {
	if p.doc == nil {
		return sablierrors.NewProjectionError("document", ErrNoDocument)
	}
	p.doc.RemoveClass(TransitionGuardClass)
	return nil
}

// Noop is a Projector for headless contexts.
type Noop struct{}

// Apply discards the theme.
func (Noop) Apply(theme.Theme, theme.ResolvedScheme) error { return nil }

// SuspendTransitions does nothing.
func (Noop) SuspendTransitions() error { return nil }

// ResumeTransitions does nothing.
func (Noop) ResumeTransitions() error { return nil }
