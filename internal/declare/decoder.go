// Package declare decodes enum declaration documents from JSON or YAML into
// the intermediate form the variant package turns into live enums.
package declare

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is one declarative enum declaration. Member tokens stay untyped
// so member-set validation can reject non-string tokens the same way it does
// for programmatic declarations.
type Document struct {
	Enum     string        `json:"enum" yaml:"enum"`
	Variants []VariantDecl `json:"variants" yaml:"variants"`
}

// VariantDecl declares one variant case.
type VariantDecl struct {
	Name    string `json:"name" yaml:"name"`
	Members []any  `json:"members" yaml:"members"`
}

// Context carries identifiers tied to a declaration payload.
type Context struct {
	Source string
	Format string
}

// PreHook lets callers normalise the document before it is validated.
type PreHook func(Context, *Document) error

// DecoderOption configures a Decoder instance.
type DecoderOption func(*Decoder)

// Decoder converts declaration payloads into Documents.
type Decoder struct {
	preHooks []PreHook
}

// WithPreHook applies hook after decoding, before the document is handed
// back.
func WithPreHook(hook PreHook) DecoderOption {
	return func(d *Decoder) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// NewDecoder constructs a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// DecodeJSON parses a JSON declaration document. Unknown fields are
// rejected.
func (d *Decoder) DecodeJSON(ctx Context, payload []byte) (Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("declare: decode %s: %w", describeSource(ctx), err)
	}
	return d.finish(ctx, doc)
}

// DecodeYAML parses a YAML declaration document. Unknown fields are
// rejected.
func (d *Decoder) DecodeYAML(ctx Context, payload []byte) (Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(payload))
	decoder.KnownFields(true)
	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("declare: decode %s: %w", describeSource(ctx), err)
	}
	return d.finish(ctx, doc)
}

func (d *Decoder) finish(ctx Context, doc Document) (Document, error) {
	for _, hook := range d.preHooks {
		if err := hook(ctx, &doc); err != nil {
			return Document{}, fmt.Errorf("declare: pre-hook for %s failed: %w", describeSource(ctx), err)
		}
	}
	if doc.Enum == "" {
		return Document{}, fmt.Errorf("declare: %s: enum name must not be empty", describeSource(ctx))
	}
	if len(doc.Variants) == 0 {
		return Document{}, fmt.Errorf("declare: %s: at least one variant is required", describeSource(ctx))
	}
	for _, v := range doc.Variants {
		if v.Name == "" {
			return Document{}, fmt.Errorf("declare: %s: variant name must not be empty", describeSource(ctx))
		}
	}
	return doc, nil
}

func describeSource(ctx Context) string {
	source := ctx.Source
	if source == "" {
		source = "payload"
	}
	if ctx.Format != "" {
		return fmt.Sprintf("%s (%s)", source, ctx.Format)
	}
	return source
}
