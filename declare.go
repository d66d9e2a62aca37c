package variant

import (
	"github.com/goliatone/go-variant/internal/declare"
)

// DeclareOption configures declarative enum loading.
type DeclareOption func(*declareConfig)

type declareConfig struct {
	source   string
	enumOpts []EnumOption
	preHooks []declare.PreHook
}

// DeclareWithSource names the payload origin for diagnostics.
func DeclareWithSource(source string) DeclareOption {
	return func(cfg *declareConfig) {
		cfg.source = source
	}
}

// DeclareWithEnumOptions forwards options to the declared enum.
func DeclareWithEnumOptions(opts ...EnumOption) DeclareOption {
	return func(cfg *declareConfig) {
		cfg.enumOpts = append(cfg.enumOpts, opts...)
	}
}

// DeclareWithPreHook normalises the decoded document before validation.
func DeclareWithPreHook(hook declare.PreHook) DeclareOption {
	return func(cfg *declareConfig) {
		if hook != nil {
			cfg.preHooks = append(cfg.preHooks, hook)
		}
	}
}

func applyDeclareOptions(opts []DeclareOption) declareConfig {
	cfg := declareConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DeclareJSON builds an enum and its variants from a JSON declaration
// document:
//
//	{"enum": "Message", "variants": [{"name": "Move", "members": ["x", "y"]}]}
//
// Member tokens run through the same validation as programmatic
// declarations, so a non-string token fails with ErrInvalidMemberType.
func DeclareJSON(payload []byte, opts ...DeclareOption) (*Enum, error) {
	cfg := applyDeclareOptions(opts)
	doc, err := cfg.decoder().DecodeJSON(declare.Context{Source: cfg.source, Format: "json"}, payload)
	if err != nil {
		return nil, err
	}
	return declareEnum(doc, cfg)
}

// DeclareYAML builds an enum and its variants from a YAML declaration
// document; the shape mirrors DeclareJSON.
func DeclareYAML(payload []byte, opts ...DeclareOption) (*Enum, error) {
	cfg := applyDeclareOptions(opts)
	doc, err := cfg.decoder().DecodeYAML(declare.Context{Source: cfg.source, Format: "yaml"}, payload)
	if err != nil {
		return nil, err
	}
	return declareEnum(doc, cfg)
}

func (cfg declareConfig) decoder() *declare.Decoder {
	decoderOpts := make([]declare.DecoderOption, 0, len(cfg.preHooks))
	for _, hook := range cfg.preHooks {
		decoderOpts = append(decoderOpts, declare.WithPreHook(hook))
	}
	return declare.NewDecoder(decoderOpts...)
}

func declareEnum(doc declare.Document, cfg declareConfig) (*Enum, error) {
	enum := NewEnum(doc.Enum, cfg.enumOpts...)
	for _, v := range doc.Variants {
		set, err := NewMemberSet(v.Members...)
		if err != nil {
			return nil, err
		}
		if _, err := enum.defineVariant(v.Name, set, nil); err != nil {
			return nil, err
		}
	}
	return enum, nil
}
