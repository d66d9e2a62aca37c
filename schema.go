package variant

import "encoding/json"

// VariantDescriptor is the introspection document for one variant type.
type VariantDescriptor struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Enum    string   `json:"enum,omitempty"`
	Members []string `json:"members"`
	Methods []string `json:"methods,omitempty"`
}

// EnumDescriptor is the introspection document for an enum and its variants,
// listed in declaration order.
type EnumDescriptor struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Variants []VariantDescriptor `json:"variants"`
}

// DescribeType derives the descriptor for a variant type.
func DescribeType(t *Type) VariantDescriptor {
	if t == nil {
		return VariantDescriptor{}
	}
	descriptor := VariantDescriptor{
		ID:      t.id,
		Name:    t.name,
		Members: t.Members(),
	}
	if descriptor.Members == nil {
		descriptor.Members = []string{}
	}
	if methods := t.Methods(); len(methods) > 0 {
		descriptor.Methods = methods
	}
	if t.enum != nil {
		descriptor.Enum = t.enum.name
	}
	return descriptor
}

// DescribeEnum derives the descriptor for an enum.
func DescribeEnum(e *Enum) EnumDescriptor {
	if e == nil {
		return EnumDescriptor{}
	}
	variants := e.Variants()
	descriptor := EnumDescriptor{
		ID:       e.id,
		Name:     e.name,
		Variants: make([]VariantDescriptor, 0, len(variants)),
	}
	for _, t := range variants {
		descriptor.Variants = append(descriptor.Variants, DescribeType(t))
	}
	return descriptor
}

// ToJSON serialises the descriptor for logging or transport helpers.
func (d EnumDescriptor) ToJSON() ([]byte, error) {
	type alias EnumDescriptor
	return json.Marshal(alias(d))
}

// EnumDescriptorFromJSON deserialises a payload previously generated via
// ToJSON.
func EnumDescriptorFromJSON(payload []byte) (EnumDescriptor, error) {
	type alias EnumDescriptor
	var descriptor alias
	if err := json.Unmarshal(payload, &descriptor); err != nil {
		return EnumDescriptor{}, err
	}
	return EnumDescriptor(descriptor), nil
}
