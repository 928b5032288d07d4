package shape

import (
	"fmt"

	"github.com/wippyai/zvalue/errors"
)

// Classify maps a definition onto exactly one supported shape.
func Classify(def *Definition) (*Descriptor, error) {
	if def == nil {
		return nil, errors.InvalidInput(errors.PhaseDerive, "definition cannot be nil")
	}

	d := &Descriptor{
		Name:       def.Name,
		TypeParams: def.TypeParams,
		Lifetimes:  def.Lifetimes,
	}

	switch def.Category {
	case CategoryStruct:
		return classifyStruct(def, d)
	case CategoryNewtype:
		d.Kind = KindSingleFieldWrapper
		d.Inner = def.Underlying
		return d, nil
	case CategoryEnum:
		return classifyEnum(def, d)
	default:
		return nil, errors.UnsupportedShape(d.path(), def.Name, "only structures and enums supported")
	}
}

func classifyStruct(def *Definition, d *Descriptor) (*Descriptor, error) {
	if len(def.Fields) == 0 {
		return nil, errors.UnsupportedShape(d.path(), def.Name, "unit structures not supported")
	}

	named := false
	for _, f := range def.Fields {
		if !f.Embedded {
			named = true
			break
		}
	}

	if !named {
		if len(def.Fields) > 1 {
			return nil, errors.UnsupportedShape(d.path(), def.Name,
				fmt.Sprintf("tuple structures with %d unnamed fields not supported", len(def.Fields)))
		}
		d.Kind = KindSingleFieldWrapper
		d.Inner = def.Fields[0].Type
		return d, nil
	}

	d.Kind = KindNamedRecord
	d.Fields = make([]Field, len(def.Fields))
	for i, f := range def.Fields {
		d.Fields[i] = Field{Name: f.Name, Type: f.Type, Index: f.Index}
	}
	return d, nil
}

func classifyEnum(def *Definition, d *Descriptor) (*Descriptor, error) {
	d.Kind = KindUnitEnum
	d.Variants = make([]Variant, len(def.Members))
	for i, m := range def.Members {
		if m.HasData {
			return nil, errors.UnsupportedShape(d.path(m.Name), def.Name,
				fmt.Sprintf("`%s` must be a unit variant", m.Name))
		}
		d.Variants[i] = Variant{Name: m.Name, Disc: m.Disc, Literal: m.DiscText}
	}
	return d, nil
}
