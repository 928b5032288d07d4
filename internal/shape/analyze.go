package shape

// Analyze runs Classify, Validate and ResolveRepr in order.
func Analyze(def *Definition, flavors Flavor) (*Descriptor, error) {
	d, err := Classify(def)
	if err != nil {
		return nil, err
	}
	if err := Validate(d, flavors); err != nil {
		return nil, err
	}
	if err := ResolveRepr(d, def.Repr); err != nil {
		return nil, err
	}
	return d, nil
}
