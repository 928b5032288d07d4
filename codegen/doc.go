// Package codegen generates Value conversion methods from Go source.
//
// Types opt in with directives in their doc comment:
//
//	//zvalue:derive
//	type Point struct {
//		X, Y int32
//	}
//
//	//zvalue:derive
//	//zvalue:repr u8
//	type Color uint8
//
//	const (
//		Red   Color = 1
//		Green Color = 2
//	)
//
//	//zvalue:derive value
//	//zvalue:borrow buf
//	type View struct {
//		Name string
//	}
//
// "derive" may name the flavors to generate ("value", "owned"); both are
// generated by default. "repr" sets an enum's discriminant width. "borrow"
// lets decoded strings alias the source Value's buffer.
//
// Enum variants are the constants declared with the enum type and must use
// integer or rune literals.
//
// For every derived type the generated file holds ValueSignature and the
// Marshal/Unmarshal methods of each flavor. Fields of type-parameter or
// foreign types go through the derive package at run time.
package codegen
