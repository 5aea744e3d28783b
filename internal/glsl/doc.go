// Package glsl compiles a GLSL ES 1.00 subset into callable units.
//
// Source is preprocessed, parsed into an AST and type-checked, then every
// expression and statement is turned into a Go closure. The result is an
// immutable Module; Instantiate gives a Unit with its own variable storage
// whose exported setters, getters and entry points are looked up by name:
//
//	mod, err := glsl.Compile(src, glsl.Options{
//		Stage: gputypes.ShaderStageVertex,
//		Exports: []glsl.Export{
//			{Name: "set_aPos", Kind: glsl.ExportSetter, Symbol: "aPos"},
//			{Name: "get_gl_Position", Kind: glsl.ExportGetter, Symbol: "gl_Position"},
//			{Name: "vs_main", Kind: glsl.ExportEntry, Symbol: "vs_main"},
//		},
//	})
//	u := mod.Instantiate()
//	set, _ := u.Setter("set_aPos")
//	set([]float32{0, 0, 0, 1})
//	run, _ := u.Entry("vs_main")
//	run()
//
// Recursion is rejected at compile time as GLSL ES requires, which lets
// every variable, parameter and local live at a fixed offset in one flat
// []float32 per Unit. Integers and booleans are stored as float32.
//
// Supported: scalar, vector and square matrix types, sampler2D, constant
// sized arrays, user functions with in/out/inout parameters, the usual
// control flow including discard, swizzles (also as assignment targets),
// constructors, and the ES 1.00 built-in function library. Structs are not
// supported.
package glsl
