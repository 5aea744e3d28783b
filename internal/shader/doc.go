// Package shader implements shader and program objects on top of the glsl
// interpreter.
//
// A Shader scans its source for uniform, attribute and varying
// declarations, renames main to vs_main or fs_main and compiles the source
// with a generated export list: set_<name> for every input, get_<name> for
// every vertex output, plus get_gl_Position, get_gl_FragColor,
// set_gl_FragCoord and set_gl_FrontFacing. A Program links one shader of
// each stage, assigns attribute and uniform locations, and drives the
// linked unit during draws.
package shader
