package object

// Kind discriminates the object variants stored in a Table.
type Kind uint8

const (
	// KindNone is the zero Kind; no live object has it.
	KindNone Kind = iota
	// KindBuffer is a vertex or index buffer.
	KindBuffer
	// KindTexture2D is a two-dimensional texture.
	KindTexture2D
	// KindRenderbuffer is off-screen attachment storage.
	KindRenderbuffer
	// KindFramebuffer is a set of attachments used as a render target.
	KindFramebuffer
	// KindShader is a single vertex or fragment shader.
	KindShader
	// KindProgram is a linked vertex+fragment program.
	KindProgram
)

var kindNames = [...]string{
	KindNone:         "none",
	KindBuffer:       "buffer",
	KindTexture2D:    "texture2d",
	KindRenderbuffer: "renderbuffer",
	KindFramebuffer:  "framebuffer",
	KindShader:       "shader",
	KindProgram:      "program",
}

// String returns the lower-case variant name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Object is implemented by every value stored in a Table.
type Object interface {
	ID() uint32
	Kind() Kind
}
