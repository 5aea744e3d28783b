package softgl

// Enum is a GL enumerant or bitfield value.
//
// Names follow the C API without the GL_ prefix, as golang.org/x/mobile/gl
// does.
type Enum uint32

// Boolean values.
const (
	FALSE Enum = 0
	TRUE  Enum = 1
	NONE  Enum = 0
)

// Errors.
const (
	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506
)

// Clear mask bits.
const (
	DEPTH_BUFFER_BIT   Enum = 0x00000100
	STENCIL_BUFFER_BIT Enum = 0x00000400
	COLOR_BUFFER_BIT   Enum = 0x00004000
)

// Primitive modes. Only TRIANGLES is rasterized.
const (
	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_LOOP      Enum = 0x0002
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006
)

// Blend factors and equations.
const (
	ZERO                     Enum = 0
	ONE                      Enum = 1
	SRC_COLOR                Enum = 0x0300
	ONE_MINUS_SRC_COLOR      Enum = 0x0301
	SRC_ALPHA                Enum = 0x0302
	ONE_MINUS_SRC_ALPHA      Enum = 0x0303
	DST_ALPHA                Enum = 0x0304
	ONE_MINUS_DST_ALPHA      Enum = 0x0305
	DST_COLOR                Enum = 0x0306
	ONE_MINUS_DST_COLOR      Enum = 0x0307
	SRC_ALPHA_SATURATE       Enum = 0x0308
	CONSTANT_COLOR           Enum = 0x8001
	ONE_MINUS_CONSTANT_COLOR Enum = 0x8002
	CONSTANT_ALPHA           Enum = 0x8003
	ONE_MINUS_CONSTANT_ALPHA Enum = 0x8004
	BLEND_COLOR              Enum = 0x8005
	FUNC_ADD                 Enum = 0x8006
	MIN                      Enum = 0x8007
	MAX                      Enum = 0x8008
	BLEND_EQUATION           Enum = 0x8009
	BLEND_EQUATION_RGB       Enum = 0x8009
	FUNC_SUBTRACT            Enum = 0x800A
	FUNC_REVERSE_SUBTRACT    Enum = 0x800B
	BLEND_DST_RGB            Enum = 0x80C8
	BLEND_SRC_RGB            Enum = 0x80C9
	BLEND_DST_ALPHA          Enum = 0x80CA
	BLEND_SRC_ALPHA          Enum = 0x80CB
	BLEND_EQUATION_ALPHA     Enum = 0x883D
)

// Buffer objects.
const (
	ARRAY_BUFFER                 Enum = 0x8892
	ELEMENT_ARRAY_BUFFER         Enum = 0x8893
	ARRAY_BUFFER_BINDING         Enum = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING Enum = 0x8895
	STREAM_DRAW                  Enum = 0x88E0
	STATIC_DRAW                  Enum = 0x88E4
	DYNAMIC_DRAW                 Enum = 0x88E8
	BUFFER_SIZE                  Enum = 0x8764
	BUFFER_USAGE                 Enum = 0x8765
	CURRENT_VERTEX_ATTRIB        Enum = 0x8626
)

// Faces and winding.
const (
	FRONT          Enum = 0x0404
	BACK           Enum = 0x0405
	FRONT_AND_BACK Enum = 0x0408
	CW             Enum = 0x0900
	CCW            Enum = 0x0901
)

// Capabilities.
const (
	TEXTURE_2D               Enum = 0x0DE1
	CULL_FACE                Enum = 0x0B44
	BLEND                    Enum = 0x0BE2
	DITHER                   Enum = 0x0BD0
	STENCIL_TEST             Enum = 0x0B90
	DEPTH_TEST               Enum = 0x0B71
	SCISSOR_TEST             Enum = 0x0C11
	POLYGON_OFFSET_FILL      Enum = 0x8037
	SAMPLE_ALPHA_TO_COVERAGE Enum = 0x809E
	SAMPLE_COVERAGE          Enum = 0x80A0
)

// State queries.
const (
	LINE_WIDTH                       Enum = 0x0B21
	CULL_FACE_MODE                   Enum = 0x0B45
	FRONT_FACE                       Enum = 0x0B46
	DEPTH_RANGE                      Enum = 0x0B70
	DEPTH_WRITEMASK                  Enum = 0x0B72
	DEPTH_CLEAR_VALUE                Enum = 0x0B73
	DEPTH_FUNC                       Enum = 0x0B74
	STENCIL_CLEAR_VALUE              Enum = 0x0B91
	STENCIL_FUNC                     Enum = 0x0B92
	STENCIL_VALUE_MASK               Enum = 0x0B93
	STENCIL_FAIL                     Enum = 0x0B94
	STENCIL_PASS_DEPTH_FAIL          Enum = 0x0B95
	STENCIL_PASS_DEPTH_PASS          Enum = 0x0B96
	STENCIL_REF                      Enum = 0x0B97
	STENCIL_WRITEMASK                Enum = 0x0B98
	STENCIL_BACK_FUNC                Enum = 0x8800
	STENCIL_BACK_FAIL                Enum = 0x8801
	STENCIL_BACK_PASS_DEPTH_FAIL     Enum = 0x8802
	STENCIL_BACK_PASS_DEPTH_PASS     Enum = 0x8803
	STENCIL_BACK_REF                 Enum = 0x8CA3
	STENCIL_BACK_VALUE_MASK          Enum = 0x8CA4
	STENCIL_BACK_WRITEMASK           Enum = 0x8CA5
	VIEWPORT                         Enum = 0x0BA2
	SCISSOR_BOX                      Enum = 0x0C10
	COLOR_CLEAR_VALUE                Enum = 0x0C22
	COLOR_WRITEMASK                  Enum = 0x0C23
	UNPACK_ALIGNMENT                 Enum = 0x0CF5
	PACK_ALIGNMENT                   Enum = 0x0D05
	MAX_TEXTURE_SIZE                 Enum = 0x0D33
	MAX_VIEWPORT_DIMS                Enum = 0x0D3A
	SUBPIXEL_BITS                    Enum = 0x0D50
	RED_BITS                         Enum = 0x0D52
	GREEN_BITS                       Enum = 0x0D53
	BLUE_BITS                        Enum = 0x0D54
	ALPHA_BITS                       Enum = 0x0D55
	DEPTH_BITS                       Enum = 0x0D56
	STENCIL_BITS                     Enum = 0x0D57
	TEXTURE_BINDING_2D               Enum = 0x8069
	ACTIVE_TEXTURE                   Enum = 0x84E0
	MAX_RENDERBUFFER_SIZE            Enum = 0x84E8
	MAX_VERTEX_ATTRIBS               Enum = 0x8869
	MAX_TEXTURE_IMAGE_UNITS          Enum = 0x8872
	MAX_VERTEX_TEXTURE_IMAGE_UNITS   Enum = 0x8B4C
	MAX_COMBINED_TEXTURE_IMAGE_UNITS Enum = 0x8B4D
	CURRENT_PROGRAM                  Enum = 0x8B8D
	IMPLEMENTATION_COLOR_READ_TYPE   Enum = 0x8B9A
	IMPLEMENTATION_COLOR_READ_FORMAT Enum = 0x8B9B
	FRAMEBUFFER_BINDING              Enum = 0x8CA6
	RENDERBUFFER_BINDING             Enum = 0x8CA7
	MAX_VERTEX_UNIFORM_VECTORS       Enum = 0x8DFB
	MAX_VARYING_VECTORS              Enum = 0x8DFC
	MAX_FRAGMENT_UNIFORM_VECTORS     Enum = 0x8DFD
)

// Data types.
const (
	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
	FIXED          Enum = 0x140C
)

// Pixel formats.
const (
	DEPTH_COMPONENT Enum = 0x1902
	ALPHA           Enum = 0x1906
	RGB             Enum = 0x1907
	RGBA            Enum = 0x1908
	LUMINANCE       Enum = 0x1909
	LUMINANCE_ALPHA Enum = 0x190A
)

// Shaders and programs.
const (
	FRAGMENT_SHADER             Enum = 0x8B30
	VERTEX_SHADER               Enum = 0x8B31
	SHADER_TYPE                 Enum = 0x8B4F
	DELETE_STATUS               Enum = 0x8B80
	COMPILE_STATUS              Enum = 0x8B81
	LINK_STATUS                 Enum = 0x8B82
	VALIDATE_STATUS             Enum = 0x8B83
	INFO_LOG_LENGTH             Enum = 0x8B84
	ATTACHED_SHADERS            Enum = 0x8B85
	ACTIVE_UNIFORMS             Enum = 0x8B86
	ACTIVE_UNIFORM_MAX_LENGTH   Enum = 0x8B87
	SHADER_SOURCE_LENGTH        Enum = 0x8B88
	ACTIVE_ATTRIBUTES           Enum = 0x8B89
	ACTIVE_ATTRIBUTE_MAX_LENGTH Enum = 0x8B8A
	SHADING_LANGUAGE_VERSION    Enum = 0x8B8C
	SHADER_COMPILER             Enum = 0x8DFA
)

// Comparison functions.
const (
	NEVER    Enum = 0x0200
	LESS     Enum = 0x0201
	EQUAL    Enum = 0x0202
	LEQUAL   Enum = 0x0203
	GREATER  Enum = 0x0204
	NOTEQUAL Enum = 0x0205
	GEQUAL   Enum = 0x0206
	ALWAYS   Enum = 0x0207
)

// Stencil operations.
const (
	KEEP      Enum = 0x1E00
	REPLACE   Enum = 0x1E01
	INCR      Enum = 0x1E02
	DECR      Enum = 0x1E03
	INVERT    Enum = 0x150A
	INCR_WRAP Enum = 0x8507
	DECR_WRAP Enum = 0x8508
)

// Strings.
const (
	VENDOR     Enum = 0x1F00
	RENDERER   Enum = 0x1F01
	VERSION    Enum = 0x1F02
	EXTENSIONS Enum = 0x1F03
)

// Textures.
const (
	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_NEAREST  Enum = 0x2701
	NEAREST_MIPMAP_LINEAR  Enum = 0x2702
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703
	TEXTURE                Enum = 0x1702
	TEXTURE_MAG_FILTER     Enum = 0x2800
	TEXTURE_MIN_FILTER     Enum = 0x2801
	TEXTURE_WRAP_S         Enum = 0x2802
	TEXTURE_WRAP_T         Enum = 0x2803
	REPEAT                 Enum = 0x2901
	CLAMP_TO_EDGE          Enum = 0x812F
	MIRRORED_REPEAT        Enum = 0x8370
	TEXTURE0               Enum = 0x84C0
)

// Uniform and attribute types.
const (
	FLOAT_VEC2   Enum = 0x8B50
	FLOAT_VEC3   Enum = 0x8B51
	FLOAT_VEC4   Enum = 0x8B52
	INT_VEC2     Enum = 0x8B53
	INT_VEC3     Enum = 0x8B54
	INT_VEC4     Enum = 0x8B55
	BOOL         Enum = 0x8B56
	BOOL_VEC2    Enum = 0x8B57
	BOOL_VEC3    Enum = 0x8B58
	BOOL_VEC4    Enum = 0x8B59
	FLOAT_MAT2   Enum = 0x8B5A
	FLOAT_MAT3   Enum = 0x8B5B
	FLOAT_MAT4   Enum = 0x8B5C
	SAMPLER_2D   Enum = 0x8B5E
	SAMPLER_CUBE Enum = 0x8B60
)

// Vertex arrays.
const (
	VERTEX_ATTRIB_ARRAY_ENABLED        Enum = 0x8622
	VERTEX_ATTRIB_ARRAY_SIZE           Enum = 0x8623
	VERTEX_ATTRIB_ARRAY_STRIDE         Enum = 0x8624
	VERTEX_ATTRIB_ARRAY_TYPE           Enum = 0x8625
	VERTEX_ATTRIB_ARRAY_POINTER        Enum = 0x8645
	VERTEX_ATTRIB_ARRAY_NORMALIZED     Enum = 0x886A
	VERTEX_ATTRIB_ARRAY_BUFFER_BINDING Enum = 0x889F
)

// Framebuffers and renderbuffers.
const (
	FRAMEBUFFER                                  Enum = 0x8D40
	RENDERBUFFER                                 Enum = 0x8D41
	RGBA4                                        Enum = 0x8056
	RGB5_A1                                      Enum = 0x8057
	RGBA8_OES                                    Enum = 0x8058
	RGB565                                       Enum = 0x8D62
	DEPTH_COMPONENT16                            Enum = 0x81A5
	DEPTH_COMPONENT32_OES                        Enum = 0x81A7
	STENCIL_INDEX8                               Enum = 0x8D48
	RENDERBUFFER_WIDTH                           Enum = 0x8D42
	RENDERBUFFER_HEIGHT                          Enum = 0x8D43
	RENDERBUFFER_INTERNAL_FORMAT                 Enum = 0x8D44
	RENDERBUFFER_RED_SIZE                        Enum = 0x8D50
	RENDERBUFFER_GREEN_SIZE                      Enum = 0x8D51
	RENDERBUFFER_BLUE_SIZE                       Enum = 0x8D52
	RENDERBUFFER_ALPHA_SIZE                      Enum = 0x8D53
	RENDERBUFFER_DEPTH_SIZE                      Enum = 0x8D54
	RENDERBUFFER_STENCIL_SIZE                    Enum = 0x8D55
	FRAMEBUFFER_ATTACHMENT_OBJECT_TYPE           Enum = 0x8CD0
	FRAMEBUFFER_ATTACHMENT_OBJECT_NAME           Enum = 0x8CD1
	FRAMEBUFFER_ATTACHMENT_TEXTURE_LEVEL         Enum = 0x8CD2
	FRAMEBUFFER_ATTACHMENT_TEXTURE_CUBE_MAP_FACE Enum = 0x8CD3
	COLOR_ATTACHMENT0                            Enum = 0x8CE0
	DEPTH_ATTACHMENT                             Enum = 0x8D00
	STENCIL_ATTACHMENT                           Enum = 0x8D20
	FRAMEBUFFER_COMPLETE                         Enum = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT            Enum = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT    Enum = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DIMENSIONS            Enum = 0x8CD9
	FRAMEBUFFER_UNSUPPORTED                      Enum = 0x8CDD
)
