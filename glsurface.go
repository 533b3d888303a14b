package main

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	blitVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec2 a_texcoord;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_texcoord;
    }` + "\x00"
	blitFragmentShader = `
    precision highp float;
    uniform sampler2D u_tex;
    varying vec2 v_texcoord;
    void main(void) {
      gl_FragColor = texture2D(u_tex, v_texcoord);
    }` + "\x00"
)

type BlitVertex struct {
	position [2]float32
	texcoord [2]float32
}

// unit quad, texcoord t=0 is the first (top) row of the bitmap
var blitQuad = []BlitVertex{
	{position: [2]float32{0, 0}, texcoord: [2]float32{0, 0}},
	{position: [2]float32{0, 1}, texcoord: [2]float32{0, 1}},
	{position: [2]float32{1, 1}, texcoord: [2]float32{1, 1}},
	{position: [2]float32{1, 1}, texcoord: [2]float32{1, 1}},
	{position: [2]float32{1, 0}, texcoord: [2]float32{1, 0}},
	{position: [2]float32{0, 0}, texcoord: [2]float32{0, 0}},
}

// GLSurface presents the core screen as one texture drawn over the
// framebuffer, scaled to fit while keeping its aspect ratio.
type GLSurface struct {
	tex         *Texture
	program     *Program
	a_position  int32
	a_texcoord  int32
	u_transform int32
	u_tex       int32
	size        Size
	fbSize      Size
}

func CreateGLSurface() (*GLSurface, error) {
	program, err := CreateProgram(blitVertexShader, blitFragmentShader)
	if err != nil {
		return nil, err
	}
	return &GLSurface{
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_texcoord:  program.GetAttribLocation("a_texcoord\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_tex:       program.GetUniformLocation("u_tex\x00"),
	}, nil
}

func (s *GLSurface) Resize(width, height int) error {
	tex, err := CreateTexture(width, height, gl.NEAREST)
	if err != nil {
		return err
	}
	if s.tex != nil {
		s.tex.Close()
	}
	s.tex = tex
	s.size = Size{X: width, Y: height}
	return nil
}

func (s *GLSurface) SetFramebufferSize(width, height int) {
	s.fbSize = Size{X: width, Y: height}
	gl.Viewport(0, 0, int32(width), int32(height))
}

// PresentedRect is where the screen lands in framebuffer pixels.
func (s *GLSurface) PresentedRect() Rect {
	return letterbox(s.size, s.fbSize)
}

func letterbox(content, frame Size) Rect {
	if content.X <= 0 || content.Y <= 0 || frame.X <= 0 || frame.Y <= 0 {
		return Rect{}
	}
	scale := min(float64(frame.X)/float64(content.X), float64(frame.Y)/float64(content.Y))
	w := int(float64(content.X) * scale)
	h := int(float64(content.Y) * scale)
	x := (frame.X - w) / 2
	y := (frame.Y - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

func (s *GLSurface) Blit(width, height int, pix []byte) {
	if s.tex == nil || width != s.size.X || height != s.size.Y {
		panic(fmt.Sprintf("GLSurface: blit of %dx%d onto %v surface", width, height, s.size))
	}
	if err := s.tex.Upload(pix); err != nil {
		panic(err)
	}
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	rect := s.PresentedRect()
	if rect.Empty() {
		return
	}
	s.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	s.tex.Bind()
	gl.Uniform1i(s.u_tex, 0)
	gl.EnableVertexAttribArray(uint32(s.a_position))
	gl.VertexAttribPointer(
		uint32(s.a_position), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(BlitVertex{})),
		gl.Ptr(&blitQuad[0].position[0]))
	gl.EnableVertexAttribArray(uint32(s.a_texcoord))
	gl.VertexAttribPointer(
		uint32(s.a_texcoord), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(BlitVertex{})),
		gl.Ptr(&blitQuad[0].texcoord[0]))
	ux := 2.0 / float32(s.fbSize.X)
	uy := 2.0 / float32(s.fbSize.Y)
	mScale := mgl.Scale3D(ux*float32(rect.Dx()), -uy*float32(rect.Dy()), 1)
	tx := -1.0 + ux*float32(rect.Min.X)
	ty := 1.0 - uy*float32(rect.Min.Y)
	mTranslate := mgl.Translate3D(tx, ty, 0)
	mTransform := mTranslate.Mul4(mScale)
	gl.UniformMatrix4fv(s.u_transform, 1, false, &mTransform[0])
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(blitQuad)))
	gl.DisableVertexAttribArray(uint32(s.a_position))
	gl.DisableVertexAttribArray(uint32(s.a_texcoord))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (s *GLSurface) Close() error {
	if s.tex != nil {
		s.tex.Close()
	}
	return s.program.Close()
}
