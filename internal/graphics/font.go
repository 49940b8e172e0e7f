package graphics

import (
	"image"
	"image/draw"
	"math"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const ErrTypeFont = "graphics_font"

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas texture (top-left origin)
	AtlasX float32
	AtlasY float32
	// Glyph bitmap size in pixels
	Width  float32
	Height float32
	// Bearing (offset from baseline) in pixels
	BearingX float32
	BearingY float32
	// Advance in pixels
	Advance int
}

// FontAtlas holds the baked glyph bitmap and per-glyph metadata.
type FontAtlas struct {
	Image      *image.Alpha
	Characters map[rune]FontCharacter
	LineHeight int
}

// LoadFace opens the OpenType font at path. An empty path selects the
// built-in 7x13 bitmap face.
func LoadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading font failed").
			WithType(ErrTypeFont).
			WithTag("path", path).
			Wrap(err)
	}
	f, err := opentype.Parse(b)
	if err != nil {
		return nil, errors.New("parsing font failed").
			WithType(ErrTypeFont).
			WithTag("path", path).
			Wrap(err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.New("creating font face failed").
			WithType(ErrTypeFont).
			WithTag("path", path).
			Wrap(err)
	}
	return face, nil
}

// BakeFontAtlas renders the printable ASCII glyphs of face into a single
// alpha image, packing them in rows of at most atlasW pixels.
func BakeFontAtlas(face font.Face, atlasW int) (*FontAtlas, error) {
	const padding = 1

	characters := make(map[rune]FontCharacter)
	type placed struct {
		rect image.Rectangle
		mask image.Image
		mp   image.Point
	}
	var glyphs []placed

	offsetX, offsetY, rowHeight := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		fc := FontCharacter{
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  int(math.Round(float64(advance) / 64.0)),
		}
		gw, gh := dr.Dx(), dr.Dy()
		if mask == nil || gw == 0 || gh == 0 {
			characters[r] = fc
			continue
		}
		if gw > atlasW {
			return nil, errors.New("glyph wider than atlas").
				WithType(ErrTypeFont).
				WithTag("rune", string(r)).
				WithTag("atlas_width", atlasW)
		}

		if offsetX+gw > atlasW {
			offsetX = 0
			offsetY += rowHeight + padding
			rowHeight = 0
		}
		fc.AtlasX, fc.AtlasY = float32(offsetX), float32(offsetY)
		fc.Width, fc.Height = float32(gw), float32(gh)
		characters[r] = fc
		glyphs = append(glyphs, placed{
			rect: image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh),
			mask: mask,
			mp:   maskp,
		})

		offsetX += gw + padding
		rowHeight = max(rowHeight, gh)
	}
	if len(characters) == 0 {
		return nil, errors.New("font has no printable glyphs").WithType(ErrTypeFont)
	}

	atlasH := 1
	for atlasH < offsetY+rowHeight {
		atlasH <<= 1
	}
	img := image.NewAlpha(image.Rect(0, 0, atlasW, atlasH))
	for _, g := range glyphs {
		draw.Draw(img, g.rect, g.mask, g.mp, draw.Src)
	}

	return &FontAtlas{
		Image:      img,
		Characters: characters,
		LineHeight: face.Metrics().Height.Ceil(),
	}, nil
}

// Measure returns the width and height in pixels text occupies at scale.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			fc = a.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		height = max(height, fc.Height*scale)
	}
	return width, height
}

// AppendQuads appends two triangles per glyph of text to dst. Each vertex is
// x, y, u, v with (x, y) the pen position on the baseline in pixels.
func (a *FontAtlas) AppendQuads(dst []float32, text string, x, y, scale float32) []float32 {
	w := float32(a.Image.Bounds().Dx())
	h := float32(a.Image.Bounds().Dy())

	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 {
			xPos := x + fc.BearingX*scale
			yPos := y - fc.BearingY*scale
			qw := fc.Width * scale
			qh := fc.Height * scale

			u0, v0 := fc.AtlasX/w, fc.AtlasY/h
			u1, v1 := (fc.AtlasX+fc.Width)/w, (fc.AtlasY+fc.Height)/h

			dst = append(dst,
				xPos, yPos+qh, u0, v1,
				xPos, yPos, u0, v0,
				xPos+qw, yPos, u1, v0,

				xPos, yPos+qh, u0, v1,
				xPos+qw, yPos, u1, v0,
				xPos+qw, yPos+qh, u1, v1,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return dst
}

// FontRenderer draws text using an atlas uploaded to the GPU.
type FontRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	texture    uint32
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
	scratch    []float32
}

// NewFontRenderer uploads atlas and compiles the text shader.
func NewFontRenderer(atlas *FontAtlas, width, height int) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, errors.New("invalid font atlas").WithType(ErrTypeFont)
	}
	shader, err := LoadShader("font")
	if err != nil {
		return nil, err
	}

	fr := &FontRenderer{
		atlas:  atlas,
		shader: shader,
	}
	fr.SetViewport(width, height)
	fr.initGL()
	return fr, nil
}

func (fr *FontRenderer) initGL() {
	b := fr.atlas.Image.Bounds()

	gl.GenTextures(1, &fr.texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(fr.atlas.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 256*6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// SetViewport maps text coordinates to window pixels, origin top-left.
func (fr *FontRenderer) SetViewport(width, height int) {
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// Atlas returns the glyph atlas.
func (fr *FontRenderer) Atlas() *FontAtlas {
	return fr.atlas
}

// Render draws text with its baseline at (x, y).
func (fr *FontRenderer) Render(text string, x, y, scale float32, color mgl32.Vec3) {
	fr.RenderLines([]string{text}, x, y, 0, scale, color)
}

// RenderLines draws multiple lines of text in a single pass. Each line is
// lineStep pixels below the previous one.
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	verts := fr.scratch[:0]
	y := yStart
	for _, line := range lines {
		verts = fr.atlas.AppendQuads(verts, line, x, y, scale)
		y += lineStep
	}
	fr.scratch = verts
	if len(verts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", &fr.projection[0])
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.texture)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// orphan the buffer to avoid stalls on dynamic updates
	size := len(verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Dispose releases the GPU resources.
func (fr *FontRenderer) Dispose() {
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	if fr.texture != 0 {
		gl.DeleteTextures(1, &fr.texture)
	}
	fr.shader.Delete()
}
