package mockimage

import (
	"bytes"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
)

// Config holds the drawing constants for the mock image. The values never
// change at runtime; a Config is handed to New once and copied.
type Config struct {
	CanvasSize         int
	ShapeSize          int
	CornerSquareSize   int
	CrosshairLength    int
	CrosshairThickness int
	FontPath           string
	FontSize           float64
	CaptionTopMargin   int
}

func DefaultConfig() Config {
	return Config{
		CanvasSize:         1000,
		ShapeSize:          25,
		CornerSquareSize:   10,
		CrosshairLength:    50,
		CrosshairThickness: 6,
		FontPath:           "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		FontSize:           200,
		CaptionTopMargin:   20,
	}
}

var palette = []color.Color{
	colornames.Red,
	colornames.Blue,
	colornames.Green,
	colornames.Black,
}

var shapeKinds = []string{"rectangle", "circle"}

// Generator synthesizes mock images for annotation. The random source is
// injected so tests can seed it; production uses an entropy-seeded one.
// A Generator is safe for concurrent use - each Generate call draws on its
// own canvas and the shared random source is guarded by a mutex.
type Generator struct {
	cfg      Config
	rnd      *rand.Rand
	mtx      sync.Mutex
	fontFace font.Face
	now      func() time.Time
}

func New(cfg Config, rnd *rand.Rand) *Generator {
	g := &Generator{
		cfg: cfg,
		rnd: rnd,
		now: time.Now,
	}

	//the caption font is loaded once here; if it isn't usable we silently
	//fall back to the context's built-in default face - font trouble must
	//never fail a request
	fontFace, err := gg.LoadFontFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		log.Debug("[Mock Image] Couldn't load font, using default face: ", err.Error())
	} else {
		g.fontFace = fontFace
	}

	return g
}

// intn draws from the shared random source. rand.Rand isn't goroutine-safe,
// so all draws go through the mutex.
func (g *Generator) intn(n int) int {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.rnd.Intn(n)
}

// Generate draws a fresh mock image and returns it PNG-encoded together with
// a newly minted image id. The id is not stored anywhere - correlating it
// with later annotation submissions is entirely up to the client.
func (g *Generator) Generate() ([]byte, string, error) {
	dc := gg.NewContext(g.cfg.CanvasSize, g.cfg.CanvasSize)
	dc.SetColor(colornames.White)
	dc.Clear()

	numShapes := g.intn(3) + 1
	log.Debug("[Mock Image] Drawing ", numShapes, " shapes")
	for i := 0; i < numShapes; i++ {
		g.drawRandomShape(dc)
	}

	g.drawCornerMarkers(dc)
	g.drawCrosshair(dc)
	g.drawCaption(dc)

	var buf bytes.Buffer
	err := dc.EncodePNG(&buf)
	if err != nil {
		log.Debug("[Mock Image] Couldn't encode image: ", err.Error())
		return nil, "", err
	}

	imageId := uuid.Must(uuid.NewV4()).String()
	return buf.Bytes(), imageId, nil
}

// drawRandomShape places one filled rectangle or circle at a uniform random
// position. The position is capped so the shape's bounding square always
// lies fully on the canvas; overlap with other shapes or the fixed markers
// is allowed.
func (g *Generator) drawRandomShape(dc *gg.Context) {
	x := float64(g.intn(g.cfg.CanvasSize - g.cfg.ShapeSize))
	y := float64(g.intn(g.cfg.CanvasSize - g.cfg.ShapeSize))
	size := float64(g.cfg.ShapeSize)

	dc.SetColor(palette[g.intn(len(palette))])

	shape := shapeKinds[g.intn(len(shapeKinds))]
	if shape == "rectangle" {
		dc.DrawRectangle(x, y, size, size)
	} else {
		//circle inscribed in the same bounding square
		dc.DrawCircle(x+size/2, y+size/2, size/2)
	}
	dc.Fill()
}

func (g *Generator) drawCornerMarkers(dc *gg.Context) {
	s := float64(g.cfg.CornerSquareSize)
	c := float64(g.cfg.CanvasSize)

	dc.SetColor(colornames.Black)
	dc.DrawRectangle(0, 0, s, s)     //top-left
	dc.DrawRectangle(c-s, 0, s, s)   //top-right
	dc.DrawRectangle(0, c-s, s, s)   //bottom-left
	dc.DrawRectangle(c-s, c-s, s, s) //bottom-right
	dc.Fill()
}

func (g *Generator) drawCrosshair(dc *gg.Context) {
	center := float64(g.cfg.CanvasSize) / 2
	l := float64(g.cfg.CrosshairLength)

	dc.SetColor(colornames.Red)
	dc.SetLineWidth(float64(g.cfg.CrosshairThickness))
	dc.DrawLine(center-l, center, center+l, center)
	dc.DrawLine(center, center-l, center, center+l)
	dc.Stroke()
}

// drawCaption renders the current UTC timestamp at the top center.
func (g *Generator) drawCaption(dc *gg.Context) {
	caption := g.now().UTC().Format("2006-01-02 15:04:05 UTC")

	dc.SetColor(colornames.Black)

	if g.fontFace == nil {
		//font fallback: the context's built-in face is static and safe to
		//share, no locking needed
		dc.DrawStringAnchored(caption, float64(g.cfg.CanvasSize)/2, float64(g.cfg.CaptionTopMargin), 0.5, 1.0)
		return
	}

	//the truetype face caches glyphs without locking, so captions on the
	//loaded face are serialized
	g.mtx.Lock()
	defer g.mtx.Unlock()
	dc.SetFontFace(g.fontFace)
	dc.DrawStringAnchored(caption, float64(g.cfg.CanvasSize)/2, float64(g.cfg.CaptionTopMargin), 0.5, 1.0)
}
