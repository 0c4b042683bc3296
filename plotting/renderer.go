// Package plotting は gonum/plot で診断用の図を組み立て、Renderer に渡す。
//
// 図の出力は副作用なので Renderer インターフェースの背後に置く。
// 既定の Discard は何もしない。FileRenderer はディレクトリに画像を書き出す。
package plotting

import (
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

// 図の名前
const (
	NameQQ         = "qq"
	NameFittedLine = "fitted_line"
	NameROC        = "roc"
)

// Renderer は組み立て済みの図を出力する
type Renderer interface {
	Render(name string, p *plot.Plot) error
}

// RendererFunc は関数を Renderer として使うためのアダプタ
type RendererFunc func(name string, p *plot.Plot) error

// Render は f(name, p) を呼ぶ
func (f RendererFunc) Render(name string, p *plot.Plot) error {
	return f(name, p)
}

type discard struct{}

func (discard) Render(string, *plot.Plot) error { return nil }

// Discard は図を捨てる Renderer
var Discard Renderer = discard{}

// FileRenderer は Dir/<name>.<Format> に図を保存する。
// Format は gonum/plot が対応する拡張子（png, svg, pdf, ...）
type FileRenderer struct {
	Dir    string
	Format string
	Width  vg.Length
	Height vg.Length
}

// NewFileRenderer は 6x4 インチの png を書き出す FileRenderer を返す
func NewFileRenderer(dir string) *FileRenderer {
	return &FileRenderer{Dir: dir, Format: "png", Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

// Render は図をファイルに保存する
func (r *FileRenderer) Render(name string, p *plot.Plot) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "create plot directory %s", r.Dir)
	}
	format := r.Format
	if format == "" {
		format = "png"
	}
	w, h := r.Width, r.Height
	if w == 0 || h == 0 {
		w, h = 6*vg.Inch, 4*vg.Inch
	}
	path := filepath.Join(r.Dir, name+"."+format)
	if err := p.Save(w, h, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

// Recorder は受け取った図を記録する Renderer
type Recorder struct {
	mu    sync.Mutex
	Names []string
	Plots []*plot.Plot
}

// Render は図を記録する
func (r *Recorder) Render(name string, p *plot.Plot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Names = append(r.Names, name)
	r.Plots = append(r.Plots, p)
	return nil
}

// Last は name で最後に記録された図を返す
func (r *Recorder) Last(name string) (*plot.Plot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Names) - 1; i >= 0; i-- {
		if r.Names[i] == name {
			return r.Plots[i], true
		}
	}
	return nil, false
}
