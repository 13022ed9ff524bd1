// Package buf implements the text-buffer layer: per-line column indexing
// (display-width prefix sums), buffer-local options, and the rope
// collaborator contract the display engine is built on top of.
package buf

import "github.com/rsvim/rsvim-go/reactive"

// FileFormat selects end-of-line rendering and the display width of a
// bare carriage return.
type FileFormat int

const (
	Unix FileFormat = iota // "\n"
	Dos                    // "\r\n"
	Mac                    // "\r"
)

// AmbiWidthPolicy controls how East-Asian "ambiguous width" runes are
// measured. Most terminals treat them as narrow; some CJK locales widen
// them to 2 cells.
type AmbiWidthPolicy int

const (
	AmbiWidthNarrow AmbiWidthPolicy = iota
	AmbiWidthWide
)

// TextOptions are buffer-local display options. They are backed by
// reactive.Signal so that writes automatically run every callback
// registered through OnInvalidate (Buffer registers one that drops its
// ColumnIndex caches), instead of requiring every call site to remember
// to truncate caches by hand.
type TextOptions struct {
	tabStop    *reactive.Signal[int]
	fileFormat *reactive.Signal[FileFormat]
	ambiWidth  *reactive.Signal[AmbiWidthPolicy]
}

// NewTextOptions creates buffer-local options with Vim-compatible
// defaults: tab-stop 8, unix file format, narrow ambiguous width.
func NewTextOptions() *TextOptions {
	return &TextOptions{
		tabStop:    reactive.New(8),
		fileFormat: reactive.New(Unix),
		ambiWidth:  reactive.New(AmbiWidthNarrow),
	}
}

func (o *TextOptions) TabStop() int                { return o.tabStop.Get() }
func (o *TextOptions) FileFormat() FileFormat       { return o.fileFormat.Get() }
func (o *TextOptions) AmbiWidth() AmbiWidthPolicy    { return o.ambiWidth.Get() }

// SetTabStop updates the tab stop width (values below 1 become 1). Every
// callback registered via OnInvalidate runs when the value changes.
func (o *TextOptions) SetTabStop(n int) {
	if n < 1 {
		n = 1
	}
	o.tabStop.Set(n)
}

func (o *TextOptions) SetFileFormat(f FileFormat) { o.fileFormat.Set(f) }
func (o *TextOptions) SetAmbiWidth(p AmbiWidthPolicy) { o.ambiWidth.Set(p) }

// OnInvalidate registers fn to run whenever any option that affects
// display width changes (tab stop, file format, ambiguous width).
func (o *TextOptions) OnInvalidate(fn func()) {
	reactive.NewEffect(func() {
		o.tabStop.Get()
		o.fileFormat.Get()
		o.ambiWidth.Get()
		fn()
	})
}
