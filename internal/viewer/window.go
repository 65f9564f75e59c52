package viewer

// Key identifies an input key the viewer reacts to.
type Key int

const (
	KeyEscape Key = iota
	KeyW
	KeyS
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyP
)

// Keys lists every key the viewer polls.
var Keys = []Key{KeyEscape, KeyW, KeyS, KeyLeft, KeyRight, KeyUp, KeyDown, KeyP}

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyW:
		return "W"
	case KeyS:
		return "S"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyP:
		return "P"
	}
	return "unknown"
}

// Window is the presentation surface and input source. All methods are
// called from the goroutine running Viewer.Run.
type Window interface {
	IsOpen() bool
	IsKeyDown(k Key) bool
	// UpdateWithBuffer presents packed 0x00RRGGBB pixels, row-major from
	// the top-left, and pumps pending input events.
	UpdateWithBuffer(pixels []uint32, width, height int) error
}

// Logger receives frame statistics and snapshot notices.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
