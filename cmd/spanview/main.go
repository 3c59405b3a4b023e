// Package main is the entry point for spanview, a terminal viewer for
// propertized text. It renders a buffer's spans with their faces and
// colors, hiding invisible text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"

	"github.com/dshills/textspan/internal/engine/buffer"
	"github.com/dshills/textspan/internal/engine/textprop"
	"github.com/dshills/textspan/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var inPath, scriptPath, luaPath, logPath string
	var showVersion bool

	flag.StringVar(&inPath, "in", "", "Text file to view (default stdin)")
	flag.StringVar(&scriptPath, "script", "", "JSON script decorating the text")
	flag.StringVar(&luaPath, "lua", "", "Lua script decorating the text")
	flag.StringVar(&logPath, "log", "", "Log file (default none)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "spanview - propertized text viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spanview [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: q or Escape quits.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("spanview %s (%s, %s)\n", version, commit, date)
		return 0
	}

	log := newLogger(logPath)

	text, err := readInput(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read input: %v\n", err)
		return 1
	}
	buf := buffer.NewFromString(text)

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read script: %v\n", err)
			return 1
		}
		if err := script.Apply(buf, data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: apply script: %v\n", err)
			return 1
		}
	}
	if luaPath != "" {
		e := script.NewLuaEngine(buf)
		if err := e.RunFile(luaPath); err != nil {
			e.Close()
			fmt.Fprintf(os.Stderr, "Error: run lua script: %v\n", err)
			return 1
		}
		e.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	log.Info().
		Int64("length", buf.Len()).
		Int("spans", len(buf.Spans())).
		Msg("viewer started")

	v := &viewer{screen: screen, buf: buf, log: log}
	v.render()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				log.Info().Msg("viewer quit")
				return 0
			}
		case *tcell.EventResize:
			screen.Sync()
			v.render()
		}
	}
}

type viewer struct {
	screen tcell.Screen
	buf    *buffer.Buffer
	log    zerolog.Logger
}

// render draws every visible span, advancing by grapheme cluster width so
// wide characters occupy their real columns.
func (v *viewer) render() {
	v.screen.Clear()
	width, height := v.screen.Size()

	x, y := 0, 0
	for _, s := range v.buf.Spans() {
		if hidden(s.Props) {
			continue
		}
		style := styleFor(s.Props, v.log)
		seg, err := v.buf.Slice(buffer.NewRange(s.Start, s.End))
		if err != nil {
			v.log.Error().Err(err).Msg("slice span")
			continue
		}

		g := uniseg.NewGraphemes(seg)
		for g.Next() {
			cluster := g.Str()
			if strings.ContainsRune(cluster, '\n') {
				x, y = 0, y+1
				if y >= height {
					break
				}
				continue
			}
			w := g.Width()
			if x+w > width {
				x, y = 0, y+1
				if y >= height {
					break
				}
			}
			runes := g.Runes()
			v.screen.SetContent(x, y, runes[0], runes[1:], style)
			x += w
		}
		if y >= height {
			break
		}
	}
	v.screen.Show()
}

// hidden reports whether a span carries a truthy "invisible" property.
func hidden(p textprop.Props) bool {
	v := p[textprop.KeyInvisible]
	return v != nil && v != false
}

// styleFor maps a property record onto a terminal style. The "color" and
// "background" properties hold hex colors; "face" names an attribute.
func styleFor(p textprop.Props, log zerolog.Logger) tcell.Style {
	style := tcell.StyleDefault

	if hex, ok := p["color"].(string); ok {
		if c, err := colorful.Hex(hex); err == nil {
			r, g, b := c.RGB255()
			style = style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		} else {
			log.Warn().Str("color", hex).Msg("bad color property")
		}
	}
	if hex, ok := p["background"].(string); ok {
		if c, err := colorful.Hex(hex); err == nil {
			r, g, b := c.RGB255()
			style = style.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		} else {
			log.Warn().Str("background", hex).Msg("bad background property")
		}
	}

	switch p["face"] {
	case "bold":
		style = style.Bold(true)
	case "dim":
		style = style.Dim(true)
	case "italic":
		style = style.Italic(true)
	case "underline":
		style = style.Underline(true)
	case "reverse":
		style = style.Reverse(true)
	}
	if v := p[textprop.KeyReadOnly]; v != nil && v != false {
		style = style.Dim(true)
	}

	return style
}

func newLogger(path string) zerolog.Logger {
	var out io.Writer = io.Discard
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		} else {
			fmt.Fprintf(os.Stderr, "Warning: open log file: %v\n", err)
		}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
