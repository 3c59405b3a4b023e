// Package script drives buffers from outside the engine: Lua scripts for
// programmatic decoration and JSON scripts for batch edits and dumps.
//
// The Lua side registers a "span" module into a fresh state:
//
//	e := script.NewLuaEngine(buf)
//	defer e.Close()
//	err := e.Run(`span.set_props(1, 6, {face = "bold"})`)
//
// The JSON side applies ordered edit scripts and renders a buffer's text
// and property runs:
//
//	err := script.Apply(buf, data)
//	out, err := script.Dump(buf)
//
// Positions in both surfaces are the buffer's own 1-based positions.
package script
