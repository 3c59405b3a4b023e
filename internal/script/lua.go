package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textspan/internal/engine/buffer"
	"github.com/dshills/textspan/internal/engine/textprop"
)

// LuaEngine runs Lua scripts against a buffer through the "span" module.
// One engine drives one buffer; the Lua state is not safe for concurrent
// use.
type LuaEngine struct {
	buf *buffer.Buffer
	L   *lua.LState
}

// NewLuaEngine creates an engine bound to buf and registers the span
// module into a fresh Lua state.
func NewLuaEngine(buf *buffer.Buffer) *LuaEngine {
	e := &LuaEngine{buf: buf, L: lua.NewState()}
	e.register()
	return e
}

// Close releases the Lua state.
func (e *LuaEngine) Close() {
	e.L.Close()
}

// Run executes a Lua script.
func (e *LuaEngine) Run(source string) error {
	return e.L.DoString(source)
}

// RunFile executes a Lua script from a file.
func (e *LuaEngine) RunFile(path string) error {
	return e.L.DoFile(path)
}

// register installs the span module.
func (e *LuaEngine) register() {
	mod := e.L.NewTable()

	e.L.SetField(mod, "text", e.L.NewFunction(e.text))
	e.L.SetField(mod, "len", e.L.NewFunction(e.bufLen))
	e.L.SetField(mod, "slice", e.L.NewFunction(e.slice))
	e.L.SetField(mod, "insert", e.L.NewFunction(e.insert))
	e.L.SetField(mod, "delete", e.L.NewFunction(e.delete))
	e.L.SetField(mod, "set_props", e.L.NewFunction(e.setProps))
	e.L.SetField(mod, "add_props", e.L.NewFunction(e.addProps))
	e.L.SetField(mod, "remove_props", e.L.NewFunction(e.removeProps))
	e.L.SetField(mod, "props_at", e.L.NewFunction(e.propsAt))
	e.L.SetField(mod, "next_change", e.L.NewFunction(e.nextChange))
	e.L.SetField(mod, "spans", e.L.NewFunction(e.spans))

	e.L.SetGlobal("span", mod)
}

// text() -> string
// Returns the full buffer text.
func (e *LuaEngine) text(L *lua.LState) int {
	L.Push(lua.LString(e.buf.Text()))
	return 1
}

// len() -> number
// Returns the buffer length in units.
func (e *LuaEngine) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(e.buf.Len()))
	return 1
}

// slice(start, stop) -> string
// Returns the text of [start, stop).
func (e *LuaEngine) slice(L *lua.LState) int {
	start := L.CheckInt64(1)
	stop := L.CheckInt64(2)

	s, err := e.buf.Slice(buffer.NewRange(start, stop))
	if err != nil {
		L.RaiseError("slice: %v", err)
		return 0
	}
	L.Push(lua.LString(s))
	return 1
}

// insert(pos, text)
// Inserts text at pos.
func (e *LuaEngine) insert(L *lua.LState) int {
	pos := L.CheckInt64(1)
	text := L.CheckString(2)

	if err := e.buf.Insert(pos, text); err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}
	return 0
}

// delete(start, stop)
// Removes the text of [start, stop).
func (e *LuaEngine) delete(L *lua.LState) int {
	start := L.CheckInt64(1)
	stop := L.CheckInt64(2)

	if err := e.buf.Delete(buffer.NewRange(start, stop)); err != nil {
		L.RaiseError("delete: %v", err)
		return 0
	}
	return 0
}

// set_props(start, stop, props)
// Overwrites the properties of [start, stop).
func (e *LuaEngine) setProps(L *lua.LState) int {
	start := L.CheckInt64(1)
	stop := L.CheckInt64(2)
	tbl := L.CheckTable(3)

	if err := e.buf.SetProperties(buffer.NewRange(start, stop), propsFromTable(tbl)); err != nil {
		L.RaiseError("set_props: %v", err)
		return 0
	}
	return 0
}

// add_props(start, stop, props)
// Merges props into the properties of [start, stop).
func (e *LuaEngine) addProps(L *lua.LState) int {
	start := L.CheckInt64(1)
	stop := L.CheckInt64(2)
	tbl := L.CheckTable(3)

	if err := e.buf.AddProperties(buffer.NewRange(start, stop), propsFromTable(tbl)); err != nil {
		L.RaiseError("add_props: %v", err)
		return 0
	}
	return 0
}

// remove_props(start, stop, key...)
// Deletes keys from the properties of [start, stop).
func (e *LuaEngine) removeProps(L *lua.LState) int {
	start := L.CheckInt64(1)
	stop := L.CheckInt64(2)

	keys := make([]string, 0, L.GetTop()-2)
	for i := 3; i <= L.GetTop(); i++ {
		keys = append(keys, L.CheckString(i))
	}

	if err := e.buf.RemoveProperties(buffer.NewRange(start, stop), keys...); err != nil {
		L.RaiseError("remove_props: %v", err)
		return 0
	}
	return 0
}

// props_at(pos) -> table
// Returns the property record at pos.
func (e *LuaEngine) propsAt(L *lua.LState) int {
	pos := L.CheckInt64(1)

	p, err := e.buf.PropsAt(pos)
	if err != nil {
		L.RaiseError("props_at: %v", err)
		return 0
	}
	L.Push(propsToTable(L, p))
	return 1
}

// next_change(pos) -> number | nil
// Returns the first position after pos whose properties differ.
func (e *LuaEngine) nextChange(L *lua.LState) int {
	pos := L.CheckInt64(1)

	next, ok, err := e.buf.NextPropertyChange(pos)
	if err != nil {
		L.RaiseError("next_change: %v", err)
		return 0
	}
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(next))
	return 1
}

// spans() -> table
// Returns the buffer's property runs as an array of
// {start=, stop=, props=} tables.
func (e *LuaEngine) spans(L *lua.LState) int {
	runs := e.buf.Spans()
	out := L.NewTable()
	for _, s := range runs {
		entry := L.NewTable()
		L.SetField(entry, "start", lua.LNumber(s.Start))
		L.SetField(entry, "stop", lua.LNumber(s.End))
		L.SetField(entry, "props", propsToTable(L, s.Props))
		out.Append(entry)
	}
	L.Push(out)
	return 1
}

// propsFromTable converts a Lua table into a property record. Nested
// tables are flattened to their string form; property values are scalars.
func propsFromTable(tbl *lua.LTable) textprop.Props {
	p := textprop.Props{}
	tbl.ForEach(func(k, v lua.LValue) {
		p[k.String()] = goValue(v)
	})
	return p
}

func propsToTable(L *lua.LState, p textprop.Props) *lua.LTable {
	tbl := L.NewTable()
	for k, v := range p {
		L.SetField(tbl, k, luaValue(v))
	}
	return tbl
}

func goValue(v lua.LValue) any {
	switch lv := v.(type) {
	case lua.LBool:
		return bool(lv)
	case lua.LNumber:
		return float64(lv)
	case lua.LString:
		return string(lv)
	default:
		return v.String()
	}
}

func luaValue(v any) lua.LValue {
	switch gv := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(gv)
	case int:
		return lua.LNumber(gv)
	case int64:
		return lua.LNumber(gv)
	case float64:
		return lua.LNumber(gv)
	case string:
		return lua.LString(gv)
	default:
		return lua.LString(fmt.Sprintf("%v", gv))
	}
}
