package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/texpand/internal/engine"
)

// ModuleName is the global and require name of the editing API.
const ModuleName = "texpand"

// api returns the texpand module. Offsets are 0-based byte offsets.
func (e *Extension) api() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"add_trigger_hook": e.addTriggerHook,
		"text_before":      e.textBefore,
		"text_after":       e.textAfter,
		"insert":           e.insert,
		"delete_before":    e.deleteBefore,
		"point":            e.point,
		"set_point":        e.setPoint,
		"in_math":          e.inMath,
		"log":              e.log,
	}
}

func (e *Extension) document(L *lua.LState) *engine.Document {
	if e.doc == nil {
		L.RaiseError("texpand: no document attached")
	}
	return e.doc
}

func (e *Extension) addTriggerHook(L *lua.LState) int {
	e.hooks = append(e.hooks, L.CheckFunction(1))
	return 0
}

func (e *Extension) textBefore(L *lua.LState) int {
	n := L.CheckInt(1)
	L.Push(lua.LString(e.document(L).TextBefore(n)))
	return 1
}

func (e *Extension) textAfter(L *lua.LState) int {
	n := L.CheckInt(1)
	L.Push(lua.LString(e.document(L).TextAfter(n)))
	return 1
}

func (e *Extension) insert(L *lua.LState) int {
	s := L.CheckString(1)
	e.document(L).Insert(s)
	return 0
}

func (e *Extension) deleteBefore(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 {
		L.ArgError(1, "count must not be negative")
	}
	doc := e.document(L)
	p := doc.Point()
	doc.Delete(p-engine.ByteOffset(n), p)
	return 0
}

func (e *Extension) point(L *lua.LState) int {
	L.Push(lua.LNumber(e.document(L).Point()))
	return 1
}

func (e *Extension) setPoint(L *lua.LState) int {
	n := L.CheckInt(1)
	e.document(L).SetPoint(engine.ByteOffset(n))
	return 0
}

func (e *Extension) inMath(L *lua.LState) int {
	doc := e.document(L)
	L.Push(lua.LBool(e.math != nil && e.math.InMath(doc)))
	return 1
}

func (e *Extension) log(L *lua.LState) int {
	msg := L.CheckString(1)
	if e.logger != nil {
		e.logger.Info("lua: %s", msg)
	}
	return 0
}
