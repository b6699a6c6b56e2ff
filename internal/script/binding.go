package script

import (
	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// binding exposes a Document to one Lua state.
type binding struct {
	doc     Document
	logger  *log.Logger
	lastErr error
	calls   int
}

func (b *binding) install(L *lua.LState) {
	tbl := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"size":   b.size,
		"get":    b.get,
		"insert": b.insert,
		"delete": b.delete,
		"text":   b.text,
	})
	L.SetGlobal("doc", tbl)
	L.SetGlobal("log", L.NewFunction(b.log))
}

// fail records err and raises it in Lua. It does not return.
func (b *binding) fail(L *lua.LState, err error) {
	b.lastErr = err
	L.RaiseError("%s", err.Error())
}

func (b *binding) size(L *lua.LState) int {
	b.calls++
	L.Push(lua.LNumber(b.doc.Len()))
	return 1
}

func (b *binding) get(L *lua.LState) int {
	b.calls++
	i := L.CheckInt(1)
	c, err := b.doc.ByteAt(i)
	if err != nil {
		b.fail(L, err)
		return 0
	}
	L.Push(lua.LString([]byte{c}))
	return 1
}

func (b *binding) insert(L *lua.LState) int {
	b.calls++
	i := L.CheckInt(1)
	s := L.CheckString(2)
	end, err := b.doc.Insert(i, s)
	if err != nil {
		b.fail(L, err)
		return 0
	}
	L.Push(lua.LNumber(end))
	return 1
}

func (b *binding) delete(L *lua.LState) int {
	b.calls++
	i := L.CheckInt(1)
	n := L.OptInt(2, 1)
	if n < 0 {
		L.ArgError(2, "count must not be negative")
		return 0
	}
	if err := b.doc.Delete(i, i+n); err != nil {
		b.fail(L, err)
	}
	return 0
}

func (b *binding) text(L *lua.LState) int {
	b.calls++
	L.Push(lua.LString(b.doc.Text()))
	return 1
}

func (b *binding) log(L *lua.LState) int {
	b.logger.Info(L.CheckString(1))
	return 0
}
