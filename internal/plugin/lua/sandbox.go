package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Printer receives the output of the sandboxed print function.
type Printer func(line string)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	modules map[string]*lua.LTable
	printer Printer
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L:       L,
		modules: make(map[string]*lua.LTable),
	}
}

// Install removes the loaders and replaces print and require.
func (s *Sandbox) Install() {
	dangerousFuncs := []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"module",
		"getfenv",
		"setfenv",
		"collectgarbage",
	}
	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installSafePrint()
	s.installSafeRequire()
}

// SetPrinter redirects print. A nil printer discards output.
func (s *Sandbox) SetPrinter(p Printer) {
	s.printer = p
}

// Provide makes a module available to require and as a global.
func (s *Sandbox) Provide(name string, mod *lua.LTable) {
	s.modules[name] = mod
	s.L.SetGlobal(name, mod)
}

// Modules returns the names of the provided modules.
func (s *Sandbox) Modules() []string {
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	return names
}

func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if s.printer != nil {
			s.printer(strings.Join(parts, "\t"))
		}
		return 0
	}))
}

// installSafeRequire replaces require so that only provided modules and
// the opened standard libraries load. Nothing is read from disk.
func (s *Sandbox) installSafeRequire() {
	builtin := map[string]bool{"string": true, "table": true, "math": true}

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if mod, ok := s.modules[name]; ok {
			L.Push(mod)
			return 1
		}
		if builtin[name] {
			L.Push(L.GetGlobal(name))
			return 1
		}
		L.RaiseError("module %q is not available", name)
		return 0
	}))
}
