// Package lua runs user extension scripts with gopher-lua.
//
// Scripts execute in a sandboxed state: only the base, table, string and
// math libraries are opened and the file and chunk loaders are removed.
// The texpand module, available as a global and through require, exposes
// the document being edited:
//
//	texpand.add_trigger_hook(function()
//	    if texpand.text_before(2) == ".." then
//	        texpand.delete_before(2)
//	        texpand.insert("\\ldots")
//	        return true
//	    end
//	    return false
//	end)
//
//	function generate_label(env)
//	    return env:sub(1, 3) .. ":" .. tostring(texpand.point())
//	end
//
// Hooks run before keyword expansion; a hook returning true consumes the
// trigger press. A global generate_label replaces the label generator, and
// table commands with a lua action call the named global function with the
// command's arguments.
package lua
