// Package config loads texpand's configuration.
//
// The main file is TOML. It binds the command keys, sets behavior and may
// add table entries that override the built-in tables:
//
//	lua = ["init.lua"]
//	tables = "tables.yaml"
//	keep = ["lr("]
//
//	[keys]
//	trigger = "Tab"
//	symbol_prefix = "`"
//	modify_prefix = "'"
//	direct = ["", "Alt+Shift"]
//
//	[behavior]
//	pairs = "([{"
//	simplify = true
//	auto_label = true
//	help_delay = "1.5s"
//
//	[[commands]]
//	keyword = "bx"
//	replacement = "\\boxed{?}"
//	action = "position-cursor"
//	math = true
//
// The optional tables file is YAML with the same commands, environments,
// symbols, modifiers and keep lists. Its entries rank below those of the
// main file. Relative paths are resolved against the main file's
// directory.
//
// Environment variables override the file:
//
//	TEXPAND_LOG_LEVEL   behavior.log_level
//	TEXPAND_HELP_DELAY  behavior.help_delay
//	TEXPAND_SIMPLIFY    behavior.simplify
//	TEXPAND_LABELS      behavior.auto_label
//
// Watcher reports changes to the configuration files so a running
// session can be reset with the new tables.
package config
