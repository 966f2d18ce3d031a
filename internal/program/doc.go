// Package program holds the in-memory representation of a program document:
// metadata, the import table, functions and modifier definitions, plus the
// per-instance cache of modules loaded through imports.
//
// A program document is JSON:
//
//	{
//	  "metadata":  {"package": "demo", "version": "1.0.0"},
//	  "imports":   {"greet": "lib.msg.hello", "say": "jsonlang.println"},
//	  "functions": {"main": {"actions": [...]}},
//	  "modifiers": [{"name": "m", "condition": "function.args == undefined", "actions": [...]}]
//	}
//
// The module cache belongs to one Program instance only. Two programs that
// import the same path load it independently. A Program is not safe for
// concurrent use.
package program
