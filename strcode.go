// Package strcode renders localised text from compiled string templates.
//
// Templates are UTF-8 text with embedded control codepoints that consume
// typed parameters, select plural and gender forms, convert units, format
// money and dates, and include other templates. Templates are written in a
// readable brace syntax and compiled into that form by a language pack:
//
//	strings:
//	  - key: STR_CARS
//	    text: "{COMMA} {P car cars}"
//
// # Basic Usage
//
//	pack, err := strcode.CompileLanguagePack(src, logger)
//	engine := strcode.MustNew()
//	snap := strcode.NewSnapshot(pack)
//	text, err := engine.FormatKey(snap, "STR_CARS", strcode.Int(3))
//	// text: "3 cars"
//
// # Encoded Strings
//
// A string identifier and its parameters can be flattened into a single
// storable string with Encode and rendered later with FormatEncoded:
//
//	enc, err := strcode.Encode(id, strcode.Int(5), strcode.Str("Bob"))
//	text, err := engine.FormatEncoded(snap, enc)
//
// # Snapshots
//
// Every format call reads one immutable Snapshot: the compiled pack plus
// user separators, unit selections, currency and time mode. Change the
// language by building a new Snapshot; Snapshot.With* return modified
// copies.
//
// # Storage
//
// Language pack sources can be kept in memory, on disk (YAML or TOML,
// optionally zstd compressed) or in PostgreSQL or SQLite through the
// PackStorage drivers, and cached with CachedPackStorage.
package strcode
