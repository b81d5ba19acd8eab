// Package wire defines the delimited text record format Timelane uses to
// report subscription lifecycles to a visualization tool.
//
// Every record is a flat list of key/value fields:
//
//	subscribe:<name>###source:<source>###id:<id>
//	subscription:<name>###type:<label>###value:<text>###source:<source>###id:<id>
//	completion:<code>###error:<message>
//	version:<n>
//
// Fields are separated by FieldSeparator and each field is split into key
// and value at KeyValueSeparator.
//
// # Truncation
//
// Free-text payloads (event values and error messages) are limited to
// MaxTextLength characters. Longer text is cut and Ellipsis is appended.
//
// # Escaping
//
// Separators are not escaped. A payload containing "###" or ":" produces a
// record that Decode cannot split back into the original fields; such
// fields are dropped by the decoder. This is a known limitation of the
// format, not something this package works around.
package wire
