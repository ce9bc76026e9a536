/*
Package richtext models chat messages as styled text and edits them without losing formatting.

A Text is an ordered list of runs, each carrying its content, a Style (color and
decorations) and interactive Actions (hover text, click action, insertion).
Edits work on the plain-text projection and are mapped back onto run boundaries,
so the matching logic never needs to know about formatting.

The package also ships a small MiniMessage-compatible Template used to decorate
converted messages.
*/
package richtext
