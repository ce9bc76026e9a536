/*
Package japanize implements the message conversion pipeline.

A message flows through four stages:

	Gate -> Transliterator -> kanji conversion -> Formatter

The Gate decides from the plain-text projection whether a message is skipped, forced or
conditionally converted, and strips the control prefixes. The Transliterator rewrites romaji
into hiragana using a romaji.Table, keeping the formatting of every styled run. Kanji
conversion is delegated to a ports.KanjiConverter. The Formatter decorates changed messages
with a richtext.Template.

Japanizer wires the stages together; Service adds the per-user preference check.
*/
package japanize
