/*
Package japanizer converts romaji chat messages into Japanese.

A message goes through four stages: a prefix gate decides whether it should be converted,
romaji is transliterated into hiragana using a longest-match rule table, hiragana runs are
sent to a kana-to-kanji service, and the result is decorated with a configurable template
that keeps the original message reachable on hover.

Messages are styled text (see pkg/richtext): colors, decorations, hover and click actions
survive every stage, and a replacement takes the style of the text it replaces.

# Usage

The App type wires every component from a configuration file:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/japanizer"
		"github.com/aretw0/japanizer/pkg/richtext"
		"github.com/google/uuid"
	)

	func main() {
		app, err := japanizer.New(nil) // built-in defaults
		if err != nil {
			log.Fatal(err)
		}
		defer app.Close(context.Background())

		out, outcome, err := app.Service().Japanize(context.Background(), uuid.New(), richtext.Plain("konnnichiha"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(outcome.Decision, out.String())
	}

The pipeline can also be used without the App, see pkg/japanize.

# Surfaces

The japanizer command exposes the same pipeline as a one-shot converter, an HTTP API
(serve) and a Model Context Protocol server (mcp).
*/
package japanizer
