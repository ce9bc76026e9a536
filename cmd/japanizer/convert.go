package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/japanizer/internal/presentation/tui"
	httpAdapter "github.com/aretw0/japanizer/pkg/adapters/http"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Output formats of the convert command.
const (
	outputAuto   = "auto"
	outputPlain  = "plain"
	outputANSI   = "ansi"
	outputMarkup = "markup"
	outputJSON   = "json"
)

var convertCmd = &cobra.Command{
	Use:   "convert [message...]",
	Short: "Convert messages given as arguments or read line by line from Stdin",
	Example: `  japanizer convert konnnichiha
  japanizer convert --markup '<red>!sushi</red>' --output markup
  cat chat.log | japanizer convert --no-kanji --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if noKanji, _ := cmd.Flags().GetBool("no-kanji"); noKanji {
			cfg.Kanji.Enabled = false
		}

		app, err := newApp(cmd, cfg)
		if err != nil {
			return err
		}
		defer app.Close(cmd.Context())

		userID := uuid.Nil
		if raw, _ := cmd.Flags().GetString("user"); raw != "" {
			if userID, err = uuid.Parse(raw); err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
		}
		markup, _ := cmd.Flags().GetBool("markup")
		translitOnly, _ := cmd.Flags().GetBool("transliterate-only")
		output, _ := cmd.Flags().GetString("output")

		out := cmd.OutOrStdout()
		if output == outputAuto {
			output = outputPlain
			if tui.IsTerminal(out) {
				output = outputANSI
			}
		}

		convert := func(line string) error {
			msg := richtext.Plain(line)
			if markup {
				tmpl, err := richtext.Parse(line)
				if err != nil {
					return err
				}
				msg = tmpl.Render()
			}
			msg, err := msg.Sanitize(richtext.DefaultMaxInputSize)
			if err != nil {
				return err
			}

			if translitOnly {
				text := app.Japanizer().Transliterate(msg)
				return printMessage(out, output, text, domain.Outcome{Changed: !text.Equal(msg)})
			}

			text, outcome, err := app.Service().Japanize(cmd.Context(), userID, msg)
			if err != nil {
				return err
			}
			return printMessage(out, output, text, outcome)
		}

		if len(args) > 0 {
			return convert(strings.Join(args, " "))
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if err := convert(scanner.Text()); err != nil {
				return err
			}
		}
		return scanner.Err()
	},
}

func printMessage(w io.Writer, output string, text richtext.Text, outcome domain.Outcome) error {
	switch output {
	case outputPlain:
		_, err := fmt.Fprintln(w, text.String())
		return err
	case outputANSI:
		_, err := fmt.Fprintln(w, tui.RenderText(termenv.ColorProfile(), text))
		return err
	case outputMarkup:
		_, err := fmt.Fprintln(w, text.Markup())
		return err
	case outputJSON:
		return json.NewEncoder(w).Encode(httpAdapter.MessageResponse{
			Text:     text,
			Plain:    text.String(),
			Decision: outcome.Decision,
			Changed:  outcome.Changed,
		})
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("user", "", "UUID of the sender; their stored preference applies")
	convertCmd.Flags().Bool("markup", false, "Parse input as MiniMessage-style markup")
	convertCmd.Flags().Bool("no-kanji", false, "Stop at hiragana, without calling the kanji service")
	convertCmd.Flags().Bool("transliterate-only", false, "Skip the prefix gate and decoration, only transliterate")
	convertCmd.Flags().StringP("output", "o", outputAuto, "Output format: auto, plain, ansi, markup or json")
}
