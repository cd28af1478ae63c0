package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/pkg/symbols"
)

// TextOptions holds options for the text transform commands.
type TextOptions struct {
	File string
}

// NewExpandCommand creates the expand command.
func NewExpandCommand() *cobra.Command {
	opts := &TextOptions{}

	cmd := &cobra.Command{
		Use:   "expand [text]",
		Short: "Expand Han keywords and named symbols into English",
		Long: `Expand Han keyword characters and named math symbols into English words.

Reads the arguments, --file, or stdin.`,
		Example: `  gaia expand '函 λ'
  gaia expand --file notes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTextTransform(cmd, args, opts, "expand", symbols.Expand)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read input from file")
	return cmd
}

// NewCompressCommand creates the compress command.
func NewCompressCommand() *cobra.Command {
	opts := &TextOptions{}

	cmd := &cobra.Command{
		Use:   "compress [text]",
		Short: "Replace English keywords with Han characters",
		Long: `Replace whole English keywords with their Han characters. Words that
only contain a keyword, like "functional", are kept.

Reads the arguments, --file, or stdin.`,
		Example: `  gaia compress 'function returns a constant'
  cat prompt.txt | gaia compress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTextTransform(cmd, args, opts, "compress", symbols.Compress)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read input from file")
	return cmd
}

// NewWordsCommand creates the words command.
func NewWordsCommand() *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "words <text...>",
		Short: "Encode words as word codes (w₀, w₁, …)",
		Long: `Encode each word that has a word code, like "the" to w₀ and "state"
to w₉₄. With --decode, replace word codes with their words instead.`,
		Example: `  gaia words the state of the system
  gaia words --decode 'w₁₂₇ w₁₂₈'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode {
				return runTextTransform(cmd, args, &TextOptions{}, "decode-words", symbols.DecodeWords)
			}
			return runTextTransform(cmd, args, &TextOptions{}, "encode-words", symbols.EncodeWords)
		},
	}

	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Decode word codes")
	return cmd
}

func runTextTransform(cmd *cobra.Command, args []string, opts *TextOptions, op string, fn func(string) string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	input, err := readInput(cmd, args, opts.File)
	if err != nil {
		return err
	}
	result := fn(input)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.TextOutput{Operation: op, Input: input, Output: result})
	}
	r.Println(strings.TrimRight(result, "\n"))
	return nil
}
