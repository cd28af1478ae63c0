package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/internal/cli/output"
	"github.com/leapstack-labs/gaia/pkg/number"
)

// Number schemes understood by encode and decode.
const (
	SchemeBase64 = "base64" // bare digits: Bk
	SchemeGaia   = "gaia"   // literal: #⟨Bk⟩
	SchemeVector = "vector" // ⊗αθ
	SchemeHan    = "han"    // 五
)

var schemes = []string{SchemeGaia, SchemeBase64, SchemeVector, SchemeHan}

type numberCodec struct {
	encode func(string) (string, error)
	decode func(string) (string, error)
}

var codecs = map[string]numberCodec{
	SchemeBase64: {
		encode: func(s string) (string, error) {
			n, err := parseUint(s)
			if err != nil {
				return "", err
			}
			return number.ToBase64(n), nil
		},
		decode: func(s string) (string, error) {
			n, err := number.FromBase64(s)
			if err != nil {
				return "", err
			}
			return strconv.FormatUint(n, 10), nil
		},
	},
	SchemeGaia: {
		encode: func(s string) (string, error) {
			n, err := parseUint(s)
			if err != nil {
				return "", err
			}
			return number.FormatBase64(n), nil
		},
		decode: func(s string) (string, error) {
			n, err := number.ParseBase64(s)
			if err != nil {
				return "", err
			}
			return strconv.FormatUint(n, 10), nil
		},
	},
	SchemeVector: {
		encode: func(s string) (string, error) {
			n, err := parseUint(s)
			if err != nil {
				return "", err
			}
			return number.EncodeVector(n), nil
		},
		decode: func(s string) (string, error) {
			v, err := number.DecodeVector(s)
			if err != nil {
				return "", err
			}
			return number.FormatVectorValue(v), nil
		},
	},
	SchemeHan: {
		encode: func(s string) (string, error) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return "", fmt.Errorf("not an integer: %q", s)
			}
			return number.EncodeHan(n), nil
		},
		decode: func(s string) (string, error) {
			n, err := number.DecodeHan(s)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(n), nil
		},
	},
}

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a non-negative integer: %q", s)
	}
	return n, nil
}

func addSchemeFlag(cmd *cobra.Command, scheme *string) {
	cmd.Flags().StringVarP(scheme, "scheme", "s", SchemeGaia, "Number scheme ("+strings.Join(schemes, "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("scheme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return schemes, cobra.ShellCompDirectiveNoFileComp
	})
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand() *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "encode <number...>",
		Short: "Encode decimal numbers as GaiaScript numbers",
		Long: `Encode non-negative decimal integers.

Schemes:
  gaia    #⟨Bk⟩ literal (default)
  base64  bare Base64 number digits
  vector  ⊗ vector number, one Greek digit per decimal digit
  han     Han digit for 0-9, decimal otherwise`,
		Example: `  gaia encode 100 1000
  gaia encode --scheme vector 16`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, scheme, false)
		},
	}
	addSchemeFlag(cmd, &scheme)
	return cmd
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand() *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "decode <literal...>",
		Short: "Decode GaiaScript numbers to decimal",
		Long: `Decode GaiaScript numbers.

Every argument is decoded independently. Failures are reported per
argument and the command exits non-zero if any argument failed.`,
		Example: `  gaia decode '#⟨Bk⟩'
  gaia decode --scheme base64 Bk Po
  gaia decode --scheme vector ⊗βε ⊗π`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, scheme, true)
		},
	}
	addSchemeFlag(cmd, &scheme)
	return cmd
}

func runConvert(cmd *cobra.Command, args []string, scheme string, decode bool) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	codec, ok := codecs[strings.ToLower(scheme)]
	if !ok {
		return fmt.Errorf("unknown scheme %q (want %s)", scheme, strings.Join(schemes, ", "))
	}
	convert := codec.encode
	if decode {
		convert = codec.decode
	}

	result := output.ConversionOutput{Scheme: strings.ToLower(scheme)}
	failed := 0
	for _, arg := range args {
		c := output.Conversion{Input: arg}
		out, err := convert(strings.TrimSpace(arg))
		if err != nil {
			c.Error = err.Error()
			failed++
		} else {
			c.Output = out
		}
		result.Results = append(result.Results, c)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	default:
		if len(args) == 1 && failed == 0 {
			r.Println(result.Results[0].Output)
			break
		}
		rows := make([][]string, 0, len(result.Results))
		for _, c := range result.Results {
			if c.Error != "" {
				r.Error(c.Input + ": " + c.Error)
				continue
			}
			rows = append(rows, []string{c.Input, c.Output})
		}
		if len(rows) > 0 {
			r.Table([]string{"Input", "Output"}, rows)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d values could not be converted", failed, len(args))
	}
	return nil
}
