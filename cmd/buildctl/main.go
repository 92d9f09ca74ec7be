// Command buildctl runs the build payload pipeline offline: domain checks,
// payload normalization, label sanitization and model chain inspection,
// without calling a provider.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exilekitchen/buildcraft/internal/buildpayload"
	"github.com/exilekitchen/buildcraft/internal/config"
	"github.com/exilekitchen/buildcraft/internal/guardrails"
	modelrouter "github.com/exilekitchen/buildcraft/internal/router"
	"github.com/exilekitchen/buildcraft/internal/sanitizer"
	"github.com/exilekitchen/buildcraft/internal/session"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

var (
	locale     string
	shape      string
	labelsFile string
	legacy     bool
	asText     bool
	primary    string
	fallback   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "buildctl",
		Short:         "Inspect and transform build payloads offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&locale, "locale", "en", "output locale (en, pt-BR)")
	root.PersistentFlags().StringVar(&labelsFile, "labels", "", "YAML label override file")

	root.AddCommand(guardCmd(), normalizeCmd(), sanitizeCmd(), sessionCmd(), chainCmd())
	return root
}

// =============================================================================
// GUARD
// =============================================================================

func guardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guard [file]",
		Short: "Assess whether text or a build payload stays in the Path of Exile domain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGuard,
	}
	cmd.Flags().BoolVar(&asText, "text", false, "treat input as free text rather than a build payload")
	return cmd
}

func runGuard(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var assessment models.DomainAssessment
	if asText {
		assessment = guardrails.AssessText(string(data))
	} else {
		rec, err := buildpayload.Parse(data)
		if err != nil {
			assessment = guardrails.AssessText(string(data))
		} else {
			assessment = guardrails.AssessBuild(rec)
		}
	}
	if err := writeJSON(cmd.OutOrStdout(), assessment); err != nil {
		return err
	}
	if assessment.IsInvalid {
		return fmt.Errorf("off-domain content: %s", assessment.Reason)
	}
	return nil
}

// =============================================================================
// NORMALIZE
// =============================================================================

func normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Parse provider output and print it in the requested shape",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNormalize,
	}
	cmd.Flags().StringVar(&shape, "shape", string(models.ShapeCanonical), "output shape (canonical, legacy)")
	return cmd
}

func runNormalize(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	rec, err := buildpayload.Parse(data)
	if err != nil {
		return fmt.Errorf("parse build payload: %w", err)
	}
	san, err := loadSanitizer()
	if err != nil {
		return err
	}
	out := buildpayload.NewSerializer(san).Serialize(rec, buildpayload.ParseShape(shape), locale)
	return writeJSON(cmd.OutOrStdout(), out)
}

// =============================================================================
// SANITIZE
// =============================================================================

func sanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize [file]",
		Short: "Replace leaked enum tokens in a raw payload with display labels",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSanitize,
	}
}

func runSanitize(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	san, err := loadSanitizer()
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Plain text input is sanitized as a single narrative value.
		_, err := fmt.Fprintln(cmd.OutOrStdout(), san.Text(strings.TrimSpace(string(data)), locale))
		return err
	}
	return writeJSON(cmd.OutOrStdout(), san.Fields(raw, locale))
}

// =============================================================================
// SESSION
// =============================================================================

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session [file]",
		Short: "Normalize a party session context",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSession,
	}
	cmd.Flags().BoolVar(&legacy, "legacy", false, "print the recipe-era field names")
	return cmd
}

func runSession(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	var raw map[string]any
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
	}
	ctx := session.Normalize(raw)
	if legacy {
		return writeJSON(cmd.OutOrStdout(), session.ToLegacy(ctx))
	}
	return writeJSON(cmd.OutOrStdout(), session.ToCanonical(ctx))
}

// =============================================================================
// CHAIN
// =============================================================================

func chainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Print the model attempt chain for a configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chain := modelrouter.BuildModelAttemptChain(modelrouter.ModelConfig{
				Primary:  primary,
				Fallback: fallback,
			})
			return writeJSON(cmd.OutOrStdout(), chain)
		},
	}
	cmd.Flags().StringVar(&primary, "primary", os.Getenv("GEMINI_MODEL"), "primary model")
	cmd.Flags().StringVar(&fallback, "fallback", os.Getenv("GEMINI_FALLBACK_MODEL"), "fallback model")
	return cmd
}

// ── Helpers ─────────────────────────────────────────────────

// readInput reads the named file, or stdin when no file (or "-") is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}

func loadSanitizer() (*sanitizer.Sanitizer, error) {
	if labelsFile == "" {
		return sanitizer.Default, nil
	}
	labels, err := config.LoadLabels(labelsFile)
	if err != nil {
		return nil, err
	}
	return sanitizer.New(labels), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
