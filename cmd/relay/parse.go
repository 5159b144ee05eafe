package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/physlab/problem-relay/apimodels"
	"github.com/physlab/problem-relay/internal/llm"
	"github.com/physlab/problem-relay/internal/relay"
)

var parseCmd = &cobra.Command{
	Use:   "parse [description]",
	Short: "Parse one problem locally and print the response envelope",
	Long:  "Runs the same pipeline as POST /api/parse-problem without starting a server. Reads the description from stdin when no argument is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.Join(args, " ")
		if len(args) == 0 {
			in, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			description = string(in)
		}

		svc := relay.New(llm.NewOpenAI(cfg.DeepSeek), cfg.DeepSeek.APIKeyConfigured())

		timeout := cfg.DeepSeek.Timeout * time.Duration(cfg.DeepSeek.MaxRetries+1)
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		result, parseErr := svc.Parse(ctx, description)

		var out any = result
		if parseErr != nil {
			failure := apimodels.ErrorResponse{Success: false, Error: parseErr.Error()}
			if raw, ok := relay.RawResponse(parseErr); ok {
				failure.RawResponse = &raw
			}
			out = failure
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return parseErr
	},
}
