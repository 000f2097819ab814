package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.trai.ch/faasbench/internal/app"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newInvokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Deploy a benchmark when needed and invoke it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("payload")
			payload, err := parsePayload(raw)
			if err != nil {
				return err
			}

			opts := app.InvokeOptions{
				DeployOptions: deployOptions(cmd),
				Payload:       payload,
			}
			opts.Repetitions, _ = cmd.Flags().GetInt("repetitions")
			opts.Async, _ = cmd.Flags().GetBool("async")
			opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")
			return c.app.Invoke(cmd.Context(), opts)
		},
	}
	addDeployFlags(cmd)
	cmd.Flags().StringP("payload", "p", "{}", "JSON object sent to the function")
	cmd.Flags().IntP("repetitions", "r", 1, "Number of invocations")
	cmd.Flags().Bool("async", false, "Submit all invocations at once to the invocation pool")
	cmd.Flags().Int("concurrency", 1, "Synchronous invocations in flight")
	return cmd
}

func parsePayload(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPayload, err.Error()), "payload", raw)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
