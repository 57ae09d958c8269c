// Package askcmder provides the ask command for streaming AI assistant
// answers from the case-management API.
package askcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caselinehq/caseline/pkg/assistant"
	"github.com/caselinehq/caseline/pkg/cliui"
	"github.com/caselinehq/caseline/pkg/config"
	"github.com/caselinehq/caseline/pkg/logger"
)

type askCommander struct {
	apiTarget  string
	path       string
	csrfHeader string
	csrfToken  string
	render     bool
	debug      bool

	logger *zap.Logger
}

// askRequest is the JSON body sent to the assistant stream endpoint.
type askRequest struct {
	Prompt string `json:"prompt"`
}

// askAnswer is the payload of the terminal done event.
type askAnswer struct {
	Result string `json:"result"`
}

const askLongDesc string = `Ask the AI assistant a question.

The answer is streamed from the case-management API over Server-Sent Events:
incremental text is printed as it arrives, and the command exits once the
server sends its final answer. There are no retries; re-run the command if a
stream fails.

The endpoint, CSRF header, and API target come from the .caseline/ config
(see "caseline config") and can be overridden per invocation with flags.

Examples:
  caseline ask "Which intended parents are waiting on screening?"
  caseline ask --render "Summarize ticket #4821"
  caseline ask --api-target https://app.example.com "Draft a reply"`

const askShortDesc string = "Ask the AI assistant a question (streamed)"

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		// The failure reason is already printed inline with the partial
		// output; suppress cobra's duplicate error line and usage dump.
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("initializing config: %w", err)
			}

			// Flag > env > config file > default.
			_ = v.BindPFlag("client.api_target", cmd.Flags().Lookup("api-target"))
			_ = v.BindPFlag("assistant.path", cmd.Flags().Lookup("path"))

			cmder.apiTarget = v.GetString("client.api_target")
			cmder.path = v.GetString("assistant.path")
			cmder.csrfHeader = v.GetString("client.csrf_header")
			cmder.csrfToken = v.GetString("client.csrf_token")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context(), strings.Join(args, " "))
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVarP(&cmder.apiTarget, "api-target", "a", defaults.Client.APITarget, "Case-management API URL")
	cmd.Flags().StringVarP(&cmder.path, "path", "p", defaults.Assistant.Path, "Assistant stream endpoint path")
	cmd.Flags().BoolVarP(&cmder.render, "render", "r", false, "Render the final answer as markdown instead of streaming raw text")

	return cmd
}

func (c *askCommander) run(ctx context.Context, question string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	// Ctrl+C aborts the in-flight stream through the request context.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	stats := assistant.NewStats()
	opts := []assistant.Option{
		assistant.WithLogger(c.logger),
		assistant.WithSink(stats),
	}
	if c.csrfToken != "" {
		opts = append(opts, assistant.WithCSRF(c.csrfHeader, c.csrfToken))
	}

	client, err := assistant.New(c.apiTarget, opts...)
	if err != nil {
		return fmt.Errorf("creating assistant client: %w", err)
	}

	onEvent := func(ev assistant.Event) {
		switch ev.Type {
		case assistant.EventStart:
			var st assistant.Status
			if json.Unmarshal(ev.Data, &st) == nil && st.Status != "" {
				fmt.Printf("  %s\n\n", cliui.DimStyle.Render(st.Status))
			}
		case assistant.EventDelta:
			if !c.render {
				fmt.Print(ev.DeltaText())
			}
		}
	}

	answer, err := assistant.Stream[askAnswer](ctx, client, c.path, askRequest{Prompt: question}, onEvent)

	if c.debug {
		c.logger.Debug("stream stats",
			zap.Int("chunks", stats.Chunks),
			zap.Int("bytes", stats.Bytes),
			zap.Any("events", stats.Events),
			zap.Duration("elapsed", stats.Elapsed()),
		)
	}

	if err != nil {
		// Partial text already printed stays on screen; the failure reason
		// goes to stderr so the output remains pipeable.
		fmt.Fprintf(os.Stderr, "\n  %s %v\n", cliui.FailMark, err)
		return err
	}

	if c.render {
		rendered, rerr := cliui.RenderMarkdown(answer.Result)
		if rerr != nil {
			fmt.Println(answer.Result)
		} else {
			fmt.Print(rendered)
		}
	} else {
		fmt.Println()
	}

	return nil
}
