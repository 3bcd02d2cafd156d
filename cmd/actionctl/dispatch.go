package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dsfrGateway/internal/shared/auth"
)

var (
	dispatchServer  string
	dispatchToken   string
	dispatchSession string
	dispatchTimeout time.Duration
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch BUTTON",
	Short: "Trigger a catalog button on a running gateway",
	Long: `Trigger the action of a catalog button through POST /api/actions/:button and print the
outcome. With --session, navigation and alerts are routed to that open page.`,
	Example: `  actionctl dispatch --server http://localhost:8080 --token "$TOKEN" close-request`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), dispatchTimeout)
		defer cancel()
		return runDispatch(ctx, cmd.OutOrStdout(), dispatchRequest{
			Server:  dispatchServer,
			Token:   dispatchToken,
			Session: dispatchSession,
			Button:  args[0],
		})
	},
}

type dispatchRequest struct {
	Server  string
	Token   string
	Session string
	Button  string
}

func runDispatch(ctx context.Context, out io.Writer, r dispatchRequest) error {
	server := strings.TrimRight(strings.TrimSpace(r.Server), "/")
	if server == "" {
		return fmt.Errorf("--server is required")
	}
	button := strings.TrimSpace(r.Button)
	if button == "" {
		return fmt.Errorf("button name is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server+"/api/actions/"+url.PathEscape(button), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := strings.TrimSpace(r.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if session := strings.TrimSpace(r.Session); session != "" {
		req.Header.Set(auth.HeaderSessionID, session)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", button, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("dispatch %s rejected with status %d: %s", button, res.StatusCode, strings.TrimSpace(string(body)))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(body)
	}
	fmt.Fprintln(out, strings.TrimSpace(pretty.String()))
	return nil
}

func init() {
	dispatchCmd.Flags().StringVar(&dispatchServer, "server", "http://localhost:8080", "Gateway base URL")
	dispatchCmd.Flags().StringVar(&dispatchToken, "token", "", "Bearer token")
	dispatchCmd.Flags().StringVar(&dispatchSession, "session", "", "Session id receiving navigation and alerts")
	dispatchCmd.Flags().DurationVar(&dispatchTimeout, "timeout", 6*time.Minute, "Overall request timeout")
	_ = dispatchCmd.MarkFlagRequired("token")
	rootCmd.AddCommand(dispatchCmd)
}
