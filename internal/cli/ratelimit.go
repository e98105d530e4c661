package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newRateLimitCommand(a *app) *cobra.Command {
	var serverURL string
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Inspect or reset the TMDB request governor of a running server",
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "server base URL (default http://localhost:<server.port>)")

	base := func() string {
		if serverURL != "" {
			return strings.TrimRight(serverURL, "/")
		}
		return fmt.Sprintf("http://localhost:%d", a.settings.Server.Port)
	}

	var statusEndpoint string
	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current window for one endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := base() + "/api/ratelimit/status?endpoint=" + url.QueryEscape(statusEndpoint)
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, target, nil)
			if err != nil {
				return err
			}
			return a.printJSON(cmd.OutOrStdout(), req)
		},
	}
	status.Flags().StringVar(&statusEndpoint, "endpoint", "", "TMDB path, e.g. /movie/popular")
	_ = status.MarkFlagRequired("endpoint")

	var resetEndpoint string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset one endpoint, or every endpoint when --endpoint is omitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]string{"endpoint": resetEndpoint})
			if err != nil {
				return err
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, base()+"/api/ratelimit/reset", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			return a.printJSON(cmd.OutOrStdout(), req)
		},
	}
	reset.Flags().StringVar(&resetEndpoint, "endpoint", "", "TMDB path to reset")

	cmd.AddCommand(status, reset)
	return cmd
}

// printJSON sends req and pretty-prints the JSON reply.
func (a *app) printJSON(out io.Writer, req *http.Request) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return fmt.Errorf("server returned %s: %s", resp.Status, payload.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	pretty.WriteByte('\n')
	_, err = pretty.WriteTo(out)
	return err
}
