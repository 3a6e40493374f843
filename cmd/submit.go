package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/api"
	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/report"
	"github.com/inference-sim/schedsim/sim/workload"
)

// RemoteClient submits workloads to a running `schedsim serve` instance.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteClient creates a client for the server at baseURL.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Schedule runs one policy remotely.
func (c *RemoteClient) Schedule(ctx context.Context, spec sim.PolicySpec, procs []sim.Process, traced bool) (*report.ResultRecord, error) {
	body := api.ScheduleRequest{Processes: api.FromProcesses(procs), Trace: traced}
	switch spec.Name {
	case "rr":
		q := spec.Quantum
		body.Quantum = &q
	case "mlfq":
		boost := spec.MLFQ.BoostInterval
		body.MLFQ = &api.MLFQRequest{Quanta: spec.MLFQ.Quanta, BoostInterval: &boost}
	}
	var rec report.ResultRecord
	if err := c.post(ctx, "/api/v1/schedule/"+spec.Name, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Compare runs a policy list remotely; an empty list uses the server's bundle.
func (c *RemoteClient) Compare(ctx context.Context, specs []sim.PolicySpec, procs []sim.Process) (*api.CompareResponse, error) {
	body := api.CompareRequest{Processes: api.FromProcesses(procs)}
	for _, s := range specs {
		body.Policies = append(body.Policies, s.String())
	}
	var resp api.CompareResponse
	if err := c.post(ctx, "/api/v1/compare", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RemoteClient) post(ctx context.Context, path string, body, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("JSON parse error: %w", err)
	}
	return nil
}

// --- schedsim submit ---

var (
	serverURL     string
	submitTimeout time.Duration
	submitTrace   bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <workload> <algorithm> [params...]",
	Short: "Run a policy on a remote schedsim server",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewRemoteClient(serverURL, submitTimeout)
		if err := runSubmit(cmd.Context(), os.Stdout, client, args[0], args[1:], submitTrace); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func runSubmit(ctx context.Context, out io.Writer, client *RemoteClient, workloadPath string, policyArgs []string, traced bool) error {
	spec, err := sim.ParsePolicyArgs(policyArgs)
	if err != nil {
		return err
	}
	procs, err := workload.LoadWorkload(workloadPath)
	if err != nil {
		return err
	}
	rec, err := client.Schedule(ctx, spec, procs, traced)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Algorithm: %s (%s)\n", rec.Algorithm, rec.Policy)
	for _, e := range rec.Timeline {
		_, _ = fmt.Fprintf(out, "  time=%d pid=%d dur=%d\n", e.Time, e.PID, e.Duration)
	}
	report.WriteMetrics(out, rec.Metrics)
	if rec.Trace != nil {
		report.WriteTraceSummary(out, rec.Trace)
	}
	return nil
}

func init() {
	submitCmd.Flags().StringVar(&serverURL, "server", "http://localhost:9095", "Base URL of a schedsim server")
	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", 30*time.Second, "HTTP timeout")
	submitCmd.Flags().BoolVar(&submitTrace, "trace", false, "Ask the server for a decision trace summary")
	rootCmd.AddCommand(submitCmd)
}
