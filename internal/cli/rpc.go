package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var rpcURL string

// rpcCmd sends one JSON-RPC command to a running daemon and prints the
// response. Parameters are given as a single JSON object argument.
//
//	friendtechd rpc server_info
//	friendtechd rpc balance '{"subject":"0x..","holder":"0x.."}'
var rpcCmd = &cobra.Command{
	Use:   "rpc <method> [params-json]",
	Short: "Send an RPC command to a running daemon",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRPC,
}

func init() {
	rootCmd.AddCommand(rpcCmd)
	rpcCmd.Flags().StringVar(&rpcURL, "url", "http://127.0.0.1:5005", "daemon RPC endpoint")
}

func runRPC(cmd *cobra.Command, args []string) error {
	request := map[string]any{"method": args[0]}
	if len(args) == 2 {
		var params json.RawMessage
		if err := json.Unmarshal([]byte(args[1]), &params); err != nil {
			return fmt.Errorf("params must be valid JSON: %w", err)
		}
		request["params"] = []json.RawMessage{params}
	}
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(rpcURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
