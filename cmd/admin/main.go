// Command admin is an ops CLI for the dashboard backend: preview and execute
// transaction deletions, and read the stats overview, over the HTTP API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "admin",
		Usage: "operate the ledger admin backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   "http://localhost:8080",
				Usage:   "backend base URL",
				EnvVars: []string{"LEDGERADMIN_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer access token",
				EnvVars: []string{"LEDGERADMIN_TOKEN"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "preview",
				Usage:     "show what deleting a transaction would do",
				ArgsUsage: "<transaction-id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("transaction id required", 1)
					}
					return call(c, http.MethodGet, "/api/v1/transactions/"+id+"/delete-preview", nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a transaction and recalculate balances",
				ArgsUsage: "<transaction-id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("transaction id required", 1)
					}
					return call(c, http.MethodDelete, "/api/v1/transactions/"+id, nil)
				},
			},
			{
				Name:      "bulk-delete",
				Usage:     "delete several transactions of one user",
				ArgsUsage: "<transaction-id>...",
				Action: func(c *cli.Context) error {
					ids := c.Args().Slice()
					if len(ids) == 0 {
						return cli.Exit("at least one transaction id required", 1)
					}
					body := map[string]any{"transaction_ids": ids}
					return call(c, http.MethodPost, "/api/v1/transactions/bulk-delete", body)
				},
			},
			{
				Name:  "stats",
				Usage: "print the dashboard overview",
				Action: func(c *cli.Context) error {
					return call(c, http.MethodGet, "/api/v1/stats", nil)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func call(c *cli.Context, method, path string, body any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(c.Context, method, c.String("endpoint")+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.String("token"); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// pretty-print when the body is JSON
	var buf bytes.Buffer
	if json.Indent(&buf, out, "", "  ") == nil {
		out = buf.Bytes()
	}
	fmt.Println(string(out))

	if resp.StatusCode >= 400 {
		return cli.Exit(fmt.Sprintf("request failed: %s", resp.Status), 1)
	}
	return nil
}
