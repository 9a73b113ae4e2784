package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultAddr = "http://localhost:8000"

// commandLine talks to a running API.
type commandLine struct {
	addr   string
	client *http.Client
	out    io.Writer
}

func newCommandLine(out io.Writer) *commandLine {
	return &commandLine{
		addr:   defaultAddr,
		client: &http.Client{Timeout: 10 * time.Second},
		out:    out,
	}
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashctl",
		Short:         "Operate the skill gap analytics API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.PersistentFlags().StringVar(&cli.addr, "addr", defaultAddr, "base URL of the API")

	root.AddCommand(
		&cobra.Command{
			Use:   "health",
			Short: "Check that the API is up",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.call(http.MethodGet, "/api/health")
			},
		},
		&cobra.Command{
			Use:   "metrics",
			Short: "Show the dashboard metrics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.call(http.MethodGet, "/api/dashboard/metrics")
			},
		},
		&cobra.Command{
			Use:   "students",
			Short: "List students with their latest scores",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.call(http.MethodGet, "/api/students")
			},
		},
		&cobra.Command{
			Use:   "student <student-code>",
			Short: "Show a student by their external code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.call(http.MethodGet, "/api/students/code/"+url.PathEscape(args[0]))
			},
		},
		cli.alertsCmd(),
		&cobra.Command{
			Use:   "read <alert-id>",
			Short: "Mark an alert as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.call(http.MethodPatch, "/api/alerts/"+url.PathEscape(args[0])+"/read")
			},
		},
	)
	return root
}

func (cli *commandLine) alertsCmd() *cobra.Command {
	var unread bool
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List alerts, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/alerts"
			if unread {
				path += "/unread"
			}
			return cli.call(http.MethodGet, path)
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "only list unread alerts")
	return cmd
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	return root.Execute()
}

// call sends the request & prints the indented JSON response.
// Non 2xx responses are turned into errors carrying the API's message.
func (cli *commandLine) call(method, path string) error {
	req, err := http.NewRequest(method, strings.TrimSuffix(cli.addr, "/")+path, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := cli.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return errors.Errorf("%s %s: %d %s", method, path, res.StatusCode, apiErr.Error)
		}
		return errors.Errorf("%s %s: %d %s", method, path, res.StatusCode, http.StatusText(res.StatusCode))
	}

	var pretty bytes.Buffer
	if err = json.Indent(&pretty, body, "", "  "); err != nil {
		return errors.Wrap(err, "formatting response")
	}
	_, err = fmt.Fprintln(cli.out, pretty.String())
	return err
}
