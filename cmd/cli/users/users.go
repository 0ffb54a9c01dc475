package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/crucial707/scim-provision/cmd/cli/config"
	"github.com/crucial707/scim-provision/cmd/cli/output"
	"github.com/crucial707/scim-provision/cmd/cli/root"
	"github.com/crucial707/scim-provision/cmd/cli/token"
	"github.com/spf13/cobra"
)

// userEnvelope mirrors the SCIM single-User response.
type userEnvelope struct {
	ID   int `json:"id"`
	Meta struct {
		Created      time.Time `json:"created"`
		LastModified time.Time `json:"lastModified"`
	} `json:"meta"`
	UserName string `json:"userName"`
}

type listEnvelope struct {
	TotalResults int            `json:"totalResults"`
	Resources    []userEnvelope `json:"Resources"`
}

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage provisioned SCIM users",
		Long:  "List, get, create and delete SCIM User resources through the API.",
	}

	var filterUsername string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users matching a userName filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(filterUsername)
		},
	}
	listCmd.Flags().StringVar(&filterUsername, "username", "", "userName to filter by (required)")
	listCmd.MarkFlagRequired("username")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0])
		},
	}

	var createMeta string
	createCmd := &cobra.Command{
		Use:   "create <userName>",
		Short: "Provision a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], createMeta)
		},
	}
	createCmd.Flags().StringVar(&createMeta, "meta", "", "arbitrary JSON meta attribute bag")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	}

	usersCmd.AddCommand(listCmd, getCmd, createCmd, deleteCmd)
	root.GetRoot().AddCommand(usersCmd)
}

func runList(username string) error {
	filter := fmt.Sprintf(`userName eq %q`, username)
	endpoint := config.APIURL() + "/Users?filter=" + url.QueryEscape(filter)

	resp, err := authorizedRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var list listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(list.Resources))
	for _, u := range list.Resources {
		rows = append(rows, []interface{}{u.ID, u.UserName, u.Meta.Created.Format(time.RFC3339), u.Meta.LastModified.Format(time.RFC3339)})
	}
	output.RenderTable([]string{"ID", "UserName", "Created", "LastModified"}, rows)
	fmt.Printf("Total: %d\n", list.TotalResults)
	return nil
}

func runGet(id string) error {
	resp, err := authorizedRequest("GET", config.APIURL()+"/Users/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("user %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var u userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return err
	}
	output.RenderTable(
		[]string{"ID", "UserName", "Created", "LastModified"},
		[][]interface{}{{u.ID, u.UserName, u.Meta.Created.Format(time.RFC3339), u.Meta.LastModified.Format(time.RFC3339)}},
	)
	return nil
}

func runCreate(username, meta string) error {
	payload := map[string]any{"userName": username}
	if meta != "" {
		var metaValue any
		if err := json.Unmarshal([]byte(meta), &metaValue); err != nil {
			return fmt.Errorf("--meta must be valid JSON: %w", err)
		}
		payload["meta"] = metaValue
	}
	body, _ := json.Marshal(payload)

	resp, err := authorizedRequest("POST", config.APIURL()+"/Users", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}

	var u userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return err
	}
	fmt.Printf("Created user %d (%s)\n", u.ID, u.UserName)
	return nil
}

func runDelete(id string) error {
	resp, err := authorizedRequest("DELETE", config.APIURL()+"/Users/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("user %s not found", id)
	}
	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}

	fmt.Printf("Deleted user %s\n", id)
	return nil
}

// authorizedRequest sends an HTTP request with the stored bearer token.
func authorizedRequest(method, endpoint string, body []byte) (*http.Response, error) {
	tok, err := token.Load()
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return http.DefaultClient.Do(req)
}

func apiError(resp *http.Response) error {
	if resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("forbidden: token rejected; run `scim token` to fetch a fresh one")
	}
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(b))
}
