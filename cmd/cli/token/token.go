package token

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/crucial707/scim-provision/cmd/cli/config"
	"github.com/crucial707/scim-provision/cmd/cli/root"
	"github.com/spf13/cobra"
)

const tokenFileName = ".scim_token"

// ==========================
// CLI Command Init
// ==========================
func init() {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Fetch and store a bearer token",
		Long: `Fetch a bearer token from the API's /token endpoint and store it
locally for future CLI commands.`,
		RunE: runToken,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the locally stored token",
		RunE:  runClear,
	}

	tokenCmd.AddCommand(clearCmd)
	root.GetRoot().AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(config.APIURL() + "/token")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	tok, ok := result["token"]
	if !ok {
		return fmt.Errorf("token not returned by API")
	}

	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(tok), 0600); err != nil {
		return err
	}

	fmt.Println("Token stored. SCIM commands will use it automatically.")
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	fmt.Println("Token removed.")
	return nil
}

// TokenPath returns the location of the stored token file.
func TokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

// Load reads the stored token. Returns an error telling the user to run
// `scim token` when no token is stored yet.
func Load() (string, error) {
	path, err := TokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("no token stored; run `scim token` first")
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
