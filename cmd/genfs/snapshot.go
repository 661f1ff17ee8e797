package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Copy the whole store to a vault and back",
}

var snapshotSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate snapshot encryption keys and check the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			confirm, err := readPassphrase("Repeat passphrase: ")
			if err != nil {
				return err
			}
			if confirm != passphrase {
				return fmt.Errorf("passphrases do not match")
			}
		}

		a, err := newApp("snapshot-setup")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetupSnapshots(cmd.Context(), passphrase); err != nil {
			return err
		}
		fmt.Println("Snapshot vault ready.")
		return nil
	},
}

var snapshotPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a snapshot of the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("snapshot-push")
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.Snapshots(cmd.Context())
		if err != nil {
			return err
		}
		version, err := m.Push(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Pushed snapshot version %d\n", version)
		return nil
	},
}

var snapshotPullCmd = &cobra.Command{
	Use:   "pull DEST",
	Short: "Download the latest snapshot to DEST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("snapshot-pull")
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.Snapshots(cmd.Context())
		if err != nil {
			return err
		}

		var passphrase string
		if m.Encrypted() {
			passphrase, err = readPassphrase("Passphrase: ")
			if err != nil {
				return err
			}
		}

		version, err := m.Pull(cmd.Context(), passphrase, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Pulled snapshot version %d to %s\n", version, args[0])
		return nil
	},
}

// readPassphrase prompts on a terminal without echo, or reads one line
// from piped stdin. GENFS_PASSPHRASE takes precedence over both.
func readPassphrase(prompt string) (string, error) {
	if p := os.Getenv("GENFS_PASSPHRASE"); p != "" {
		return p, nil
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading passphrase from stdin: %w", err)
	}
	return trimPassphrase(line), nil
}

func init() {
	snapshotCmd.AddCommand(snapshotSetupCmd)
	snapshotCmd.AddCommand(snapshotPushCmd)
	snapshotCmd.AddCommand(snapshotPullCmd)
}
