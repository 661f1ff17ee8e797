package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"genfs/internal/app"
	"genfs/internal/config"
	"genfs/internal/genfs"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp loads the config and creates a GenfsApp. The caller must defer
// a.Close(). operation names the command for the log.
func newApp(operation string) (*app.GenfsApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewGenfsApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// appID returns the --app flag shared by every file command.
func appID(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("app")
	return id
}

var rootCmd = &cobra.Command{
	Use:          "genfs",
	Short:        "Versioned file store for generated applications",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		storeID := uuid.New().String()
		cfg := config.NewConfig(storeID, defaults.BaseDir)

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Store ID: %s\n", storeID)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.Load(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Store ID:     %s\n", cfg.StoreID)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Database:     %s %s\n", cfg.Database.Type, cfg.Database.Path)
		fmt.Printf("Lock Timeout: %s\n", cfg.Lock.Timeout())
		fmt.Printf("Impact Limit: %d\n", cfg.Impact.MaxNodes)
		fmt.Printf("Listen Addr:  %s\n", cfg.Server.ListenAddr)
		for _, v := range cfg.Vaults {
			fmt.Printf("Vault:        %s (%s)\n", v.Name, v.Type)
		}
		return nil
	},
}

// write command
var writeCmd = &cobra.Command{
	Use:   "write PATH",
	Short: "Write a new version of a file from --file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("file")
		mimeType, _ := cmd.Flags().GetString("mime")
		actor, _ := cmd.Flags().GetString("actor")
		forceBinary, _ := cmd.Flags().GetBool("binary")

		var r io.Reader = os.Stdin
		if source != "" && source != "-" {
			f, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("opening %s: %w", source, err)
			}
			defer f.Close()
			r = f
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("reading content: %w", err)
		}

		content := genfs.TextContent(string(data))
		if forceBinary || !utf8.Valid(data) {
			content = genfs.BinaryContent(data)
		}

		a, err := newApp("write")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Service().Write(cmd.Context(), genfs.WriteRequest{
			AppID:    appID(cmd),
			Path:     args[0],
			Content:  content,
			MimeType: mimeType,
			Actor:    actor,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s  v%d  %s\n", res.File.Path, res.Version.Version, res.File.ContentHash[:12])
		if len(res.ImpactedFileIDs) > 0 {
			fmt.Printf("%d file(s) may need updating; run 'genfs impact %s'\n", len(res.ImpactedFileIDs), res.File.Path)
		}
		return nil
	},
}

// read command
var readCmd = &cobra.Command{
	Use:   "read PATH",
	Short: "Print the head content of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, _ := cmd.Flags().GetInt64("version")

		a, err := newApp("read")
		if err != nil {
			return err
		}
		defer a.Close()

		if version <= 0 {
			res, err := a.Service().Read(cmd.Context(), appID(cmd), args[0])
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(res.Content.Data())
			return err
		}

		versions, err := a.Service().GetVersions(cmd.Context(), appID(cmd), args[0], 0)
		if err != nil {
			return err
		}
		for _, v := range versions {
			if v.Version == version {
				_, err = os.Stdout.Write(v.Bytes())
				return err
			}
		}
		return fmt.Errorf("%s has no version %d", args[0], version)
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Delete a file and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("rm")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().Delete(cmd.Context(), appID(cmd), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// mv command
var mvCmd = &cobra.Command{
	Use:   "mv OLD NEW",
	Short: "Rename a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("mv")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Service().Rename(cmd.Context(), appID(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s  v%d\n", args[0], res.File.Path, res.Version.Version)
		return nil
	},
}

// ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show the file tree of an app",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("ls")
		if err != nil {
			return err
		}
		defer a.Close()

		nodes, err := a.Service().List(cmd.Context(), appID(cmd), limit)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			fmt.Println("No files.")
			return nil
		}
		fmt.Println(renderTree(appID(cmd), nodes))
		return nil
	},
}

// renderTree draws nodes below a root labeled name.
func renderTree(name string, nodes []*genfs.TreeNode) string {
	root := tree.Root(name)
	addNodes(root, nodes)
	return root.String()
}

func addNodes(t *tree.Tree, nodes []*genfs.TreeNode) {
	for _, n := range nodes {
		if n.Type == genfs.NodeTypeDirectory {
			sub := tree.Root(n.Name + "/")
			addNodes(sub, n.Children)
			t.Child(sub)
			continue
		}
		label := n.Name
		if n.Size != nil {
			label = fmt.Sprintf("%s (%d B)", n.Name, *n.Size)
		}
		t.Child(label)
	}
}

// log command
var logCmd = &cobra.Command{
	Use:   "log PATH",
	Short: "View file history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("log")
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Service().GetVersionSummaries(cmd.Context(), appID(cmd), args[0], limit)
		if err != nil {
			return err
		}

		for _, e := range entries {
			current := ""
			if e.IsCurrent {
				current = "  [current]"
			}
			by := e.CreatedBy
			if by == "" {
				by = "-"
			}
			fmt.Printf("v%-4d %s  %s  %8d  %s%s\n",
				e.Version,
				e.ContentHash[:12],
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Size,
				by,
				current,
			)
		}
		return nil
	},
}

// impact command
var impactCmd = &cobra.Command{
	Use:   "impact PATH",
	Short: "List files that may need to change when PATH changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("impact")
		if err != nil {
			return err
		}
		defer a.Close()

		return printImpact(cmd.Context(), a.Service(), appID(cmd), args[0])
	},
}

func printImpact(ctx context.Context, svc *genfs.Service, appID, filePath string) error {
	file, err := svc.Stat(ctx, appID, filePath)
	if err != nil {
		return err
	}
	ids, err := svc.FindImpacted(ctx, appID, file.ID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No dependent files.")
		return nil
	}
	for _, id := range ids {
		f, err := svc.FileByID(ctx, id)
		if err != nil {
			fmt.Printf("%s  (unknown)\n", id)
			continue
		}
		fmt.Println(f.Path)
	}
	return nil
}

// ref command
var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Manage dependency edges",
}

var refAddCmd = &cobra.Command{
	Use:   "add SRC DEST",
	Short: "Record that SRC depends on DEST",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ref-add")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Service().AddReference(cmd.Context(), appID(cmd), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[0], args[1])
		return nil
	},
}

var refRmCmd = &cobra.Command{
	Use:   "rm SRC DEST",
	Short: "Remove the edges from SRC to DEST",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ref-rm")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Service().RemoveReference(cmd.Context(), appID(cmd), args[0], args[1])
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Write every file under DIR as a new version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, _ := cmd.Flags().GetString("actor")

		a, err := newApp("import")
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Import(cmd.Context(), appID(cmd), args[0], actor)
		fmt.Printf("Imported %d file(s)\n", len(results))
		if err != nil {
			return fmt.Errorf("import stopped: %w", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	refCmd.AddCommand(refAddCmd)
	refCmd.AddCommand(refRmCmd)

	for _, c := range []*cobra.Command{writeCmd, readCmd, rmCmd, mvCmd, lsCmd, logCmd, impactCmd, refCmd, importCmd} {
		c.PersistentFlags().StringP("app", "a", "default", "Application id")
		rootCmd.AddCommand(c)
	}

	writeCmd.Flags().StringP("file", "f", "", "Read content from this file instead of stdin")
	writeCmd.Flags().String("mime", "", "MIME type (derived from the extension when empty)")
	writeCmd.Flags().String("actor", "", "Recorded as the version's author")
	writeCmd.Flags().Bool("binary", false, "Store content as bytes even if it is valid UTF-8")
	readCmd.Flags().Int64P("version", "v", 0, "Print this version instead of the head")
	lsCmd.Flags().IntP("limit", "n", 0, "Maximum number of files to include")
	logCmd.Flags().IntP("limit", "n", 50, "Maximum number of versions to show")
	importCmd.Flags().String("actor", "", "Recorded as the author of every version")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// trimPassphrase strips the line ending of a piped passphrase.
func trimPassphrase(s string) string {
	return strings.TrimRight(s, "\r\n")
}
