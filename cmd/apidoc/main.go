// Command apidoc builds an API documentation catalog from a YAML manifest
// and prints it.
//
// Print the documentation tree of a version:
//
//	apidoc dump --manifest api.yaml --version v1
//	apidoc dump --manifest api.yaml --version v1 --resource users --method show
//	apidoc dump --manifest api.yaml --version v1 --format yaml
//
// List the versions the manifest documents:
//
//	apidoc versions --manifest api.yaml
//
// Registry settings come from --config (YAML) and APIDOC_* environment
// variables, e.g. APIDOC_APP_NAME or APIDOC_DEFAULT_VERSION.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjaus/apidoc"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()})))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// logLevel reads APIDOC_LOG_LEVEL, defaulting to info.
func logLevel() slog.Level {
	v := viper.New()
	v.SetEnvPrefix("APIDOC")
	v.AutomaticEnv()

	switch strings.ToLower(v.GetString("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "apidoc",
		Short:        "Build and print API documentation catalogs",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig(v)
		},
	}

	root.PersistentFlags().String("config", "", "Registry settings file (YAML)")
	root.PersistentFlags().String("manifest", "", "Manifest declaring handlers and their descriptions")
	if err := v.BindPFlags(root.PersistentFlags()); err != nil {
		slog.Error("Error binding flags", "error", err)
	}

	root.AddCommand(newDumpCmd(v), newVersionsCmd(v))
	return root
}

func newDumpCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the documentation tree of a version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := buildRegistry(v)
			if err != nil {
				return err
			}

			version, _ := cmd.Flags().GetString("version")
			resource, _ := cmd.Flags().GetString("resource")
			method, _ := cmd.Flags().GetString("method")
			format, _ := cmd.Flags().GetString("format")

			if resource != "" && reg.ToJSON(version, resource, method) == nil {
				return fmt.Errorf("resource %q not found in version %q", resource, version)
			}

			switch format {
			case "json", "":
				return reg.WriteDocument(cmd.OutOrStdout(), version, resource, method)
			case "yaml":
				return reg.WriteDocumentYAML(cmd.OutOrStdout(), version, resource, method)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().String("version", "", "Version to print (default: the registry default version)")
	cmd.Flags().String("resource", "", "Print only this resource")
	cmd.Flags().String("method", "", "Print only this method of the resource")
	cmd.Flags().String("format", "json", "Output format (json or yaml)")
	return cmd
}

func newVersionsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the documented versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := buildRegistry(v)
			if err != nil {
				return err
			}
			for _, version := range reg.AvailableVersions() {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			}
			return nil
		},
	}
}

// loadConfig reads the settings file, if any, and environment overrides.
func loadConfig(v *viper.Viper) error {
	v.SetEnvPrefix("APIDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("default_version", apidoc.DefaultVersion)
	v.SetDefault("doc_base_url", "/apidoc")
	v.SetDefault("examples_file", apidoc.DefaultExamplesFile)

	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	slog.Debug("loaded config", "file", path)
	return nil
}

// buildRegistry creates a registry from the settings and replays the manifest.
func buildRegistry(v *viper.Viper) (*apidoc.Registry, error) {
	path := v.GetString("manifest")
	if path == "" {
		return nil, fmt.Errorf("--manifest is required")
	}
	m, err := readManifest(path)
	if err != nil {
		return nil, err
	}

	opts := []apidoc.Option{
		apidoc.WithAppName(v.GetString("app_name")),
		apidoc.WithCopyright(v.GetString("copyright")),
		apidoc.WithDefaultVersion(v.GetString("default_version")),
		apidoc.WithDocBaseURL(v.GetString("doc_base_url")),
		apidoc.WithExamplesFile(v.GetString("examples_file")),
		apidoc.WithIgnored(v.GetStringSlice("ignored")...),
		apidoc.WithLogger(slog.Default()),
	}
	if url := v.GetString("api_base_url"); url != "" {
		opts = append(opts, apidoc.WithAPIBaseURL("", url))
	}
	for version, url := range v.GetStringMapString("api_base_urls") {
		opts = append(opts, apidoc.WithAPIBaseURL(version, url))
	}
	for version, info := range v.GetStringMapString("app_info") {
		opts = append(opts, apidoc.WithAppInfo(version, info))
	}
	if v.GetBool("version_in_url") {
		opts = append(opts, apidoc.WithVersionInURL())
	}
	if v.GetBool("semver") {
		opts = append(opts, apidoc.WithSemverOrdering())
	}

	reg := apidoc.New(opts...)
	loader, err := newManifestLoader(m, reg.Tree())
	if err != nil {
		return nil, err
	}
	reg.AddLoader(loader)

	if err := reg.ReloadDocumentation(); err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	return reg, nil
}
