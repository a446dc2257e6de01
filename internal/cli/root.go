// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/kwregex

// Package cli implements the kwregex command line.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/woozymasta/kwregex"
)

// Keys can be used to retrieve values from the viper instance bound to the
// root command flags, config file and environment.
const (
	KeyConfig       = "config"        // string
	KeyDebug        = "debug"         // bool
	KeyInputs       = "inputs"        // []string, config/env only
	KeyInclude      = "include"       // string
	KeyExclude      = "exclude"       // string
	KeyCollapse     = "collapse"      // []string
	KeyRules        = "rules"         // []string
	KeyDest         = "dest"          // string
	KeyDumpPatterns = "dump-patterns" // bool
	KeyFormat       = "format"        // string
	KeyTestListing  = "test-listing"  // string
	KeySuffix       = "suffix"        // string
	KeyScopeName    = "scope-name"    // string
	KeyGrammarName  = "grammar-name"  // string
	KeyFileTypes    = "file-types"    // []string
)

// DefaultInputFile is used when no input is given on the command line or in config.
const DefaultInputFile = "builtins.yaml"

// EnvPrefix prefixes environment variables bound to flags.
const EnvPrefix = "kwregex"

const listingPrologue = "# This file is generated by kwregex.\n" +
	"# It contains a list of all symbols and may be used to test the generated patterns work.\n"

// errNoInputs is returned when the resolved input list is empty.
var errNoInputs = errors.New("no input files given: nothing to do")

// Execute runs the root command and exits with non-zero status on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// New creates the root command with its own viper instance and logger.
func New() *cobra.Command {
	vp := viper.New()
	log := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "kwregex [flags] [input...]",
		Short: "Build keyword highlighting patterns from categorized identifier lists",
		Long: "kwregex reads nested categories of identifiers from YAML or JSON files and " +
			"builds one compact case-insensitive regular expression per category.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, vp, log)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, vp, log, args)
		},
	}

	addFlags(rootCmd.Flags())

	// Use Viper so every flag can also come from config file or environment.
	_ = vp.BindPFlags(rootCmd.Flags())
	vp.SetDefault(KeyInputs, []string{DefaultInputFile})
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	return rootCmd
}

// addFlags registers root command flags.
func addFlags(flags *pflag.FlagSet) {
	flags.String(KeyConfig, "", "Optional config file")
	flags.BoolP(KeyDebug, "D", false, "Enable debug messages")
	flags.String(KeyInclude, "", "Regexp every category path must match")
	flags.String(KeyExclude, "", "Regexp category paths must not match")
	flags.StringSlice(KeyCollapse, nil, "Category paths whose descendants are folded into the path itself")
	flags.StringSlice(KeyRules, nil, "Files with gitignore-like category path rules")
	flags.String(KeyDest, "", "Grammar document to update (patterns are merged when it exists)")
	flags.Bool(KeyDumpPatterns, false, "Write generated patterns to stdout")
	flags.String(KeyFormat, string(kwregex.FormatYAML), "Pattern dump format: yaml or json")
	flags.String(KeyTestListing, "", "Write identifier listing for testing patterns to this file")
	flags.String(KeySuffix, kwregex.DefaultSuffix, "Suffix appended to category names")
	flags.String(KeyScopeName, kwregex.DefaultScopeName, "Scope name of a newly created grammar document")
	flags.String(KeyGrammarName, kwregex.DefaultGrammarName, "Name of a newly created grammar document")
	flags.StringSlice(KeyFileTypes, nil, "File types of a newly created grammar document")
}

// initConfig reads optional config file and configures logging.
func initConfig(cmd *cobra.Command, vp *viper.Viper, log *logrus.Logger) error {
	log.SetOutput(cmd.ErrOrStderr())

	if cfgFile := vp.GetString(KeyConfig); cfgFile != "" {
		vp.SetConfigFile(cfgFile)
		if err := vp.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	if vp.GetBool(KeyDebug) {
		log.SetLevel(logrus.DebugLevel)
		log.WithField("config", vp.ConfigFileUsed()).Debug("Debug logging enabled")
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return nil
}

func run(cmd *cobra.Command, vp *viper.Viper, log *logrus.Logger, args []string) error {
	inputs := args
	if len(inputs) == 0 {
		inputs = vp.GetStringSlice(KeyInputs)
	}

	if len(inputs) == 0 {
		return errNoInputs
	}

	format, err := kwregex.ParseFormat(vp.GetString(KeyFormat))
	if err != nil {
		return err
	}

	policy, err := buildPolicy(vp, log)
	if err != nil {
		return err
	}

	sources, err := kwregex.LoadSourceFiles(inputs...)
	if err != nil {
		return err
	}

	cats, warnings := kwregex.ClassifySources(sources, policy)
	for _, w := range warnings {
		log.WithFields(logrus.Fields{
			"source": w.Source,
			"path":   w.Path,
		}).Warnf("Ignoring %s", w.Kind)
	}

	records := kwregex.Assemble(cats, vp.GetString(KeySuffix))
	log.WithFields(logrus.Fields{
		"inputs":     len(inputs),
		"categories": len(records),
	}).Debug("Patterns assembled")

	dest := vp.GetString(KeyDest)
	listing := vp.GetString(KeyTestListing)
	dump := vp.GetBool(KeyDumpPatterns) || (dest == "" && listing == "")

	if dump {
		if err := kwregex.WritePatterns(cmd.OutOrStdout(), records, format); err != nil {
			return err
		}
	}

	if dest != "" {
		if err := writeDest(vp, log, dest, records); err != nil {
			return err
		}
	}

	if listing != "" {
		var buf bytes.Buffer
		if err := kwregex.WriteListing(&buf, cats, listingPrologue); err != nil {
			return err
		}

		if err := os.WriteFile(listing, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write test listing: %w", err)
		}

		log.WithField("file", listing).Info("Test listing written")
	}

	return nil
}

// buildPolicy compiles filter and collapse configuration before classification.
func buildPolicy(vp *viper.Viper, log *logrus.Logger) (kwregex.Policy, error) {
	opts := kwregex.PolicyOptions{
		Include:  vp.GetString(KeyInclude),
		Exclude:  vp.GetString(KeyExclude),
		Collapse: vp.GetStringSlice(KeyCollapse),
		OnSkip: func(path string, d kwregex.Decision) {
			log.WithFields(logrus.Fields{
				"path":   path,
				"reason": d.Reason,
			}).Debug("Skipping category")
		},
	}

	if files := vp.GetStringSlice(KeyRules); len(files) > 0 {
		rules, err := kwregex.LoadRulesFiles(files...)
		if err != nil {
			return kwregex.Policy{}, err
		}

		opts.Rules = rules
	}

	return kwregex.NewPolicy(opts)
}

// writeDest merges records into existing grammar document or creates a new one.
func writeDest(vp *viper.Viper, log *logrus.Logger, dest string, records []kwregex.PatternRecord) error {
	format := formatForPath(dest)

	existing, err := os.ReadFile(dest)
	switch {
	case err == nil:
		merged, err := kwregex.MergePatterns(existing, records, format)
		if err != nil {
			return fmt.Errorf("merge into %s: %w", dest, err)
		}

		if err := os.WriteFile(dest, merged, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}

		log.WithField("file", dest).Info("Patterns merged into grammar")
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read %s: %w", dest, err)
	}

	var buf bytes.Buffer
	err = kwregex.WriteGrammar(&buf, kwregex.GrammarOptions{
		ScopeName: vp.GetString(KeyScopeName),
		Name:      vp.GetString(KeyGrammarName),
		FileTypes: vp.GetStringSlice(KeyFileTypes),
		Format:    format,
	}, records)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	log.WithField("file", dest).Info("Grammar written")
	return nil
}

// formatForPath picks JSON for ".json" files and YAML otherwise.
func formatForPath(path string) kwregex.Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return kwregex.FormatJSON
	}

	return kwregex.FormatYAML
}
