// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caltechlibrary/iga/internal/record"
	"github.com/caltechlibrary/iga/internal/resolve"
	"github.com/caltechlibrary/iga/pkg/types"
)

var recordCmd = &cobra.Command{
	Use:   "record <release-url | account repo tag>",
	Short: "Build the InvenioRDM record for a GitHub or GitLab release",
	Long: `Record loads the release, the repository, codemeta.json and CITATION.cff
for a tagged GitHub or GitLab release and resolves every record field from
them. The record is written as JSON (or YAML) to stdout or --output.

GitLab release URLs are recognized by their /-/releases/ path. With
GITLAB=true (or gitlab.enabled) an account, repository and tag, or a
release URL on another host, name a release on gitlab.server.

Repository data (topics, languages, contributors, homepage) is only used
when the repository has neither codemeta.json nor CITATION.cff, unless
--all-metadata is given.`,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().Bool("all-metadata", false, "also use repository data when codemeta.json or CITATION.cff exist")
	recordCmd.Flags().String("source-record", "", "use this record file instead of resolving one")
	recordCmd.Flags().StringArray("file", nil, "local file to deposit instead of the release assets (repeatable)")
	recordCmd.Flags().StringP("output", "o", "", "write the record to this file instead of stdout")
	recordCmd.Flags().String("format", record.FormatJSON, "output format: json or yaml")
	recordCmd.Flags().String("cache", "", "lookup cache file (default in the user cache directory)")
	recordCmd.Flags().Bool("offline", false, "skip ORCID, ROR and bibliographic lookups")
	recordCmd.Flags().String("codemeta", "", "read codemeta.json from this local file")
	recordCmd.Flags().String("cff", "", "read CITATION.cff from this local file")

	_ = viper.BindPFlag("record.all_metadata", recordCmd.Flags().Lookup("all-metadata"))
	_ = viper.BindPFlag("lookup.offline", recordCmd.Flags().Lookup("offline"))
	_ = viper.BindPFlag("lookup.cache", recordCmd.Flags().Lookup("cache"))

	rootCmd.AddCommand(recordCmd)
}

// parseRelease accepts a release URL or the three parts of a locator.
// With GitLab enabled, the parts and URLs off github.com name a release
// on the GitLab server.
func parseRelease(args []string, gl types.GitLabConfig) (types.Locator, error) {
	var loc types.Locator
	switch len(args) {
	case 1:
		var err error
		if loc, err = types.ParseLocator(args[0]); err != nil {
			return types.Locator{}, badArgs("%v", err)
		}
		if gl.Enabled && loc.Host != "" {
			loc.Forge = types.ForgeGitLab
		}
	case 3:
		for _, a := range args {
			if strings.TrimSpace(a) == "" {
				return types.Locator{}, badArgs("account, repository and tag must not be empty")
			}
		}
		loc = types.Locator{Account: args[0], Repo: args[1], Tag: args[2]}
		if gl.Enabled {
			loc.Forge = types.ForgeGitLab
			if !strings.EqualFold(gl.Server, "gitlab.com") {
				loc.Host = gl.Server
			}
		}
	default:
		return types.Locator{}, badArgs("expected a release URL or an account, repository and tag; got %d argument(s)", len(args))
	}
	return loc, nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	loc, err := parseRelease(args, cfg.GitLab)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != record.FormatJSON && format != record.FormatYAML {
		return badArgs("unknown format %q (want json or yaml)", format)
	}

	override, _ := cmd.Flags().GetString("source-record")
	files, _ := cmd.Flags().GetStringArray("file")
	codemeta, _ := cmd.Flags().GetString("codemeta")
	cff, _ := cmd.Flags().GetString("cff")
	output, _ := cmd.Flags().GetString("output")

	p, err := newPipeline(cfg, loc)
	if err != nil {
		return err
	}
	defer p.Close()

	res, err := p.engine.BuildRecord(cmd.Context(), resolve.Request{
		Locator:            loc,
		OverrideRecordPath: override,
		AllSources:         cfg.Record.AllMetadata,
		Files:              files,
		CodeMetaPath:       codemeta,
		CFFPath:            cff,
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Verbose("%v", w)
	}
	for _, f := range res.Files {
		where := f.URL
		if f.Path != "" {
			where = f.Path
		}
		logger.Info("file: %s (%s)", f.Name, where)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		out, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer out.Close()
		w = out
	}
	if err := record.Write(w, res.Record, format); err != nil {
		return err
	}
	if output != "" {
		logger.Info("wrote record to %s", output)
	}
	return nil
}
