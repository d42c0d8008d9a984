// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caltechlibrary/iga/internal/identifier"
	"github.com/caltechlibrary/iga/internal/license"
	"github.com/caltechlibrary/iga/internal/names"
	"github.com/caltechlibrary/iga/internal/reference"
	"github.com/caltechlibrary/iga/pkg/types"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <text>...",
	Short: "Recognize and normalize persistent identifiers",
	Long: `Identify classifies each argument as a DOI, ORCID, ROR, arXiv id, ISBN,
PMID, Handle or other persistent identifier and prints its scheme and
normalized form. Unrecognized arguments are reported and make the command
fail.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, a := range args {
			id, ok := identifier.Recognize(a)
			if !ok {
				fmt.Fprintf(os.Stdout, "%s\t-\t(not recognized)\n", a)
				failed++
				continue
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", a, id.Scheme, id.Normalized)
		}
		if failed > 0 {
			return badArgs("%d argument(s) not recognized", failed)
		}
		return nil
	},
}

var nameCmd = &cobra.Command{
	Use:   "name <name>...",
	Short: "Classify names as persons or organizations",
	Long: `Name runs each argument through the name resolver and prints the
resulting identity as JSON: a person with given and family names, or an
organization. ORCID and ROR lookups and the LLM classifier are used when
configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetBool("organization")
		p, err := newPipeline(loadConfig(), types.Locator{})
		if err != nil {
			return err
		}
		defer p.Close()

		enc := json.NewEncoder(os.Stdout)
		for _, a := range args {
			id := p.resolver.Resolve(cmd.Context(), names.Name{Raw: a, Organization: org})
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if err := enc.Encode(id); err != nil {
				return err
			}
		}
		return nil
	},
}

var licenseCmd = &cobra.Command{
	Use:   "license <name | spdx-id | url>...",
	Short: "Match license text or URLs to SPDX licenses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		enc := json.NewEncoder(os.Stdout)
		for _, a := range args {
			c := license.Candidate{Text: a}
			if identifier.IsURL(a) {
				c = license.Candidate{URL: a}
			}
			l, ok := license.Resolve([]license.Candidate{c})
			if !ok {
				logger.Warn("no license matches %q", a)
				failed++
				continue
			}
			if err := enc.Encode(l); err != nil {
				return err
			}
		}
		if failed > 0 {
			return badArgs("%d argument(s) not matched", failed)
		}
		return nil
	},
}

var referenceCmd = &cobra.Command{
	Use:   "reference <doi | pmid | pmcid | arxiv | isbn>...",
	Short: "Format reference publications",
	Long: `Reference looks up each identifier in DOI content negotiation, the PubMed
id converter or Open Library and prints an APA-style citation, one per
line. With --csl the bibliographic records are written as CSL-YAML
instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReference,
}

func init() {
	nameCmd.Flags().Bool("organization", false, "treat the names as organizations unless an identifier says otherwise")
	referenceCmd.Flags().Bool("csl", false, "print CSL-YAML records instead of citations")

	rootCmd.AddCommand(identifyCmd, nameCmd, licenseCmd, referenceCmd)
}

func runReference(cmd *cobra.Command, args []string) error {
	csl, _ := cmd.Flags().GetBool("csl")

	ids := make([]identifier.Recognized, 0, len(args))
	for _, a := range args {
		id, ok := identifier.Recognize(a)
		if !ok || !reference.Supported(id) {
			return badArgs("%q is not a DOI, PMID, PMCID, arXiv id or ISBN", a)
		}
		ids = append(ids, id)
	}

	p, err := newPipeline(loadConfig(), types.Locator{})
	if err != nil {
		return err
	}
	defer p.Close()

	if csl {
		items := make([]reference.CSLItem, 0, len(ids))
		for _, id := range ids {
			item, err := p.biblio.LookupBibliographic(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("%s %s: %w", id.Scheme, id.Normalized, err)
			}
			items = append(items, item)
		}
		return reference.WriteCSL(os.Stdout, items)
	}

	var missing []string
	for _, id := range ids {
		text, ok := p.refs.Format(cmd.Context(), id)
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if !ok {
			missing = append(missing, id.Normalized)
			continue
		}
		fmt.Fprintln(os.Stdout, text)
	}
	if len(missing) > 0 {
		return fmt.Errorf("no citation for %s", strings.Join(missing, ", "))
	}
	return nil
}
