package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdholdren/pagelinks/pagination"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Print the links for a page",
	Long: `Print the links for one page of a collection.

With --total the links are counted, including last. Without it, --last-page
says whether there is a next page.`,
	Example: `  pagelinks links --url 'https://api.test/v1/servers?region=eu' --page 2 --size 10 --total 5
  pagelinks links --url /v1/servers --page 3 --last-page --format header
  pagelinks links --url /v1/servers --param 'filter[tag]=db' --drop region`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		rawURL, _ := flags.GetString("url")
		page, _ := flags.GetInt("page")
		size, _ := flags.GetInt("size")
		total, _ := flags.GetInt("total")
		lastPage, _ := flags.GetBool("last-page")
		noCount, _ := flags.GetBool("no-count")
		params, _ := flags.GetStringArray("param")
		drops, _ := flags.GetStringArray("drop")
		format, _ := flags.GetString("format")

		state := pagination.State{
			CurrentPage: page,
			Size:        size,
			Total:       pagination.Uncountable,
			LastPage:    lastPage,
		}
		if total >= 0 && !noCount {
			state.Total = pagination.Pages(total)
		}

		links := pagination.Links(state, pagination.Options{
			URL:             rawURL,
			QueryParameters: overlay(params, drops),
			NoCount:         noCount,
		})

		return printLinks(cmd, links, format)
	},
}

// overlay turns key=value pairs into parameters. Keys may use brackets, as in
// filter[tag]=db. Dropped keys are set to nil so they are removed from the
// links.
func overlay(pairs, drops []string) pagination.Params {
	p := pagination.ParseQuery(strings.Join(pairs, "&"))
	for _, key := range drops {
		p[key] = nil
	}

	return p
}

func printLinks(cmd *cobra.Command, links pagination.LinkSet, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		byts, err := links.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding links: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, byts, "", "  "); err != nil {
			return fmt.Errorf("encoding links: %w", err)
		}
		fmt.Fprintln(out, buf.String())
	case "header":
		fmt.Fprintln(out, links.Header())
	case "text":
		for _, l := range links {
			fmt.Fprintf(out, "%-5s  %s\n", l.Rel, l.URL)
		}
	default:
		return fmt.Errorf("unknown format %q: use json, header or text", format)
	}

	return nil
}

func init() {
	linksCmd.Flags().StringP("url", "u", "", "request URL the links are based on")
	linksCmd.Flags().IntP("page", "p", 1, "current page, starting at 1")
	linksCmd.Flags().IntP("size", "s", 20, "page size")
	linksCmd.Flags().IntP("total", "t", -1, "total number of pages, -1 when unknown")
	linksCmd.Flags().Bool("last-page", false, "the current page is the last one (used without --total)")
	linksCmd.Flags().Bool("no-count", false, "ignore --total and build links without counting")
	linksCmd.Flags().StringArray("param", nil, "extra key=value query parameter, repeatable")
	linksCmd.Flags().StringArray("drop", nil, "query parameter to remove from the links, repeatable")
	linksCmd.Flags().StringP("format", "f", "json", "output format: json, header or text")

	rootCmd.AddCommand(linksCmd)
}
