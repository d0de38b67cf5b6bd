package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdholdren/pagelinks/client"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List servers from an inventory API",
	Long:  "List servers a page at a time, following the API's next links with --all.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		apiURL, _ := flags.GetString("api")
		page, _ := flags.GetInt("page")
		size, _ := flags.GetInt("size")
		region, _ := flags.GetString("region")
		noCount, _ := flags.GetBool("no-count")
		all, _ := flags.GetBool("all")

		var (
			ctx = cmd.Context()
			out = cmd.OutOrStdout()
			c   = client.New(apiURL, &http.Client{Timeout: 10 * time.Second})
		)

		list, err := c.ListServers(ctx, client.ListServersOptions{
			Page:    client.PageOptions{Number: page, Size: size},
			Region:  region,
			NoCount: noCount,
		})
		if err != nil {
			return fmt.Errorf("listing servers: %w", err)
		}

		for {
			for _, srv := range list.Data {
				fmt.Fprintf(out, "%s\t%s\t%s\n", srv.Name, srv.Region, srv.ID)
			}
			if !all {
				break
			}

			next, ok, err := c.Next(ctx, list)
			if err != nil {
				return fmt.Errorf("following next link: %w", err)
			}
			if !ok {
				break
			}
			list = next
		}

		if !all && len(list.Links) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Link: %s\n", list.Links.Header())
		}

		return nil
	},
}

func init() {
	serversCmd.Flags().String("api", "http://localhost:4444", "base URL of the inventory API")
	serversCmd.Flags().IntP("page", "p", 0, "page to fetch, the API's default when 0")
	serversCmd.Flags().IntP("size", "s", 0, "page size, the API's default when 0")
	serversCmd.Flags().String("region", "", "only list servers in this region")
	serversCmd.Flags().Bool("no-count", false, "ask the API not to count")
	serversCmd.Flags().Bool("all", false, "follow next links until the last page")

	rootCmd.AddCommand(serversCmd)
}
