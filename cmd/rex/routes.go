package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rex/internal"
)

func routesCmd() *cobra.Command {
	var (
		file   string
		method string
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes declared in a route file",
		Long: `Load a YAML route file, expand groups and resources, and print
the resulting route table in declaration order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			router := internal.NewRouter()
			if err := internal.LoadRoutesFile(router, os.DirFS(filepath.Dir(file)), filepath.Base(file)); err != nil {
				return err
			}

			routes := router.Routes()
			if method != "" {
				routes = router.RoutesByMethod(method)
			}
			return printRoutes(cmd.OutOrStdout(), routes)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "routes.yaml", "route file")
	cmd.Flags().StringVarP(&method, "method", "m", "", "only list routes for this method")

	return cmd
}

func printRoutes(out io.Writer, routes []internal.RouteDefinition) error {
	if len(routes) == 0 {
		_, err := fmt.Fprintln(out, "No routes.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME\tHANDLER\tMIDDLEWARE")
	for _, r := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Method, r.Path, dash(r.Name), r.HandlerName(), dash(strings.Join(r.Middleware, ",")))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d route(s)\n", len(routes))
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
