package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/syncronet/athletos-web/renderer"
	"github.com/syncronet/athletos-web/site"
	"github.com/syncronet/athletos-web/wpapi"
)

var (
	fetchMarkdown bool
	fetchPerPage  int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Query the CMS and print the normalized records",
	Long: `fetch calls one content operation against the configured CMS and prints
the result as JSON, or as Markdown with --markdown. Failures are not reported
as errors: like the site itself, fetch prints the fallback value.`,
}

func newFetchCommand(use, short string, args cobra.PositionalArgs, run func(ctx context.Context, src site.ContentSource, args []string) any) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := slogctx.NewCtx(cmd.Context(), logger)
			result := run(ctx, newContentClient(appConfig), args)
			return printFetched(cmd.OutOrStdout(), result, fetchMarkdown)
		},
	}
}

func init() {
	fetchCmd.PersistentFlags().BoolVar(&fetchMarkdown, "markdown", false, "print content as Markdown instead of JSON")
	fetchCmd.PersistentFlags().IntVar(&fetchPerPage, "per-page", 0, "page size for list lookups (default 100)")

	fetchCmd.AddCommand(
		newFetchCommand("site", "Resolve the site info", cobra.NoArgs,
			func(ctx context.Context, src site.ContentSource, _ []string) any {
				return src.SiteInfo(ctx)
			}),
		newFetchCommand("front", "Fetch the front page", cobra.NoArgs,
			func(ctx context.Context, src site.ContentSource, _ []string) any {
				return src.FrontPage(ctx)
			}),
		newFetchCommand("page <slug>", "Fetch one page by slug", cobra.ExactArgs(1),
			func(ctx context.Context, src site.ContentSource, args []string) any {
				return src.PageBySlug(ctx, args[0])
			}),
		newFetchCommand("pages", "List published pages", cobra.NoArgs,
			func(ctx context.Context, src site.ContentSource, _ []string) any {
				return src.Pages(ctx, wpapi.ListQuery{PerPage: fetchPerPage, Embed: appConfig.WordPress.Embed})
			}),
		newFetchCommand("posts", "List published posts", cobra.NoArgs,
			func(ctx context.Context, src site.ContentSource, _ []string) any {
				return src.Posts(ctx, wpapi.ListQuery{PerPage: fetchPerPage, Embed: appConfig.WordPress.Embed})
			}),
	)
	rootCmd.AddCommand(fetchCmd)
}

func printFetched(w io.Writer, result any, markdown bool) error {
	if !markdown {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}

	var b strings.Builder
	switch v := result.(type) {
	case wpapi.SiteInfo:
		fmt.Fprintf(&b, "# %s\n", renderer.PlainText(v.Name))
		if desc := renderer.PlainText(v.Description); desc != "" {
			fmt.Fprintf(&b, "\n%s\n", desc)
		}
	case *wpapi.Page:
		if v == nil {
			b.WriteString("(ingen side)\n")
			break
		}
		if err := writePageMarkdown(&b, *v, "#"); err != nil {
			return err
		}
	case []wpapi.Page:
		for i, p := range v {
			if i > 0 {
				b.WriteString("\n")
			}
			if err := writePageMarkdown(&b, p, "##"); err != nil {
				return err
			}
		}
	case []wpapi.Post:
		for i, p := range v {
			if i > 0 {
				b.WriteString("\n")
			}
			if err := writePageMarkdown(&b, wpapi.Page(p), "##"); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("cannot print %T as markdown", result)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePageMarkdown(b *strings.Builder, p wpapi.Page, heading string) error {
	body, err := renderer.Markdown(p.Content)
	if err != nil {
		return fmt.Errorf("convert %s: %w", p.Slug, err)
	}
	fmt.Fprintf(b, "%s %s\n\n", heading, renderer.PlainText(p.Title))
	fmt.Fprintf(b, "slug: %s\n", p.Slug)
	if body = strings.TrimSpace(body); body != "" {
		fmt.Fprintf(b, "\n%s\n", body)
	}
	return nil
}
