package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/display"
	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/export"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
	"github.com/honeycarbs/course-aggregator/pkg/sftpclient"
)

type searchOptions struct {
	skills      []string
	limit       int
	sortBy      string
	filters     []string
	minPrice    float64
	maxPrice    float64
	hasMin      bool
	hasMax      bool
	jsonOut     bool
	interactive bool
	csvPath     string
	sftp        bool
}

// newSearchCmd creates the search subcommand.
func newSearchCmd(factory serviceFactory) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search courses by skill",
		Long:  "Search every configured provider for courses teaching the given skills. Each provider's results are filtered and ranked on their own.",
		Example: `  coursesearch search --skills python,"machine learning" --sort rating
  coursesearch search --skills go --filter language=English --max-price 50 --csv go.csv
  coursesearch search --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasMin = cmd.Flags().Changed("min-price")
			opts.hasMax = cmd.Flags().Changed("max-price")

			if opts.interactive {
				if err := promptOptions(cmd.InOrStdin(), cmd.OutOrStdout(), opts); err != nil {
					return err
				}
			}

			req, err := buildRequest(opts)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			log := logging.New(cfg.LogLevel, logging.WithConsole())
			defer func() { _ = log.Sync() }()

			svc, err := factory(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ProviderTimeout+5*time.Second)
			defer cancel()

			resp, err := svc.Search(ctx, req)
			if err != nil {
				return err
			}

			if err := render(cmd.OutOrStdout(), resp, opts.jsonOut); err != nil {
				return err
			}

			return writeExports(ctx, cmd.ErrOrStderr(), cfg, resp, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.skills, "skills", "s", nil, "Skills to search for (comma separated or repeated)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 5, "Maximum courses per provider")
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "Rank each provider by price, rating or reviews (descending)")
	cmd.Flags().StringArrayVarP(&opts.filters, "filter", "f", nil, "Exact-match filter field=value (repeatable)")
	cmd.Flags().Float64Var(&opts.minPrice, "min-price", 0, "Inclusive minimum numeric price")
	cmd.Flags().Float64Var(&opts.maxPrice, "max-price", 0, "Inclusive maximum numeric price")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the aggregated response as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for skills, max price, sort and language")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "Also write courses to this CSV file")
	cmd.Flags().BoolVar(&opts.sftp, "sftp", false, "Upload the CSV to the configured SFTP server")

	return cmd
}

func buildRequest(opts *searchOptions) (domain.SearchRequest, error) {
	filters, err := parseFilters(opts.filters)
	if err != nil {
		return domain.SearchRequest{}, err
	}

	var skills []string
	for _, s := range opts.skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	req := domain.SearchRequest{
		Skills:           skills,
		LimitPerProvider: opts.limit,
		SortBy:           domain.SortKey(strings.ToLower(strings.TrimSpace(opts.sortBy))),
		Filters:          filters,
	}

	var lo, hi *float64
	if opts.hasMin {
		lo = &opts.minPrice
	}
	if opts.hasMax {
		hi = &opts.maxPrice
	}
	req.PriceRange = domain.NewPriceRange(lo, hi)

	return req, nil
}

// parseFilters turns field=value pairs into typed filter values
func parseFilters(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q: want field=value", pair)
		}
		filters[field] = parseFilterValue(strings.TrimSpace(value))
	}
	return filters, nil
}

// parseFilterValue reads booleans and finite numbers; quoted values stay strings
func parseFilterValue(v string) any {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	if b, err := strconv.ParseBool(v); err == nil && (v == "true" || v == "false") {
		return b
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return v
}

func promptOptions(in io.Reader, out io.Writer, opts *searchOptions) error {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	if line := ask("Skills (comma separated): "); line != "" {
		opts.skills = strings.Split(line, ",")
	}
	if line := ask("Max price (blank for any): "); line != "" {
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return fmt.Errorf("invalid max price %q", line)
		}
		opts.maxPrice, opts.hasMax = v, true
	}
	if line := ask("Sort by price, rating or reviews (blank for none): "); line != "" {
		opts.sortBy = line
	}
	if line := ask("Language (blank for any): "); line != "" {
		opts.filters = append(opts.filters, "language="+strconv.Quote(line))
	}
	return scanner.Err()
}

func render(w io.Writer, resp domain.AggregatedResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	_, err := fmt.Fprint(w, display.NewTerminalFormatter().FormatResponse(resp))
	return err
}

func writeExports(ctx context.Context, status io.Writer, cfg config.Config, resp domain.AggregatedResponse, opts *searchOptions) error {
	if opts.csvPath == "" && !opts.sftp {
		return nil
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, resp); err != nil {
		return fmt.Errorf("csv: %w", err)
	}

	remoteName := fmt.Sprintf("courses-%s.csv", time.Now().UTC().Format("20060102-150405"))
	if opts.csvPath != "" {
		if err := os.WriteFile(opts.csvPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		fmt.Fprintf(status, "CSV written to %s\n", opts.csvPath)
	}

	if !opts.sftp {
		return nil
	}
	if !cfg.SFTPEnabled() {
		return fmt.Errorf("sftp: SFTP_HOST is not set")
	}

	remotePath, err := sftpclient.Upload(ctx, sftpclient.Config{
		Host:           cfg.SFTP.Host,
		Port:           cfg.SFTP.Port,
		User:           cfg.SFTP.User,
		Pass:           cfg.SFTP.Pass,
		RemoteDir:      cfg.SFTP.RemoteDir,
		KnownHostsFile: cfg.SFTP.KnownHosts,
	}, &buf, remoteName)
	if err != nil {
		return err
	}
	fmt.Fprintf(status, "CSV uploaded to %s:%s\n", cfg.SFTP.Host, remotePath)
	return nil
}
