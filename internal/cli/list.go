package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/storefront/internal/catalog"
	"github.com/yildizm/storefront/internal/formatter"
	"github.com/yildizm/storefront/internal/logger"
)

var (
	listCategory   string
	listOutputFile string
	listRetries    int
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the product listing",
		Long: `Load the catalog once and print it.

Without --category every product is listed. The output format follows
--output or the configured default format.

Examples:
  storefront list
  storefront list --category Books
  storefront list -o json --output-file products.json
  storefront list -o csv --category "Gift Boxes"
  storefront list --retries 2`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listCategory, "category", "", "category to list (default: all)")
	cmd.Flags().StringVar(&listOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().IntVar(&listRetries, "retries", 0, "retry network and timeout failures this many times")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	log := logger.NewWithWriter("storefront", isVerbose, cmd.ErrOrStderr())
	loader, err := newLoader(cfg, log)
	if err != nil {
		return err
	}

	filter, err := loader.Categories().Parse(listCategory)
	if err != nil {
		return err
	}

	if listRetries < 0 {
		return fmt.Errorf("--retries must be non-negative")
	}

	listing, err := fetchListing(cmd.Context(), loader, filter, cfg.Cart.CurrencySymbol, listRetries, log)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), !noColor)
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(listing)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(cmd.OutOrStdout(), output)
}

// fetchListing loads filter and packages the result for a formatter.
// Retryable failures are retried up to retries more times.
func fetchListing(ctx context.Context, loader *catalog.Loader, filter catalog.Filter, currency string, retries int, log *logger.Logger) (*formatter.Listing, error) {
	fetchedAt := time.Now()

	var result catalog.Result
	for attempt := 0; ; attempt++ {
		var err error
		result, err = loader.Fetch(ctx, filter)
		if err != nil {
			return nil, err
		}
		if result.OK() || attempt >= retries || !catalog.IsRetryableError(result.Err) {
			break
		}
		log.WarnWithFields("retrying catalog load", []logger.Field{
			logger.F("attempt", attempt+1),
			logger.F("filter", filter),
			logger.Error(result.Err),
		})
	}
	if !result.OK() {
		return nil, fmt.Errorf("%s: %w", result.Err.UserMessage(), result.Err)
	}

	return &formatter.Listing{
		Filter:    result.Filter,
		Source:    loader.Source().Name(),
		Products:  result.Products,
		Currency:  currency,
		FetchedAt: fetchedAt,
		Duration:  result.Duration,
	}, nil
}

// handleOutputDestination writes output to file or out
func handleOutputDestination(out io.Writer, output []byte) error {
	if listOutputFile == "" {
		_, err := out.Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, listOutputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", listOutputFile)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	// Create or truncate the file
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	// Sync to ensure data is written
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
