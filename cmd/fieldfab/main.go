package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fieldfab/internal"
	"fieldfab/internal/catalog"
	"fieldfab/internal/config"
	"fieldfab/internal/pipeline"
	"fieldfab/internal/scrape"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "catalog:populate":
		svc, err := catalog.Default(cfg)
		must(err)
		count, err := svc.EnsurePopulated(context.Background(), cfg.CatalogSources)
		must(err)
		if count == 0 {
			fmt.Println("catalog already populated")
			return
		}
		fmt.Printf("catalog populated: %d products from %d sources\n", count, len(cfg.CatalogSources))
	case "catalog:status":
		svc, err := catalog.Default(cfg)
		must(err)
		populated, err := svc.IsPopulated()
		must(err)
		count, err := svc.Count()
		must(err)
		manufacturers, err := svc.Manufacturers()
		must(err)
		fmt.Printf("populated=%v products=%d manufacturers=%s\n", populated, count, strings.Join(manufacturers, ","))
	case "catalog:clear":
		svc, err := catalog.Default(cfg)
		must(err)
		must(svc.Clear())
		fmt.Println("catalog cleared")
	case "search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		query := fs.String("query", "", "free-text search query")
		limit := fs.Int("limit", cfg.SearchLimit, "max results")
		typeFilter := fs.String("type", "all", "valve|sprinkler|threaded-fitting|coupling|grooved-fitting|other|all")
		manufacturer := fs.String("manufacturer", "all", "manufacturer name or all")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*query) == "" {
			must(fmt.Errorf("--query is required"))
		}

		svc, err := catalog.Default(cfg)
		must(err)
		results, err := svc.Search(*query, *limit)
		must(err)
		results = catalog.FilterByTypeAndManufacturer(results, internal.ProductType(*typeFilter), *manufacturer)
		if len(results) == 0 {
			fmt.Println("no matches")
			return
		}
		for _, r := range results {
			fmt.Printf("%-6d %-12s %-10s %s\n", r.ID, r.Manufacturer, catalog.ClassifyProductType(r.ProductName), r.ProductName)
		}
	case "build":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "text file with one material request per line")
		output := fs.String("output", "", "output path (.xlsx or .csv)")
		project := fs.String("project", "", "project name for the title block")
		company := fs.String("company", "", "company name for the title block")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *output == "" {
			must(fmt.Errorf("--input and --output are required"))
		}

		lines, err := readLines(*input)
		must(err)

		svc, err := catalog.Default(cfg)
		must(err)
		_, err = svc.EnsurePopulated(context.Background(), cfg.CatalogSources)
		must(err)

		builder := pipeline.NewBuilder(svc)
		items, err := builder.BuildMaterialList(lines)
		must(err)
		if len(items) == 0 {
			must(fmt.Errorf("no material lines parsed from %s", *input))
		}

		meta := pipeline.ExportMeta{ProjectName: *project, CompanyName: *company}
		if strings.EqualFold(filepath.Ext(*output), ".csv") {
			must(pipeline.ExportMaterialsToCSV(items, meta, *output))
		} else {
			must(pipeline.ExportMaterialsToXLSX(items, meta, *output))
		}

		matched := 0
		for _, item := range items {
			if item.Matched {
				matched++
			}
		}
		fmt.Printf("material list built: %d items (%d matched) -> %s\n", len(items), matched, *output)
	case "scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		sitemap := fs.String("sitemap", cfg.ScrapeSitemapURL, "products sitemap URL")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "scraped_products.csv"), "output CSV path")
		_ = fs.Parse(os.Args[2:])

		cfg.ScrapeSitemapURL = *sitemap
		scraper := scrape.NewScraper(cfg)
		count, err := scraper.Run(context.Background(), *out)
		must(err)
		fmt.Printf("scrape done: %d products -> %s\n", count, *out)
	default:
		usage()
		os.Exit(1)
	}
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func usage() {
	fmt.Println("usage: fieldfab <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:populate")
	fmt.Println("  catalog:status")
	fmt.Println("  catalog:clear")
	fmt.Println("  search --query=... [--limit=10] [--type=all] [--manufacturer=all]")
	fmt.Println("  build --input=materials.txt --output=./out/list.xlsx [--project=...] [--company=...]")
	fmt.Println("  scrape [--sitemap=...] [--out=./out/scraped_products.csv]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
