package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/config"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/ingest"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/internalerr"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/rank"
	"github.com/JoeyNicolas/NRIS-Studyier-Project/pkg/analyzer/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
		query      = flag.String("query", "", "One-shot search query (non-interactive mode)")
		ingestPath = flag.String("ingest", "", "One-shot document ingestion (non-interactive mode)")
		topN       = flag.Int("topn", 0, "Number of search results to return")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *topN > 0 {
		cfg.TopN = *topN
	}

	ctx := context.Background()

	svc, cleanup, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// One-shot modes
	if *ingestPath != "" {
		if err := svc.ProcessDocument(ctx, *ingestPath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Successfully processed %s\n", *ingestPath)
		return
	}
	if *query != "" {
		runSearch(ctx, svc, *query, cfg.TopN)
		return
	}

	runMenu(ctx, svc, cfg.TopN)
}

func buildAnalyzer(ctx context.Context, cfg config.Config) (*analyzer.Analyzer, func(), error) {
	st, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	tokenizer := ingest.NewTokenizer(ingest.DefaultStopwords)
	for _, w := range cfg.ExtraStopwords {
		tokenizer.AddStopword(w)
	}

	svc := analyzer.New(analyzer.Options{
		Store:     st,
		Tokenizer: tokenizer,
		TopN:      cfg.TopN,
	})
	return svc, func() { svc.Close() }, nil
}

func runMenu(ctx context.Context, svc *analyzer.Analyzer, topN int) {
	fmt.Println("PDF Text Analyzer with Term Frequency Database")
	fmt.Println(strings.Repeat("=", 50))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\nOptions:")
		fmt.Println("1. Process a document")
		fmt.Println("2. Search documents")
		fmt.Println("3. List all documents")
		fmt.Println("4. Get document statistics")
		fmt.Println("5. Delete a document")
		fmt.Println("6. Exit")

		choice := prompt(scanner, "\nEnter your choice (1-6): ")

		switch choice {
		case "1":
			path := prompt(scanner, "Enter the path to the document: ")
			if err := svc.ProcessDocument(ctx, path); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Successfully processed %s\n", path)

		case "2":
			query := prompt(scanner, "Enter your search query: ")
			runSearch(ctx, svc, query, topN)

		case "3":
			listDocuments(ctx, svc)

		case "4":
			filename := prompt(scanner, "Enter the filename: ")
			showStats(ctx, svc, filename)

		case "5":
			filename := prompt(scanner, "Enter the filename: ")
			if err := svc.RemoveDocument(ctx, filename); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Deleted %s\n", filename)

		case "6", "":
			fmt.Println("Goodbye!")
			return

		default:
			fmt.Println("Invalid choice. Please enter 1-6.")
		}
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func runSearch(ctx context.Context, svc *analyzer.Analyzer, query string, topN int) {
	results, err := svc.Search(ctx, query, topN)
	if err != nil {
		if errors.Is(err, internalerr.ErrEmptyQuery) {
			fmt.Println("No valid search terms found in query.")
			return
		}
		fmt.Println("Error:", err)
		return
	}

	if len(results) == 0 {
		fmt.Println("No matching documents found.")
		return
	}

	fmt.Printf("\nTop %d matching documents for %q:\n", len(results), query)
	fmt.Println(strings.Repeat("-", 60))
	printResults(results)
}

func printResults(results []rank.Result) {
	for i, r := range results {
		fmt.Printf("%2d. %s (Score: %.4f)\n", i+1, r.Filename, r.Score)
	}
}

func listDocuments(ctx context.Context, svc *analyzer.Analyzer) {
	docs, err := svc.ListDocuments(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(docs) == 0 {
		fmt.Println("No documents in database")
		return
	}

	fmt.Println("\nDocuments in database:")
	fmt.Println(strings.Repeat("-", 50))
	for _, d := range docs {
		fmt.Printf("%s (%d words)\n", d.Filename, d.WordCount)
	}
}

func showStats(ctx context.Context, svc *analyzer.Analyzer, filename string) {
	st, err := svc.Stats(ctx, filename)
	if err != nil {
		if errors.Is(err, internalerr.ErrNotFound) {
			fmt.Printf("Document %q not found in database\n", filename)
			return
		}
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("\nDocument: %s\n", st.Filename)
	fmt.Printf("Total words: %d\n", st.WordCount)
	fmt.Printf("Unique terms: %d\n", st.UniqueTerms)
	fmt.Printf("Revision: %s\n", st.RevisionID)
	fmt.Printf("Content preview: %s...\n", st.Preview)

	fmt.Println("\nTop 10 most frequent terms:")
	for _, te := range st.TopTerms {
		fmt.Printf("  %s: %d times (TF: %.4f)\n", te.Term, te.Frequency, te.TFScore)
	}
}
