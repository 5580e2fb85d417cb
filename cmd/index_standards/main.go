package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"memo-drafting-be/internal/config"
	"memo-drafting-be/internal/repository/specification"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/corpus"
	"memo-drafting-be/pkg/database"
	"memo-drafting-be/pkg/embedding"
	"memo-drafting-be/pkg/retrieval"
)

// Indexes accounting standard PDFs into the shared guidance corpus. Each
// file under the given directory is indexed under the standard id taken from
// its filename, e.g. ifrs.pdf becomes standard "ifrs". Re-running replaces
// the corpus for that standard.
func main() {
	dir := flag.String("dir", "standards", "directory containing <standard_id>.pdf files")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	embedder := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	builder := corpus.NewBuilder(embedder)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read standards directory %s: %v", *dir, err)
	}

	ctx := context.Background()
	indexed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		standardID := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		path := filepath.Join(*dir, e.Name())

		color.Cyan("Indexing %s as standard %q...", e.Name(), standardID)

		data, err := os.ReadFile(path)
		if err != nil {
			color.Red("  read failed: %v", err)
			continue
		}
		if err := corpus.ValidatePDF(data); err != nil {
			color.Red("  not a valid PDF: %v", err)
			continue
		}
		pages, err := corpus.ExtractPages(data)
		if err != nil {
			color.Red("  text extraction failed: %v", err)
			continue
		}

		chunks, err := builder.BuildStandard(ctx, standardID, e.Name(), pages)
		if err != nil {
			color.Red("  embedding failed: %v", err)
			continue
		}

		uow := uowFactory.NewUnitOfWork(ctx)
		if err := uow.Begin(ctx); err != nil {
			color.Red("  begin failed: %v", err)
			continue
		}
		if err := uow.CorpusChunkRepository().DeleteByCorpus(ctx, retrieval.KindStandard, standardID); err != nil {
			_ = uow.Rollback()
			color.Red("  failed to clear previous corpus: %v", err)
			continue
		}
		if err := uow.CorpusChunkRepository().CreateBulk(ctx, chunks); err != nil {
			_ = uow.Rollback()
			color.Red("  failed to persist chunks: %v", err)
			continue
		}
		if err := uow.Commit(); err != nil {
			color.Red("  commit failed: %v", err)
			continue
		}

		count, _ := uowFactory.NewUnitOfWork(ctx).CorpusChunkRepository().Count(ctx,
			specification.ByCorpus{Kind: retrieval.KindStandard, Key: standardID})
		color.Green("  done: %d pages, %d chunks (total in corpus: %d)", len(pages), len(chunks), count)
		indexed++
	}

	if indexed == 0 {
		color.Yellow("No PDF files indexed from %s", *dir)
		return
	}
	color.Green("Indexed %d standard(s).", indexed)
}
