package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tidemark/linelog/internal/catalog"
	"github.com/tidemark/linelog/internal/config"
	"github.com/tidemark/linelog/internal/logstore"
	"github.com/tidemark/linelog/internal/meta"
	"github.com/tidemark/linelog/internal/observability"
)

func usage() {
	fmt.Println("Usage: logctl <append|query|compact> -store <name> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  append  -store <name> [-raw] <message>")
	fmt.Println("  query   -store <name> [-content <substring>] [-date <DD/MM/YYYY[ HH:MM:SS.mmm]>]")
	fmt.Println("  compact -store <name>")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.LogLevel)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load store catalog")
	}

	switch os.Args[1] {
	case "append":
		runAppend(cat, os.Args[2:])
	case "query":
		runQuery(cat, os.Args[2:])
	case "compact":
		runCompact(cfg, cat, os.Args[2:])
	default:
		usage()
	}
}

func openStore(cat *catalog.Catalog, name string, extra ...logstore.Option) *logstore.Store {
	if name == "" {
		log.Fatal().Msg("-store is required")
	}
	store, err := cat.Open(name, extra...)
	if err != nil {
		log.Fatal().Err(err).Str("store", name).Msg("Failed to open store")
	}
	return store
}

func runAppend(cat *catalog.Catalog, args []string) {
	fs := flag.NewFlagSet("append", flag.ExitOnError)
	name := fs.String("store", "", "store name from the catalog")
	raw := fs.Bool("raw", false, "write verbatim (effective only on stores with auto_format: false)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		log.Fatal().Msg("append expects exactly one message argument")
	}

	store := openStore(cat, *name)
	defer store.Close()

	res := store.LogWith(fs.Arg(0), !*raw)
	if err := res.Wait(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Append failed")
	}
}

func runQuery(cat *catalog.Catalog, args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	name := fs.String("store", "", "store name from the catalog")
	content := fs.String("content", "", "keep entries containing this substring")
	date := fs.String("date", "", "keep entries containing this date text")
	fs.Parse(args)

	store := openStore(cat, *name)
	defer store.Close()

	entries, err := store.Query(context.Background(), logstore.QueryOptions{
		Content: *content,
		Date:    *date,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Query failed")
	}
	for _, e := range entries {
		fmt.Println(e)
	}
}

func runCompact(cfg *config.Config, cat *catalog.Catalog, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	name := fs.String("store", "", "store name from the catalog")
	fs.Parse(args)

	var extra []logstore.Option
	if cfg.MetaDBPath != "" {
		journal, err := meta.NewBoltJournal(cfg.MetaDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open compaction journal")
		}
		defer journal.Close()
		extra = append(extra, logstore.WithRecorder(journal))
	}

	store := openStore(cat, *name, extra...)
	defer store.Close()

	if err := store.CleanUp().Wait(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Compaction failed")
	}
	log.Info().Str("store", *name).Msg("Store compacted")
}
