package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/orgdir"
	"github.com/poiesic/orgdir/dataset"
	"github.com/poiesic/orgdir/seed"
)

var (
	seedFileName = flag.String("src", "", "YAML file of seed companies (default: built-in dataset)")
	dbPath       = flag.String("db", "./orgdir_db", "path to the BadgerDB directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	var opts []orgdir.DirectoryOption
	if seedFileName != nil && *seedFileName != "" {
		ds, err := dataset.LoadFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		opts = append(opts, orgdir.WithDataset(ds))
	}

	dir, err := orgdir.NewDirectory(*dbPath, opts...)
	if err != nil {
		panic(err)
	}
	defer dir.Close()

	seeder, err := dir.NewSeeder(seed.WithProgress(os.Stderr, 10))
	if err != nil {
		panic(err)
	}
	defer seeder.Release()

	result := seeder.Seed(context.Background())
	fmt.Println(result.Message)
	for _, name := range result.Failed {
		fmt.Printf("failed: %s\n", name)
	}
	if !result.Success {
		os.Exit(1)
	}
}
