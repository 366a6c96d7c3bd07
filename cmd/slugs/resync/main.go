package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-sluggable/cmd/slugs/internal/bootstrap"
	"github.com/goliatone/go-sluggable/internal/articles"
	slugscmd "github.com/goliatone/go-sluggable/internal/commands/slugs"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runResync(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("slugs resync: %v", err)
	}
}

func runResync(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("slugs-resync", flag.ContinueOnError)
	opts := bootstrap.BindFlags(fs)
	environment := fs.String("env", "", "Only resync articles in this environment")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	var result articles.ResyncResult
	cmd := slugscmd.ResyncSlugsCommand{
		Environment: *environment,
		Result:      &result,
	}
	if err := module.Module.ResyncHandler().Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute resync command: %w", err)
	}
	fmt.Fprintf(out, "scanned=%d updated=%d\n", result.Scanned, result.Updated)
	return nil
}
