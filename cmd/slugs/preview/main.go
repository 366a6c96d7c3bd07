package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-sluggable/cmd/slugs/internal/bootstrap"
	slugscmd "github.com/goliatone/go-sluggable/internal/commands/slugs"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("slugs preview: %v", err)
	}
}

func runPreview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("slugs-preview", flag.ContinueOnError)
	opts := bootstrap.BindFlags(fs)
	environment := fs.String("env", "", "Environment the slug must be unique in")
	attribute := fs.String("attribute", "", "Slug attribute to preview (defaults to the primary slug)")
	text := fs.String("text", "", "Source text to slugify")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	var slug string
	cmd := slugscmd.PreviewSlugCommand{
		Environment: *environment,
		Attribute:   *attribute,
		Text:        *text,
		Result:      &slug,
	}
	if err := module.Module.PreviewHandler().Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute preview command: %w", err)
	}
	fmt.Fprintln(out, slug)
	return nil
}
