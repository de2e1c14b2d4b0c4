package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/reactiveparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	packageKey = "package"
	typeKey    = "type"
	fieldKey   = "field"
	outKey     = "out"
	importKey  = "import"
	checkKey   = "check"
	forceKey   = "force"
)

func main() {
	cmd := &cli.Command{
		Name:  "codegen",
		Usage: "Generate typed accessors over a tracked record",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     packageKey,
				Usage:    "Package of the generated file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     typeKey,
				Usage:    "Name of the generated accessor type",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     fieldKey,
				Usage:    "Record field as name:type, repeatable",
				Required: true,
			},
			&cli.StringFlag{
				Name:     outKey,
				Usage:    "File to write",
				Required: true,
			},
			&cli.StringFlag{
				Name:  importKey,
				Usage: "Import path of the reactivity package",
				Value: templates.DefaultImport,
			},
			&cli.BoolFlag{
				Name:  checkKey,
				Usage: "Fail with a diff instead of writing when the file is out of date",
			},
			&cli.BoolFlag{
				Name:  forceKey,
				Usage: "Overwrite a generated file even if it was edited by hand",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for %s started !", cmd.String(typeKey))
	defer func() {
		log.Printf("Codegen for %s finished in %v", cmd.String(typeKey), time.Since(start))
	}()

	cfg := &templates.Config{
		Package: cmd.String(packageKey),
		Type:    cmd.String(typeKey),
		Import:  cmd.String(importKey),
	}
	for _, s := range cmd.StringSlice(fieldKey) {
		f, err := templates.ParseField(s)
		if err != nil {
			return err
		}
		cfg.Fields = append(cfg.Fields, f)
	}

	contents, err := render(cfg)
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Type, err)
	}

	out := cmd.String(outKey)
	if cmd.Bool(checkKey) {
		if err := checkGenerated(out, contents); err != nil {
			return err
		}
		log.Printf("%s is up to date", out)
		return nil
	}

	changed, err := writeGenerated(out, contents, cmd.Bool(forceKey))
	if err != nil {
		return err
	}
	if !changed {
		log.Printf("%s unchanged", out)
	}
	return nil
}
