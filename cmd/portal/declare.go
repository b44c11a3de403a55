package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/urfave/cli/v2"

	"github.com/kirillkom/customs-intake/internal/adapters/console"
	"github.com/kirillkom/customs-intake/internal/adapters/tui"
	"github.com/kirillkom/customs-intake/internal/bootstrap"
	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

var fieldFlags = map[string]domain.DraftField{
	"importer": domain.FieldImporter,
	"address":  domain.FieldAddress,
	"regime":   domain.FieldRegime,
	"port":     domain.FieldDischargePort,
	"origin":   domain.FieldOriginCountry,
	"currency": domain.FieldCurrency,
}

var declareCommand = &cli.Command{
	Name:  "declare",
	Usage: "Run the intake wizard on local files and submit the declaration",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "importer", Usage: "Importer name"},
		&cli.StringFlag{Name: "address", Usage: "Importer address"},
		&cli.StringFlag{Name: "regime", Usage: "Customs regime (IM4 or IM7)"},
		&cli.StringFlag{Name: "port", Usage: "Discharge port"},
		&cli.StringFlag{Name: "origin", Usage: "Origin country"},
		&cli.StringFlag{Name: "currency", Usage: "Declaration currency"},
		&cli.StringSliceFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "Document to attach; repeat for several files",
			Required: true,
		},
		&cli.BoolFlag{Name: "no-tui", Usage: "Print tracking progress as plain lines"},
	},
	Action: func(c *cli.Context) error {
		files, err := describeFiles(c.StringSlice("file"))
		if err != nil {
			return err
		}
		fields := make(map[domain.DraftField]string)
		for flag, field := range fieldFlags {
			if c.IsSet(flag) {
				fields[field] = c.String(flag)
			}
		}

		return withApp(c, func(ctx context.Context, app *bootstrap.App) error {
			session, err := app.Intake.Open(ctx)
			if err != nil {
				return err
			}
			defer session.Close()

			out := c.App.Writer
			render := newRenderer()
			decl, err := runIntake(ctx, session, fields, files, out, render)
			if err != nil {
				return err
			}
			return track(ctx, app, decl, out, render, c.Bool("no-tui") || !isTerminal(out))
		})
	},
}

// runIntake drives a wizard from the info step to a submitted declaration,
// printing each step.
func runIntake(
	ctx context.Context,
	wizard ports.IntakeWizard,
	fields map[domain.DraftField]string,
	files []domain.FileDescriptor,
	out io.Writer,
	render *console.Renderer,
) (domain.Declaration, error) {
	for field, value := range fields {
		if err := wizard.UpdateField(ctx, field, value); err != nil {
			return domain.Declaration{}, err
		}
	}
	if err := printStep(ctx, wizard, out, render); err != nil {
		return domain.Declaration{}, err
	}
	draft, err := wizard.Draft(ctx)
	if err != nil {
		return domain.Declaration{}, err
	}
	fmt.Fprintln(out, render.Draft(draft))

	if err := wizard.Advance(ctx); err != nil {
		return domain.Declaration{}, err
	}
	if err := printStep(ctx, wizard, out, render); err != nil {
		return domain.Declaration{}, err
	}
	if err := wizard.AddDocuments(ctx, files...); err != nil {
		return domain.Declaration{}, err
	}
	if err := wizard.Wait(ctx); err != nil {
		return domain.Declaration{}, err
	}
	if draft, err = wizard.Draft(ctx); err != nil {
		return domain.Declaration{}, err
	}
	fmt.Fprintln(out, render.Documents(draft.Documents))

	if err := wizard.Advance(ctx); err != nil {
		return domain.Declaration{}, err
	}
	if err := printStep(ctx, wizard, out, render); err != nil {
		return domain.Declaration{}, err
	}
	if err := wizard.RunEligibilityAnalysis(ctx); err != nil {
		return domain.Declaration{}, err
	}
	if err := wizard.Wait(ctx); err != nil {
		return domain.Declaration{}, err
	}
	if draft, err = wizard.Draft(ctx); err != nil {
		return domain.Declaration{}, err
	}
	fmt.Fprintln(out, render.Eligibility(draft.Eligibility, draft.Currency))

	decl, err := wizard.Submit(ctx)
	if err != nil {
		return domain.Declaration{}, err
	}
	fmt.Fprintln(out, render.Declaration(decl))
	return decl, nil
}

func printStep(ctx context.Context, wizard ports.IntakeWizard, out io.Writer, render *console.Renderer) error {
	step, err := wizard.CurrentStep(ctx)
	if err != nil {
		return err
	}
	phase, err := wizard.Phase(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, render.Step(step, phase))
	return nil
}

func track(ctx context.Context, app *bootstrap.App, decl domain.Declaration, out io.Writer, render *console.Renderer, plain bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stages := app.Tracker.Timeline(decl)
	updates := app.Tracker.Progress(ctx)
	if !plain {
		return tui.RunTracking(ctx, tui.NewTrackingModel(decl.Number, stages, updates))
	}

	fmt.Fprintln(out, render.Timeline(stages))
	for percent := range updates {
		fmt.Fprintln(out, render.Progress(percent))
	}
	return ctx.Err()
}

// describeFiles stats each path for its name, size and MIME type. File
// contents are not read.
func describeFiles(paths []string) ([]domain.FileDescriptor, error) {
	const op = "describe files"
	if len(paths) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, op, errors.New("no file given"))
	}
	files := make([]domain.FileDescriptor, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, op, err)
		}
		if info.IsDir() {
			return nil, domain.WrapError(domain.ErrInvalidInput, op, fmt.Errorf("%s is a directory", path))
		}
		files = append(files, domain.FileDescriptor{
			Name:      filepath.Base(path),
			SizeBytes: info.Size(),
			MimeType:  mime.TypeByExtension(filepath.Ext(path)),
		})
	}
	return files, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
