package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kirillkom/customs-intake/internal/bootstrap"
	"github.com/kirillkom/customs-intake/internal/core/domain"
)

var dashboardCommand = &cli.Command{
	Name:  "dashboard",
	Usage: "Show the trader dashboard, or the inspector one with --customs",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "customs", Usage: "Show the customs inspector dashboard"},
	},
	Action: func(c *cli.Context) error {
		return withApp(c, func(ctx context.Context, app *bootstrap.App) error {
			render := newRenderer()
			if c.Bool("customs") {
				d, err := app.Review.CustomsDashboard(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, render.CustomsDashboard(d))
				return nil
			}
			d, err := app.Review.TraderDashboard(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, render.TraderDashboard(d))
			return nil
		})
	},
}

var riskCommand = &cli.Command{
	Name:  "risk",
	Usage: "List risk assessments, or detail one with --declaration",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "declaration", Aliases: []string{"d"}, Usage: "Declaration ID"},
	},
	Action: func(c *cli.Context) error {
		return withApp(c, func(ctx context.Context, app *bootstrap.App) error {
			render := newRenderer()
			if c.IsSet("declaration") {
				a, err := app.Review.RiskAssessment(ctx, c.String("declaration"))
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, render.RiskAssessment(a))
				return nil
			}
			assessments, err := app.Review.RiskAssessments(ctx)
			if err != nil {
				return err
			}
			summary, err := app.Review.RiskSummary(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, render.RiskAssessments(assessments, summary))
			return nil
		})
	},
}

var verificationsCommand = &cli.Command{
	Name:  "verifications",
	Usage: "List documents awaiting verification",
	Action: func(c *cli.Context) error {
		return withApp(c, func(ctx context.Context, app *bootstrap.App) error {
			verifications, err := app.Review.Verifications(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, newRenderer().Verifications(verifications))
			return nil
		})
	},
}

var controlsCommand = &cli.Command{
	Name:  "controls",
	Usage: "List physical controls",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "status", Usage: "scheduled, in_progress, completed or cancelled"},
	},
	Action: func(c *cli.Context) error {
		return withApp(c, func(ctx context.Context, app *bootstrap.App) error {
			status := domain.ControlStatus(strings.ToLower(strings.TrimSpace(c.String("status"))))
			controls, err := app.Review.Controls(ctx, status)
			if err != nil {
				return err
			}
			summary, err := app.Review.ControlSummary(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, newRenderer().Controls(controls, summary))
			return nil
		})
	},
}

var bucketCommand = &cli.Command{
	Name:      "bucket",
	Usage:     "Print the risk level of each score",
	ArgsUsage: "<score>...",
	Action: func(c *cli.Context) error {
		const op = "bucket scores"
		if c.NArg() == 0 {
			return domain.WrapError(domain.ErrInvalidInput, op, errors.New("no score given"))
		}
		render := newRenderer()
		for _, arg := range c.Args().Slice() {
			score, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return domain.WrapError(domain.ErrInvalidInput, op, err)
			}
			fmt.Fprintln(c.App.Writer, render.Bucket(score, domain.BucketRisk(score)))
		}
		return nil
	},
}
