package main

import (
	"eventual/internal/app/deps"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	"eventual/internal/core/domain/expression"
	checkmembership "eventual/internal/core/services/check_membership"
	resolveexpression "eventual/internal/core/services/resolve_expression"
	"eventual/internal/implementations/logging"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type expressionFlags struct {
	language string
	year     int
}

func (f *expressionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "lang", "l", string(expression.DefaultLanguage), "language of the expression")
	cmd.Flags().IntVarP(&f.year, "year", "y", 0, "year for expressions that do not name one, current year when 0")
}

func (f *expressionFlags) options() (expression.Language, c.Optional[int], error) {
	lang, err := expression.ParseLanguage(f.language)
	if err != nil {
		return "", c.Optional[int]{}, err
	}
	return lang, c.NewOptional(f.year, f.year != 0), nil
}

func newRootCommand(now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventual",
		Short:         "Resolve natural language date expressions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCommand(), newResolveCommand(now), newContainsCommand(now))
	return root
}

func newResolveCommand(now func() time.Time) *cobra.Command {
	flags := &expressionFlags{}
	var limit int
	cmd := &cobra.Command{
		Use:   "resolve <text>",
		Short: "Print every date the expression denotes, one per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, year, err := flags.options()
			if err != nil {
				return err
			}
			service := resolveexpression.New(quietLogger(), deps.NewParser(now), limit)
			result, err := service.Run(cmd.Context(), resolveexpression.Input{
				Query:       strings.Join(args, " "),
				Language:    lang,
				DefaultYear: year,
			})
			if err != nil {
				return err
			}
			for _, v := range result.Values {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			if result.Truncated {
				fmt.Fprintf(cmd.ErrOrStderr(), "output truncated after %d values\n", limit)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 10000, "maximum number of values to print, 0 for no limit")
	return cmd
}

func newContainsCommand(now func() time.Time) *cobra.Command {
	flags := &expressionFlags{}
	var spanMinutes int
	cmd := &cobra.Command{
		Use:   "contains <text> <value>",
		Short: "Print whether a date or timestamp belongs to the expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, year, err := flags.options()
			if err != nil {
				return err
			}
			at, err := calendar.ParseValue(args[1])
			if err != nil {
				return err
			}
			service := checkmembership.New(quietLogger(), deps.NewParser(now))
			result, err := service.Run(cmd.Context(), checkmembership.Input{
				Query:       args[0],
				Language:    lang,
				DefaultYear: year,
				EventSpan:   time.Duration(spanMinutes) * time.Minute,
				At:          at,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Contains)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&spanMinutes, "span", int(expression.DefaultEventSpan/time.Minute), "event span in minutes")
	return cmd
}

func quietLogger() *logging.ZapLogger {
	return logging.NewZapLoggerFrom(zap.NewNop())
}
