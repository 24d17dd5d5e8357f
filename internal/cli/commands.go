package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/intakelog/internal/app"
	"github.com/heartmarshall/intakelog/internal/service/intake"
)

func newInitCommand(flags *globalFlags, term IO) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the intake store if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := flags.openSession(ctx, term)
			if err != nil {
				return err
			}
			defer s.close()

			n, err := s.app.Store.Count(ctx)
			if err != nil {
				return wrapStore(err)
			}

			fmt.Fprintf(term.Out, "store ready (%s): %d records\n", s.cfg.Store.Engine, n)
			return nil
		},
	}
}

func newAddCommand(flags *globalFlags, term IO) *cobra.Command {
	var drinkType string

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Log a drink and print the updated history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := intake.ParseAmount(args[0])
			if err != nil {
				return err
			}

			input := intake.AddInput{Amount: amount}
			if cmd.Flags().Changed("type") {
				input.DrinkType = &drinkType
			}

			ctx := commandContext(cmd)
			s, err := flags.openSession(ctx, term)
			if err != nil {
				return err
			}
			defer s.close()

			rec, err := s.app.Intake.Add(ctx, input)
			if err != nil {
				return wrapStore(err)
			}
			fmt.Fprintf(term.Out, "logged %s %s (#%d)\n\n", formatAmount(rec.Amount), s.app.Intake.Unit(), rec.ID)

			records, err := s.app.Intake.History(ctx, intake.HistoryInput{})
			if err != nil {
				return wrapStore(err)
			}
			return writeHistory(term.Out, records, s.app.Intake.Unit())
		},
	}

	cmd.Flags().StringVarP(&drinkType, "type", "t", "", "Drink type, e.g. water or coffee")
	return cmd
}

func newListCommand(flags *globalFlags, term IO) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the intake history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := intake.HistoryInput{Date: date}
			if err := input.Validate(); err != nil {
				return err
			}

			ctx := commandContext(cmd)
			s, err := flags.openSession(ctx, term)
			if err != nil {
				return err
			}
			defer s.close()

			records, err := s.app.Intake.History(ctx, input)
			if err != nil {
				return wrapStore(err)
			}
			return writeHistory(term.Out, records, s.app.Intake.Unit())
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only show records logged on this date (YYYY-MM-DD)")
	return cmd
}

func newTotalCommand(flags *globalFlags, term IO) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Print the total amount logged on a day (default today)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if err := (intake.HistoryInput{Date: date}).Validate(); err != nil {
					return err
				}
			}

			ctx := commandContext(cmd)
			s, err := flags.openSession(ctx, term)
			if err != nil {
				return err
			}
			defer s.close()

			total, err := s.app.Intake.TotalForDate(ctx, date)
			if err != nil {
				return wrapStore(err)
			}
			fmt.Fprintf(term.Out, "%s: %s %s in %d %s\n",
				total.Date, formatAmount(total.Amount), s.app.Intake.Unit(),
				total.Count, plural(total.Count, "drink", "drinks"))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to total (YYYY-MM-DD)")
	return cmd
}

func newClearCommand(flags *globalFlags, term IO) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole intake history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := flags.openSession(ctx, term)
			if err != nil {
				return err
			}
			defer s.close()

			if !yes {
				ok, err := confirm(term, "Delete all intake records?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(term.Out, "aborted")
					return nil
				}
			}

			deleted, err := s.app.Intake.Clear(ctx)
			if err != nil {
				return wrapStore(err)
			}
			fmt.Fprintf(term.Out, "deleted %d %s\n", deleted, plural(deleted, "record", "records"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newServeCommand(flags *globalFlags, term IO) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			log := app.NewLogger(term.Err, cfg.Log)
			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.Serve(ctx)
		},
	}
}

func newVersionCommand(term IO) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(term.Out, app.BuildVersion())
			return nil
		},
	}
}

// confirm asks a yes/no question on the terminal. Anything but y or yes
// is a no, including end of input.
func confirm(term IO, question string) (bool, error) {
	fmt.Fprintf(term.Out, "%s [y/N]: ", question)

	line, err := bufio.NewReader(term.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(term.Out)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
