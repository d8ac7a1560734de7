package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/finfree/internal/api"
	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/store"
	"github.com/rgehrsitz/finfree/internal/tracker"
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators and the stored state over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.settings.API.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tr, closeStore, err := c.openTracker(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := api.NewServer(c.engine, api.WithTracker(tr), api.WithLogger(c.logger))
			c.logger.WithField("store", tr.Location()).Info("state loaded")
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings, :8080)")
	return cmd
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [ledger-file]",
		Short: "Check a ledger file, or the stored state, for structural problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if len(args) == 1 {
				if _, err := parser.LoadFromFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
				return nil
			}

			st, err := store.New(c.settings.Store)
			if err != nil {
				return err
			}
			defer st.Close()
			state, err := st.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", st.Location(), err)
			}
			if err := parser.ValidateState(state); err != nil {
				return fmt.Errorf("%s: %w", st.Location(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", st.Location())
			return nil
		},
	}
}

func (c *cli) initCmd() *cobra.Command {
	var name string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty state in the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.settings.Store.Driver == config.StoreFile && fileExists(c.settings.Store.Path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.settings.Store.Path)
			}

			st, err := store.New(c.settings.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			tr, err := tracker.Open(cmd.Context(), st, c.engine)
			if err != nil {
				return err
			}
			if force {
				if err := tr.Replace(cmd.Context(), emptyState(name)); err != nil {
					return err
				}
			} else {
				p := tr.State().Personal
				p.Name = name
				if err := tr.SetPersonal(cmd.Context(), p); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", st.Location())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing state")
	return cmd
}

func emptyState(name string) *domain.AppState {
	s := domain.NewAppState()
	s.Personal.Name = name
	return s
}
