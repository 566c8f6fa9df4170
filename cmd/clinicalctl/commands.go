package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"
	"clinical-service/internal/pkg/dto/responses"
	"clinical-service/internal/pkg/exceptions"
	"clinical-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	fhirBaseURL string
	timeout     time.Duration
	verbose     bool
}

func newRootCmd(factory servicesFactory) *cobra.Command {
	opts := rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "clinicalctl",
		Short:         "Operator tool for the clinical data service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.fhirBaseURL, "fhir-base-url", "", "FHIR server base URL (defaults to FHIR_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall command timeout")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log gateway and resolver activity to stderr")

	rootCmd.AddCommand(resolveCmd(&opts, factory))
	rootCmd.AddCommand(listCmd(&opts, factory))
	return rootCmd
}

func resolveCmd(opts *rootOptions, factory servicesFactory) *cobra.Command {
	return &cobra.Command{
		Use:       "resolve <patient|practitioner> <identifier>",
		Short:     "Resolve a personnummer to a FHIR resource id",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"patient", "practitioner"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			svc, err := factory(*opts)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, opts)
			defer cancel()

			resolved, err := svc.Resolver.Resolve(ctx, kind, args[1])
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), responses.ResolvedIdentifier{
				ResourceType: resolved.Kind.String(),
				ID:           resolved.ID,
				Reference:    resolved.Reference(),
			})
		},
	}
}

func listCmd(opts *rootOptions, factory servicesFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "list <conditions|encounters|observations> [personnummer]",
		Short: "List clinical records, optionally for a single patient",
		Args:  cobra.RangeArgs(1, 2),
		ValidArgs: []string{
			constvars.ResourceConditions,
			constvars.ResourceEncounters,
			constvars.ResourceObservations,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := factory(*opts)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, opts)
			defer cancel()

			personnummer := ""
			if len(args) == 2 {
				personnummer = args[1]
			}

			records, err := listRecords(ctx, svc, args[0], personnummer)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), records)
		},
	}
}

func listRecords(ctx context.Context, svc *services, collection, personnummer string) (interface{}, error) {
	switch collection {
	case constvars.ResourceConditions:
		if personnummer != "" {
			return svc.Conditions.FindForPatient(ctx, personnummer), nil
		}
		return svc.Conditions.FindAll(ctx)
	case constvars.ResourceEncounters:
		if personnummer != "" {
			return svc.Encounters.FindForPatient(ctx, personnummer), nil
		}
		return svc.Encounters.FindAll(ctx)
	case constvars.ResourceObservations:
		if personnummer != "" {
			return svc.Observations.FindForPatient(ctx, personnummer), nil
		}
		return svc.Observations.FindAll(ctx)
	default:
		return nil, fmt.Errorf("unknown collection %q, expected one of %s, %s, %s",
			collection, constvars.ResourceConditions, constvars.ResourceEncounters, constvars.ResourceObservations)
	}
}

func parseKind(value string) (models.ResourceKind, error) {
	switch strings.ToLower(value) {
	case "patient":
		return models.KindPatient, nil
	case "practitioner":
		return models.KindPractitioner, nil
	default:
		return "", exceptions.ErrUnsupportedResourceKind(value)
	}
}

func commandContext(cmd *cobra.Command, opts *rootOptions) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	return context.WithTimeout(ctx, opts.timeout)
}

func writeJSON(w io.Writer, value interface{}) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}
