package formctl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	platformgrpc "github.com/louisbranch/formrelay/internal/platform/grpc"
	"github.com/louisbranch/formrelay/internal/platform/requestctx"
	"github.com/louisbranch/formrelay/internal/services/gateway/formclient"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// errNotAccepted makes formctl exit non-zero when the service answered ERROR.
var errNotAccepted = errors.New("submission not accepted")

// envelopeOutput is the printed form of a reply envelope.
type envelopeOutput struct {
	Status    string `json:"status" yaml:"status"`
	Message   string `json:"message" yaml:"message"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Outcome   string `json:"outcome" yaml:"outcome"`
}

func toOutput(result formclient.Result) envelopeOutput {
	return envelopeOutput{
		Status:    result.Envelope.GetStatus(),
		Message:   result.Envelope.GetMessage(),
		Timestamp: result.Envelope.GetTimestamp(),
		Outcome:   string(result.Outcome),
	}
}

func newSubmitCommand(opts *options) *cobra.Command {
	var in formclient.Submission
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one form",
		Example: `  formctl submit --first-name Ana --last-name Diaz --age 30 --email ana@example.com
  formctl submit --lang es --first-name "" --last-name Diaz --age 30 --email a@b.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := opts.withLocale(cmd.Context())
			if err != nil {
				return err
			}
			client, conn, err := opts.connect()
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx = requestctx.WithRequestID(ctx, requestctx.NewRequestID())
			result := client.Submit(ctx, in)
			if err := opts.print(toOutput(result)); err != nil {
				return err
			}
			if result.Outcome != formclient.OutcomeAccepted {
				return errNotAccepted
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().Int32Var(&in.Age, "age", 0, "age in years")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	return cmd
}

// seedSummary counts seeded outcomes.
type seedSummary struct {
	Count    int `json:"count" yaml:"count"`
	Accepted int `json:"accepted" yaml:"accepted"`
	Rejected int `json:"rejected" yaml:"rejected"`
	Failed   int `json:"failed" yaml:"failed"`
}

func (s *seedSummary) add(outcome formclient.Outcome) {
	s.Count++
	switch outcome {
	case formclient.OutcomeAccepted:
		s.Accepted++
	case formclient.OutcomeRejected:
		s.Rejected++
	default:
		s.Failed++
	}
}

// fakeSubmissions generates count valid submissions. A zero seed picks a
// random one.
func fakeSubmissions(count int, seed int64) []formclient.Submission {
	faker := gofakeit.New(seed)
	out := make([]formclient.Submission, count)
	for i := range out {
		out[i] = formclient.Submission{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			Age:       int32(faker.Number(1, 150)),
			Email:     faker.Email(),
		}
	}
	return out
}

func newSeedCommand(opts *options) *cobra.Command {
	var (
		count       int
		seed        int64
		concurrency int
	)
	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "Submit generated fake forms",
		Example: "  formctl seed --count 100 --concurrency 8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			if concurrency <= 0 {
				concurrency = 1
			}
			ctx, err := opts.withLocale(cmd.Context())
			if err != nil {
				return err
			}
			client, conn, err := opts.connect()
			if err != nil {
				return err
			}
			defer conn.Close()

			summary, err := runSeed(ctx, client, fakeSubmissions(count, seed), concurrency)
			if err != nil {
				return err
			}
			return opts.print(summary)
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of submissions")
	cmd.Flags().Int64Var(&seed, "seed", 0, "fake data seed (0 = random)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "parallel submissions")
	return cmd
}

func runSeed(ctx context.Context, client *formclient.Client, submissions []formclient.Submission, concurrency int) (seedSummary, error) {
	var (
		mu      sync.Mutex
		summary seedSummary
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for _, submission := range submissions {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result := client.Submit(requestctx.WithRequestID(groupCtx, requestctx.NewRequestID()), submission)
			mu.Lock()
			summary.add(result.Outcome)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return summary, fmt.Errorf("seed: %w", err)
	}
	return summary, nil
}

func newHealthCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check form service health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := opts.resolveAddr()
			if err != nil {
				return err
			}
			conn, err := opts.dial(addr)
			if err != nil {
				return fmt.Errorf("connect to %s: %w", addr, err)
			}
			defer conn.Close()

			if err := platformgrpc.CheckHealth(cmd.Context(), conn, ""); err != nil {
				return fmt.Errorf("%s: %w", addr, err)
			}
			return opts.print(map[string]string{"addr": addr, "status": "SERVING"})
		},
	}
}

func newConfigCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage formctl profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-addr ADDR",
			Short: "Set the form service address of a profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				profiles, err := LoadProfiles(opts.configPath)
				if err != nil {
					return err
				}
				if err := profiles.SetAddr(opts.profile, args[0]); err != nil {
					return err
				}
				return opts.print(profiles)
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the current configuration",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				profiles, err := LoadProfiles(opts.configPath)
				if err != nil {
					return err
				}
				return opts.print(profiles)
			},
		},
	)
	return cmd
}
