// Package formctl implements the formctl command tree: direct submissions,
// fake-data seeding and health checks against the form service.
package formctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	formv1 "github.com/louisbranch/formrelay/api/gen/go/form/v1"
	"github.com/louisbranch/formrelay/internal/platform/config"
	platformgrpc "github.com/louisbranch/formrelay/internal/platform/grpc"
	"github.com/louisbranch/formrelay/internal/platform/i18n"
	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/services/gateway/formclient"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	gogrpc "google.golang.org/grpc"
	"gopkg.in/yaml.v3"
)

// DialFunc creates a client connection to the form service.
type DialFunc func(addr string) (*gogrpc.ClientConn, error)

type envConfig struct {
	FormAddr string `env:"FORM_ADDR"`
}

type options struct {
	configPath string
	profile    string
	addr       string
	lang       string
	output     string

	out    io.Writer
	dial   DialFunc
	logger *logging.Logger
}

// NewRootCommand builds the formctl command tree. A nil dial uses the
// shared gRPC client options.
func NewRootCommand(out io.Writer, dial DialFunc, logger *logging.Logger) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	if dial == nil {
		dial = func(addr string) (*gogrpc.ClientConn, error) { return platformgrpc.NewClient(addr) }
	}
	opts := &options{out: out, dial: dial, logger: logger.OrDefault()}

	root := &cobra.Command{
		Use:   "formctl",
		Short: "Form service CLI",
		Long: `formctl talks to the form service over gRPC.

Submit single forms, seed fake submissions and check service health.
The target address comes from --addr, then FORMRELAY_FORM_ADDR, then the
current profile in ~/.formctl/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $HOME/.formctl/config.yaml)")
	root.PersistentFlags().StringVar(&opts.profile, "profile", "", "profile to use (default: current profile)")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "form service gRPC address")
	root.PersistentFlags().StringVar(&opts.lang, "lang", "", "message language, e.g. en or es")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json, yaml")

	root.AddCommand(
		newSubmitCommand(opts),
		newSeedCommand(opts),
		newHealthCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, logger *logging.Logger) error {
	root := NewRootCommand(os.Stdout, nil, logger)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// resolveAddr picks the target: --addr, then env, then the profile.
func (o *options) resolveAddr() (string, error) {
	if addr := strings.TrimSpace(o.addr); addr != "" {
		return addr, nil
	}
	var env envConfig
	if err := config.ParseEnv(&env); err != nil {
		return "", err
	}
	if addr := strings.TrimSpace(env.FormAddr); addr != "" {
		return addr, nil
	}
	profiles, err := LoadProfiles(o.configPath)
	if err != nil {
		return "", err
	}
	if profile, err := profiles.Profile(o.profile); err == nil && strings.TrimSpace(profile.Addr) != "" {
		return profile.Addr, nil
	}
	return defaultAddr, nil
}

// connect dials the resolved address and returns an adapter over it.
func (o *options) connect() (*formclient.Client, *gogrpc.ClientConn, error) {
	addr, err := o.resolveAddr()
	if err != nil {
		return nil, nil, err
	}
	conn, err := o.dial(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return formclient.New(formv1.NewFormServiceClient(conn), o.logger), conn, nil
}

// withLocale attaches --lang, or the profile language, to outgoing metadata.
func (o *options) withLocale(ctx context.Context) (context.Context, error) {
	lang := strings.TrimSpace(o.lang)
	if lang == "" {
		profiles, err := LoadProfiles(o.configPath)
		if err != nil {
			return nil, err
		}
		if profile, err := profiles.Profile(o.profile); err == nil {
			lang = strings.TrimSpace(profile.Lang)
		}
	}
	if lang == "" {
		return ctx, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid --lang %q: %w", lang, err)
	}
	return i18n.OutgoingContext(ctx, tag), nil
}

func (o *options) print(v any) error {
	switch strings.ToLower(strings.TrimSpace(o.output)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(o.out)
		defer enc.Close()
		return enc.Encode(v)
	case "", "json":
		enc := json.NewEncoder(o.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", o.output)
	}
}
