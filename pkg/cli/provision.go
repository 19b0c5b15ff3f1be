package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/cli/config"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdProvision() *cli.Command {
	var (
		backendCfg   config.Backend
		firestoreCfg config.Firestore
	)

	flags := joinFlags(
		backendCfg.Flags(),
		firestoreCfg.Flags(),
	)

	return &cli.Command{
		Name:  "provision",
		Usage: "Create the test administrator accounts once and print the result",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			roles, err := firestoreCfg.ConfigureOptional(ctx)
			if err != nil {
				return err
			}
			if roles != nil {
				defer roles.Close()
			}

			connect, err := backendCfg.Connector(ctx, roles)
			if err != nil {
				return err
			}

			provisioner := usecase.NewProvision(backendCfg.BackendConfig(), connect)
			return runProvision(ctx, provisioner, os.Stdout)
		},
	}
}

// runProvision writes the aggregate response as JSON. Per-account failures do not
// make the command fail.
func runProvision(ctx context.Context, provisioner interfaces.Provisioner, w io.Writer) error {
	resp, err := provisioner.Run(ctx)
	if err != nil {
		return err
	}

	ctxlog.From(ctx).Info(resp.Message, "summary", resp.Summary())

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return goerr.Wrap(err, "failed to write provisioning result")
	}
	return nil
}
