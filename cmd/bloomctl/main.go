// Command bloomctl manages the flower inventory from a terminal.
//
//	bloomctl list
//	bloomctl add --name Rose --type focal --color red --price 2.5 --quantity 100
//	bloomctl update <id> --price 1.2
//	bloomctl remove <id>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bloombuilder/internal/inventory"
	"bloombuilder/pkg/flowerclient"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "bloomctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("bloomctl", pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.String("api-url", "http://localhost:5000", "base URL of the bloombuilder API")
	flags.String("name", "", "flower name")
	flags.String("type", "", "flower type, e.g. focal, filler, foliage")
	flags.String("color", "", "flower color")
	flags.Float64("price", 0, "price per stem")
	flags.Int("quantity", 0, "stems in stock")
	flags.String("image-url", "", "optional image link")
	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("BLOOMBUILDER")
	v.AutomaticEnv()
	if err := v.BindPFlag("api_url", flags.Lookup("api-url")); err != nil {
		return err
	}

	client, err := flowerclient.New(v.GetString("api_url"))
	if err != nil {
		return err
	}
	cmd := &command{inv: inventory.New(client, nil), flags: flags, out: out}

	if err := cmd.inv.Load(ctx); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return cmd.list()
	}
	switch rest[0] {
	case "list":
		return cmd.list()
	case "add":
		return cmd.add(ctx)
	case "update":
		if len(rest) < 2 {
			return fmt.Errorf("update requires a flower id")
		}
		return cmd.update(ctx, rest[1])
	case "remove", "rm":
		if len(rest) < 2 {
			return fmt.Errorf("remove requires a flower id")
		}
		return cmd.remove(ctx, rest[1])
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}
