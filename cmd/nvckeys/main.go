// Command nvckeys manages API keys against the same database file the server
// uses: issue new keys, list them, and revoke them. The plaintext secret is
// printed exactly once at issuance and cannot be recovered afterwards.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	sqliteadapter "github.com/softspoken/nvcpractice/internal/adapter/driven/sqlite"
	"github.com/softspoken/nvcpractice/internal/application"
	"github.com/softspoken/nvcpractice/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: nvckeys <issue|list|revoke> [flags]")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	svc := application.NewKeyService(sqliteadapter.NewAPIKeyRepo(db))
	ctx := context.Background()

	switch args[0] {
	case "issue":
		return issue(ctx, svc, args[1:])
	case "list":
		return list(ctx, svc)
	case "revoke":
		return revoke(ctx, svc, args[1:])
	default:
		return fmt.Errorf("unknown command %q (expected issue, list, or revoke)", args[0])
	}
}

func issue(ctx context.Context, svc *application.KeyService, args []string) error {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	label := fs.String("label", "", "human-readable name for the new key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, id, err := svc.Issue(ctx, *label)
	if err != nil {
		return err
	}

	fmt.Printf("issued key %d (%s)\n", id, *label)
	fmt.Printf("secret: %s\n", secret)
	fmt.Println("store it now; it will not be shown again")
	return nil
}

func list(ctx context.Context, svc *application.KeyService) error {
	keys, err := svc.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tSTATUS\tISSUED\tLAST USED")
	for _, key := range keys {
		lastUsed := "never"
		if key.LastUsedAt != nil {
			lastUsed = key.LastUsedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			key.ID, key.Label, key.Status,
			key.IssuedAt.Format("2006-01-02 15:04:05"), lastUsed)
	}
	return w.Flush()
}

func revoke(ctx context.Context, svc *application.KeyService, args []string) error {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	id := fs.Int64("id", 0, "id of the key to revoke")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}

	ok, err := svc.Revoke(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("key %d was not active (already revoked or unknown)\n", *id)
		return nil
	}

	fmt.Printf("revoked key %d\n", *id)
	return nil
}
