package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nadiahindrianti/shesafe/internal/application/caseform"
	"github.com/nadiahindrianti/shesafe/internal/domain/cases"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/logger"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/tokenstore"
	"github.com/nadiahindrianti/shesafe/internal/interfaces/devproxy"
	"github.com/nadiahindrianti/shesafe/internal/interfaces/terminal"
)

func (a *app) usageError(format string, args ...any) error {
	fmt.Fprintf(a.stderr, "Error: "+format+"\n", args...)
	return errUsage
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) caseCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usageError("case requires a subcommand: get, mine, new, edit, delete")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "get":
		if len(rest) != 1 {
			return a.usageError("case get requires an id")
		}
		c, err := a.registry.Cases.FetchOne(ctx, rest[0])
		if err != nil {
			return err
		}
		return a.print(c)
	case "mine":
		list, err := a.registry.Cases.ListMine(ctx)
		if err != nil {
			return err
		}
		return a.print(list)
	case "delete":
		if len(rest) != 1 {
			return a.usageError("case delete requires an id")
		}
		if err := a.registry.Cases.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Case %s deleted\n", rest[0])
		return nil
	case "new":
		return a.editCase(ctx, "", rest)
	case "edit":
		if len(rest) == 0 {
			return a.usageError("case edit requires an id")
		}
		return a.editCase(ctx, rest[0], rest[1:])
	default:
		return a.usageError("unknown case subcommand %q", sub)
	}
}

// editCase drives the case form from flags
func (a *app) editCase(ctx context.Context, id string, args []string) error {
	fs := a.newFlagSet("case")
	title := fs.String("title", "", "Case title")
	message := fs.String("message", "", "Additional message")
	category := fs.String("category", "", "Category id")
	descFile := fs.String("description-file", "", "Description file")
	draft := fs.Bool("draft", false, "Save as draft")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var opts []terminal.Option
	if *yes {
		opts = append(opts, terminal.WithAssumeYes())
	}
	prompter := terminal.NewPrompter(a.stdin, a.stdout, opts...)
	editor := terminal.NewEditor()

	form, err := caseform.New(caseform.Deps{
		Cases:      a.registry.Cases,
		Categories: a.registry.Categories,
		Editor:     editor,
		Notifier:   prompter,
		Confirmer:  prompter,
		Navigator:  prompter,
		Logger:     logger.Named(logger.FromContext(ctx), "caseform"),
	}, id)
	if err != nil {
		return err
	}

	if err := form.Load(ctx); err != nil {
		return err
	}

	if set["title"] {
		form.SetTitle(*title)
	}
	if set["message"] {
		form.SetMessage(*message)
	}
	if set["category"] {
		if err := form.SetCategory(*category); err != nil {
			return err
		}
	}
	if *descFile != "" {
		if err := editor.ReplaceFromFile(*descFile); err != nil {
			return err
		}
	}

	if *draft {
		if !form.DraftAvailable() {
			return fmt.Errorf("case %s is %s; only drafts can be saved as draft", id, form.Status())
		}
		err = form.SaveDraft(ctx)
	} else {
		err = form.Submit(ctx)
	}
	if errors.Is(err, caseform.ErrDeclined) {
		fmt.Fprintln(a.stdout, "Submission cancelled")
		return nil
	}
	return err
}

func (a *app) categories(ctx context.Context) error {
	idx, err := a.registry.Categories.Fetch(ctx)
	if err != nil {
		return err
	}
	return a.print(idx.List())
}

func (a *app) community(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "detail" {
		if len(args) != 2 {
			return a.usageError("community detail requires an id")
		}
		c, err := a.registry.Community.Detail(ctx, args[1])
		if err != nil {
			return err
		}
		return a.print(c)
	}

	fs := a.newFlagSet("community")
	category := fs.String("category", "", "Category id")
	page := fs.Int("page", 1, "Page number")
	perPage := fs.Int("per-page", cases.DefaultPerPage, "Records per page")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	result, err := a.registry.Community.Fetch(ctx, cases.CommunityFilter{
		Category: *category,
		Page:     *page,
		PerPage:  *perPage,
	})
	if err != nil {
		return err
	}
	return a.print(result)
}

func (a *app) support(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usageError("support requires a subcommand and a case id")
	}
	sub, id := args[0], args[1]

	fs := a.newFlagSet("support")
	count := fs.Int("count", 1, "Support count to record")
	if err := fs.Parse(args[2:]); err != nil {
		return errUsage
	}

	var (
		s   cases.Support
		err error
	)
	switch sub {
	case "get":
		s, err = a.registry.Community.FetchSupport(ctx, id)
	case "post":
		s, err = a.registry.Community.PostSupport(ctx, id, *count)
	case "delete":
		s, err = a.registry.Community.DeleteSupport(ctx, id)
	default:
		return a.usageError("unknown support subcommand %q", sub)
	}
	if err != nil {
		return err
	}
	return a.print(s)
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return a.usageError("login requires a token")
	}
	token := args[0]
	if tokenstore.Expired(token, time.Now()) {
		return fmt.Errorf("token has already expired")
	}
	if err := a.tokens.Save(ctx, token); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Token saved (%s store)\n", a.cfg.Auth.TokenStore)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return err
	}
	a.registry.ResetAll()
	fmt.Fprintln(a.stdout, "Token cleared")
	return nil
}

func (a *app) proxy(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	srv, err := devproxy.New(a.cfg.Proxy, logger.Named(a.log, "proxy"), a.metrics)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Proxying %s%s -> %s (rate limit %s rps)\n",
		a.cfg.Proxy.Listen, a.cfg.Proxy.Prefix, a.cfg.Proxy.Target,
		strconv.FormatFloat(a.cfg.Proxy.RateLimitRPS, 'f', -1, 64))
	return srv.Run(ctx)
}
