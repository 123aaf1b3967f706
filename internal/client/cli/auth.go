package cli

import (
	"context"

	"github.com/urfave/cli/v2"

	"gonotes/internal/gateway/app/dto"
)

const (
	flagEmail    = "email"
	flagPassword = "password"
)

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagEmail, Aliases: []string{"e"}, Usage: "account email"},
		&cli.StringFlag{Name: flagPassword, Usage: "account password (prompted when omitted)", EnvVars: []string{EnvPassword}},
	}
}

func (a *App) authCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "register",
			Usage:  "create an account and log in",
			Flags:  credentialFlags(),
			Action: a.authenticate(func(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
				return a.client.Register(ctx, email, password)
			}),
		},
		{
			Name:   "login",
			Usage:  "log in and remember the session",
			Flags:  credentialFlags(),
			Action: a.authenticate(func(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
				return a.client.Login(ctx, email, password)
			}),
		},
		{
			Name:   "logout",
			Usage:  "forget the stored session",
			Action: a.logout,
		},
		{
			Name:   "whoami",
			Usage:  "show the logged in user",
			Action: a.whoami,
		},
	}
}

type authFunc func(ctx context.Context, email, password string) (*dto.AuthResponse, error)

func (a *App) authenticate(call authFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		email := c.String(flagEmail)
		if email == "" {
			var err error
			if email, err = promptLine(a.in, a.out, "Email"); err != nil {
				return err
			}
		}

		password := c.String(flagPassword)
		if password == "" {
			var err error
			if password, err = promptPassword(a.out); err != nil {
				return err
			}
		}

		resp, err := call(c.Context, email, password)
		if err != nil {
			return err
		}
		if err := a.session.Save(c.Context, resp); err != nil {
			return err
		}

		a.printf("Logged in as %s\n", resp.User.Email)
		return nil
	}
}

func (a *App) logout(c *cli.Context) error {
	if err := a.session.Clear(c.Context); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func (a *App) whoami(c *cli.Context) error {
	user, err := a.requireUser(c.Context)
	if err != nil {
		return err
	}
	a.printf("%s (%s)\n", user.Email, user.ID)
	return nil
}
