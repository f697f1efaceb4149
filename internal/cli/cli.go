// Package cli is an interactive terminal front end for the user service.
// Every command maps onto one of the service's command handlers.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/haguru/localauth/internal/autherrors"
	"github.com/haguru/localauth/internal/interfaces"
	"github.com/haguru/localauth/internal/userservice"
)

const (
	HelpText = `Available commands:
  register         create an account
  login            sign in
  remembered       show the remembered username
  view <name>      switch to the login or register form
  help             show this help
  exit | quit      leave the program`

	MsgBye           = "Bye!"
	MsgUnknownCmd    = "Unknown command: %s (type help)"
	MsgRegistered    = "Registration successful! You can now log in."
	MsgWelcomeFormat = "Welcome back, %s!"
	MsgRememberedFmt = "Remembered user: %s"
	MsgNoRemembered  = "No remembered user"
	MsgViewFormat    = "Switched to %s form"
	MsgViewUsage     = "Usage: view <login|register>"
	MsgErrorFormat   = "Error: %v"
)

// CLI runs a read-eval-print loop against a UserService.
type CLI struct {
	service      interfaces.UserService
	reader       *bufio.Reader
	out          io.Writer
	readPassword PasswordReader
	view         string
}

// New creates a CLI reading commands from in. When readPassword is nil,
// passwords are read as plain lines from in.
func New(service interfaces.UserService, in io.Reader, out io.Writer, readPassword PasswordReader) *CLI {
	c := &CLI{
		service: service,
		out:     out,
		view:    userservice.ViewLogin,
	}
	if br, ok := in.(*bufio.Reader); ok {
		c.reader = br
	} else {
		c.reader = bufio.NewReader(in)
	}
	c.readPassword = readPassword
	if c.readPassword == nil {
		c.readPassword = func(prompt string) (string, error) {
			return readLine(c.reader, c.out, prompt)
		}
	}
	return c
}

// Run loops until exit, end of input or ctx cancellation.
func (c *CLI) Run(ctx context.Context) error {
	c.println(HelpText)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := readLine(c.reader, c.out, fmt.Sprintf("localauth [%s]> ", c.view))
		if errors.Is(err, io.EOF) {
			c.println(MsgBye)
			return nil
		}
		if err != nil {
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			c.println(HelpText)
		case "register":
			err = c.Register(ctx)
		case "login":
			err = c.Login(ctx)
		case "remembered":
			err = c.Remembered(ctx)
		case "view":
			if len(parts) != 2 {
				c.println(MsgViewUsage)
				continue
			}
			c.SwitchView(parts[1])
		case "exit", "quit":
			c.println(MsgBye)
			return nil
		default:
			c.printf(MsgUnknownCmd, parts[0])
		}

		// input ran out in the middle of a form
		if errors.Is(err, io.EOF) {
			c.println(MsgBye)
			return nil
		}
		if err != nil {
			c.printf(MsgErrorFormat, err)
		}
	}
}

// Register walks through the register form. Each field is checked as soon
// as it is entered, and the whole form again on submit.
func (c *CLI) Register(ctx context.Context) error {
	c.view = userservice.ViewRegister

	username, err := c.field(ctx, autherrors.FieldUsername, "Username: ", "", false)
	if err != nil {
		return err
	}
	email, err := c.field(ctx, autherrors.FieldEmail, "Email: ", "", false)
	if err != nil {
		return err
	}
	password, err := c.field(ctx, autherrors.FieldPassword, "Password: ", "", true)
	if err != nil {
		return err
	}
	confirm, err := c.field(ctx, autherrors.FieldConfirmPassword, "Confirm password: ", password, true)
	if err != nil {
		return err
	}

	_, err = c.service.SubmitRegister(ctx, interfaces.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	var fieldErrs autherrors.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			c.printf("  %s: %s", fe.Field, fe.Message)
		}
		return nil
	}
	if err != nil {
		return err
	}

	c.println(MsgRegistered)
	c.view = userservice.ViewLogin
	return nil
}

// Login asks for credentials, offering the remembered username as default.
func (c *CLI) Login(ctx context.Context) error {
	c.view = userservice.ViewLogin

	remembered, ok, err := c.service.RememberedUser(ctx)
	if err != nil {
		return err
	}

	prompt := "Username: "
	if ok {
		prompt = fmt.Sprintf("Username [%s]: ", remembered)
	}
	username, err := readLine(c.reader, c.out, prompt)
	if err != nil {
		return err
	}
	if strings.TrimSpace(username) == "" && ok {
		username = remembered
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	answer, err := readLine(c.reader, c.out, "Remember me? [y/N]: ")
	if err != nil {
		return err
	}

	user, err := c.service.SubmitLogin(ctx, interfaces.LoginInput{
		Username:   username,
		Password:   password,
		RememberMe: isYes(answer),
	})
	var fe *autherrors.FieldError
	switch {
	case errors.As(err, &fe):
		c.println(fe.Message)
		return nil
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		c.println(autherrors.MsgInvalidCredentials)
		return nil
	case err != nil:
		return err
	}

	c.printf(MsgWelcomeFormat, user.Username)
	return nil
}

// Remembered prints the remembered username, if any.
func (c *CLI) Remembered(ctx context.Context) error {
	name, ok, err := c.service.RememberedUser(ctx)
	if err != nil {
		return err
	}
	if !ok {
		c.println(MsgNoRemembered)
		return nil
	}
	c.printf(MsgRememberedFmt, name)
	return nil
}

// SwitchView changes the prompt between the login and register forms.
func (c *CLI) SwitchView(target string) {
	view, err := c.service.SwitchView(target)
	if err != nil {
		c.println(MsgViewUsage)
		return
	}
	c.view = view
	c.printf(MsgViewFormat, view)
}

// View returns the current form.
func (c *CLI) View() string {
	return c.view
}

// field reads one form value and shows its live validation error, if any.
func (c *CLI) field(ctx context.Context, name, prompt, password string, secret bool) (string, error) {
	var value string
	var err error
	if secret {
		value, err = c.readPassword(prompt)
	} else {
		value, err = readLine(c.reader, c.out, prompt)
	}
	if err != nil {
		return "", err
	}

	fe, err := c.service.BlurField(ctx, name, value, password)
	if err != nil {
		return "", err
	}
	if fe != nil {
		c.printf("  %s", fe.Message)
	}
	return value, nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *CLI) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *CLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
