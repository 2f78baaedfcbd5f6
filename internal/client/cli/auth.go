package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/client/client"
	"github.com/dmitrijs2005/talentauth/internal/client/models"
	"github.com/dmitrijs2005/talentauth/internal/client/session"
	"github.com/dmitrijs2005/talentauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for email and password and signs in. The outcome is
// reported by the session notifier.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.manager.SignIn(ctx, email, string(password))
}

// SignUp prompts for the account details and registers. Only talent and
// recruiter are accepted as roles; anything else is rejected locally.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	role, err := getSimpleText(a.reader, "Enter role (talent/recruiter)", a.out)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}

	return a.manager.SignUp(ctx, session.SignUpInput{
		Email:    email,
		Password: string(password),
		FullName: fullName,
		Role:     session.SignUpRole(strings.ToLower(strings.TrimSpace(role))),
		Phone:    phone,
	})
}

func (a *App) SignOut(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	return a.manager.SignOut(ctx)
}

// WhoAmI prints the user cached by the session manager without a server
// round trip.
func (a *App) WhoAmI(_ context.Context) error {
	u, ok := a.manager.User()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	printUser(a.out, u)
	return nil
}

// Me reloads the user from the server.
func (a *App) Me(ctx context.Context) error {
	u, err := a.manager.Refresh(ctx)
	switch {
	case err == nil:
		printUser(a.out, u)
		return nil
	case errors.Is(err, common.ErrUnauthenticated):
		fmt.Fprintln(a.out, "Not signed in")
	case errors.Is(err, client.ErrUnauthorized):
		// already reported as an expired session
	case errors.Is(err, session.ErrOperationInProgress):
	default:
		fmt.Fprintln(a.out, "Error:", client.MessageOf(err, "could not load profile"))
	}
	return err
}

func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "Server:  %s\n", a.config.ServerURL)
	fmt.Fprintf(a.out, "Session: %s\n", a.manager.State())

	if u, ok := a.manager.User(); ok {
		fmt.Fprintf(a.out, "User:    %s (%s)\n", u.Email, u.Role)
	}

	if a.tokens == nil {
		return nil
	}
	at, ok, err := a.tokens.SavedAt(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "Token saved: %s\n", at.Local().Format(time.DateTime))
	}
	return nil
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "ID:    %s\n", u.ID)
	fmt.Fprintf(w, "Email: %s\n", u.Email)
	fmt.Fprintf(w, "Name:  %s\n", u.FullName)
	fmt.Fprintf(w, "Role:  %s\n", u.Role)
	if u.Phone != "" {
		fmt.Fprintf(w, "Phone: %s\n", u.Phone)
	}
}
