package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mindkeeper/internal/client/client"
	"github.com/dmitrijs2005/mindkeeper/internal/common"
)

// getSimpleText and getPassword are test seams over the interactive input
// helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// describe turns client errors into short messages for the terminal.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again when online"
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please log in again"
	case errors.Is(err, client.ErrLocalDataNotAvailable):
		return "server unavailable and nothing cached yet"
	default:
		return err.Error()
	}
}

func (a *App) credentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
// It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can now log in.")
	return nil
}

// Login prompts for credentials and starts a session. The session is saved
// locally so the next start resumes it.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", userName)
	return nil
}

// Logout ends the session on the server and wipes local data.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
