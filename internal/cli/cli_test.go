package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/haguru/localauth/internal/autherrors"
	"github.com/haguru/localauth/internal/credstore"
	"github.com/haguru/localauth/internal/interfaces/mocks"
	"github.com/haguru/localauth/internal/userservice"
	"github.com/haguru/localauth/pkg/databases/memory"
	"github.com/haguru/localauth/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService() *userservice.UserService {
	store := credstore.NewStore(memory.NewMemoryClient(), zerolog.NewNopLogger())
	return userservice.NewUserService(store, zerolog.NewNopLogger())
}

func run(t *testing.T, svc *userservice.UserService, lines ...string) (string, *CLI) {
	t.Helper()
	var out bytes.Buffer
	c := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, nil)
	require.NoError(t, c.Run(context.Background()))
	return out.String(), c
}

func TestRun_RegisterThenLogin(t *testing.T) {
	svc := newService()

	out, c := run(t, svc,
		"register", "alice_1", "alice@example.com", "secret1", "secret1",
		"login", "alice_1", "secret1", "y",
		"remembered",
		"exit",
	)

	assert.Contains(t, out, MsgRegistered)
	assert.Contains(t, out, "Welcome back, alice_1!")
	assert.Contains(t, out, "Remembered user: alice_1")
	assert.Contains(t, out, MsgBye)
	assert.Equal(t, userservice.ViewLogin, c.View())

	name, ok, err := svc.RememberedUser(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice_1", name)
}

func TestRun_LoginUsesRememberedDefault(t *testing.T) {
	svc := newService()

	out, _ := run(t, svc,
		"register", "alice_1", "alice@example.com", "secret1", "secret1",
		"login", "alice_1", "secret1", "yes",
		"login", "", "secret1", "n",
	)

	assert.Contains(t, out, "Username [alice_1]: ")
	assert.Equal(t, 2, strings.Count(out, "Welcome back, alice_1!"))
}

func TestRun_RegisterShowsFieldErrors(t *testing.T) {
	svc := newService()

	out, c := run(t, svc,
		"register", "al", "not-an-email", "123", "321",
	)

	assert.Contains(t, out, autherrors.MsgUsernameFormat)
	assert.Contains(t, out, autherrors.MsgEmailFormat)
	assert.Contains(t, out, autherrors.MsgPasswordTooShort)
	assert.Contains(t, out, autherrors.MsgPasswordMismatch)
	assert.NotContains(t, out, MsgRegistered)
	assert.Equal(t, userservice.ViewRegister, c.View())

	n, err := svc.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRun_DuplicateRegistration(t *testing.T) {
	svc := newService()

	out, _ := run(t, svc,
		"register", "alice_1", "alice@example.com", "secret1", "secret1",
		"register", "alice_1", "other@example.com", "secret1", "secret1",
	)

	assert.Equal(t, 1, strings.Count(out, MsgRegistered))
	assert.Contains(t, out, autherrors.MsgUsernameTaken)
}

func TestRun_LoginFailures(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "empty fields", lines: []string{"login", "", "", "n"}, want: autherrors.MsgFillAllFields},
		{name: "wrong password", lines: []string{"login", "alice_1", "nope12", "n"}, want: autherrors.MsgInvalidCredentials},
		{name: "unknown user", lines: []string{"login", "bob_2", "secret1", "n"}, want: autherrors.MsgInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			_, err := svc.SubmitRegister(context.Background(), registerAlice())
			require.NoError(t, err)

			out, _ := run(t, svc, tt.lines...)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "Welcome back")
		})
	}
}

func TestRun_ViewAndHelp(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantOut  string
		wantView string
	}{
		{name: "switch to register", lines: []string{"view register"}, wantOut: "Switched to register form", wantView: userservice.ViewRegister},
		{name: "unknown view", lines: []string{"view settings"}, wantOut: MsgViewUsage, wantView: userservice.ViewLogin},
		{name: "missing view", lines: []string{"view"}, wantOut: MsgViewUsage, wantView: userservice.ViewLogin},
		{name: "help", lines: []string{"help"}, wantOut: "remembered", wantView: userservice.ViewLogin},
		{name: "unknown command", lines: []string{"dance"}, wantOut: "Unknown command: dance", wantView: userservice.ViewLogin},
		{name: "blank lines", lines: []string{"", "   "}, wantOut: MsgBye, wantView: userservice.ViewLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, c := run(t, newService(), tt.lines...)
			assert.Contains(t, out, tt.wantOut)
			assert.Equal(t, tt.wantView, c.View())
		})
	}
}

func TestRun_EOFInsideForm(t *testing.T) {
	out, _ := run(t, newService(), "register", "alice_1")
	assert.Contains(t, out, MsgBye)
}

func TestRun_ServiceErrorIsPrinted(t *testing.T) {
	svc := mocks.NewMockUserService(t)
	svc.On("RememberedUser", mock.Anything).Return("", false, errors.New("backend down"))

	var out bytes.Buffer
	c := New(svc, strings.NewReader("remembered\nexit\n"), &out, nil)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "Error: backend down")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(newService(), strings.NewReader("help\n"), &out, nil)
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestNew_UsesPasswordReader(t *testing.T) {
	svc := newService()
	_, err := svc.SubmitRegister(context.Background(), registerAlice())
	require.NoError(t, err)

	var prompts []string
	reader := func(prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return "secret1", nil
	}

	var out bytes.Buffer
	c := New(svc, bufio.NewReader(strings.NewReader("login\nalice_1\nn\n")), &out, reader)
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []string{"Password: "}, prompts)
	assert.Contains(t, out.String(), "Welcome back, alice_1!")
}
