package cli

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haguru/localauth/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAlice() interfaces.RegisterInput {
	return interfaces.RegisterInput{
		Username:        "alice_1",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "newline", input: "alice\n", want: "alice"},
		{name: "crlf", input: "alice\r\n", want: "alice"},
		{name: "keeps inner spaces", input: " a b \n", want: " a b "},
		{name: "partial last line", input: "alice", want: "alice"},
		{name: "eof", input: "", wantErr: io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := readLine(bufio.NewReader(strings.NewReader(tt.input)), &out, "> ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "> ", out.String())
		})
	}
}

func TestTerminalPasswordReader_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var out bytes.Buffer
	read := TerminalPasswordReader(f, bufio.NewReader(strings.NewReader("hunter22\n")), &out)

	got, err := read("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter22", got)
	assert.Equal(t, "Password: ", out.String())
}
