package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/extstorage/internal/client/iocli"
)

// ErrTokenRequired is returned when no server token is configured and it
// cannot be asked for interactively.
var ErrTokenRequired = errors.New("server token is required: set EXTSTORAGE_TOKEN or run in a terminal")

// NeedsToken reports whether command talks to the server.
func NeedsToken(command string) bool {
	return command == "sync"
}

// ResolveToken returns the configured token, or asks for it without echo
// when stdin is a terminal. Токен не попадает в историю shell и в ps.
func ResolveToken(io iocli.IO, token string) (string, error) {
	if token != "" {
		return token, nil
	}
	if !io.IsTerminal() {
		return "", ErrTokenRequired
	}

	token, err := io.ReadPassword("Server token: ")
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrTokenRequired
	}
	return token, nil
}
