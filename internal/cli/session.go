package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/opsboard/internal/board"
	"github.com/yukikurage/opsboard/internal/client"
	"github.com/yukikurage/opsboard/internal/models"
)

// session is one boardctl invocation's connection to the API.
type session struct {
	client   *client.Client
	logger   *log.Logger
	loggedIn bool
}

// connect checks the server is reachable and logs in when a password is set.
func connect(cmd *cobra.Command) (*session, error) {
	ctx := commandContext(cmd)

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	c := client.New(serverURL)
	if err := c.Health(ctx); err != nil {
		return nil, fmt.Errorf("server %s is not reachable: %w", serverURL, err)
	}

	s := &session{client: c, logger: logger}
	if password != "" {
		logger.WithField("user", username).Debug("logging in")
		if err := c.Login(ctx, username, password); err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
		s.loggedIn = true
	}
	return s, nil
}

// close ends the server session opened by connect.
func (s *session) close(ctx context.Context) {
	if !s.loggedIn {
		return
	}
	if err := s.client.Logout(ctx); err != nil {
		s.logger.WithError(err).Debug("logout failed")
	}
}

// openBoard connects and loads the board. The returned func ends the session.
func openBoard(cmd *cobra.Command) (*board.Board, func(), error) {
	s, err := connect(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := commandContext(cmd)
	done := func() { s.close(ctx) }

	b := board.New(s.client, board.LogNotifier{Logger: s.logger})
	if err := b.Refresh(ctx); err != nil {
		done()
		return nil, nil, err
	}
	return b, done, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

// parseStatus accepts the wire value in any case, with "-" or " " for "_".
func parseStatus(raw string) (models.TaskStatus, error) {
	normalized := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(raw)))
	status := models.TaskStatus(normalized)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (want todo, in_progress or done)", raw)
	}
	return status, nil
}

func parsePriority(raw string) (models.TaskPriority, error) {
	priority := models.TaskPriority(strings.ToUpper(strings.TrimSpace(raw)))
	if !priority.Valid() {
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", raw)
	}
	return priority, nil
}
