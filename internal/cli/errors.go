package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tracklog-cli/internal/format"
	"tracklog-cli/internal/mutate"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}

func requireName(sess *session) (string, error) {
	name := strings.TrimSpace(sess.cfg.DefaultName)
	if name == "" {
		return "", errors.New("no employee name: pass --name or set default_name in the config")
	}
	if !sess.catalog.HasEmployee(name) {
		return "", fmt.Errorf("unknown employee %q (not in the reference sheet)", name)
	}
	return name, nil
}

// reportMutationErr downgrades a benign not-found to a notice; anything
// else propagates as a command error.
func reportMutationErr(err error) error {
	var nf mutate.NotFoundError
	if errors.As(err, &nf) {
		format.Warnf("%v (refreshed view)", nf)
		return nil
	}
	return err
}
